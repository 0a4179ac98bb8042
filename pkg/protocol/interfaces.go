// Package protocol defines the contract shared by the message-driven key
// agreement protocols: party identities, wire messages and state machines.
package protocol

import (
	"errors"
	"io"
)

// Common errors returned by the protocol state machines
var (
	ErrInvalidMsg     = errors.New("invalid message received")
	ErrProtocolDone   = errors.New("protocol already finished")
	ErrUnknownCurve   = errors.New("unknown curve")
	ErrInvalidParties = errors.New("invalid party set")
)

// PartyID identifies a participant. IDs are unique within a session.
type PartyID interface {
	ID() string

	// Moniker is a display name and may equal ID.
	Moniker() string

	// Key is the party's identity key material, if any.
	Key() []byte
}

// Message is a wire message exchanged between state machines.
type Message interface {
	// Type names the message kind, e.g. "ECDHRound1_Commit".
	Type() string

	From() PartyID

	// To lists the recipients of a direct message. It is empty for
	// broadcasts.
	To() []PartyID
	IsBroadcast() bool

	// Payload is the encoded message body.
	Payload() []byte

	// RoundNumber is the sender's round when the message was produced.
	RoundNumber() uint32
}

// StateMachine is the core engine that drives the protocol.
// It follows a functional state transition pattern.
type StateMachine interface {
	// Update applies an incoming message to the current state.
	// It returns:
	// - next: The new state machine.
	// - out: A slice of messages to be sent to other parties.
	// - err: An error if the transition failed.
	Update(msg Message) (next StateMachine, out []Message, err error)

	// Result returns the final output of the protocol.
	// Returns nil if the protocol is not yet finished.
	Result() interface{}

	// Details returns metadata about the current state (e.g., "ECDH Round 2").
	Details() string
}

// Parameters holds the configuration for a protocol session.
type Parameters struct {
	PartyID   PartyID   // The identity of the local party
	Parties   []PartyID // List of all participants (sorted)
	Curve     string    // The group to use (e.g., "secp256k1", "toy223")
	SessionID []byte    // Unique session identifier to prevent replay attacks

	// Rand is the randomness source; nil means crypto/rand.
	Rand io.Reader
}

// ProtocolInitializer defines the function signature for starting a new protocol.
type ProtocolInitializer func(params *Parameters) (StateMachine, []Message, error)
