package ecdh

import (
	"github.com/smallyu/go-toyecc/internal/crypto/curves"
	"github.com/smallyu/go-toyecc/pkg/protocol"
)

// Message types
const (
	TypeRound1Commit   = "ECDHRound1_Commit"
	TypeRound2Decommit = "ECDHRound2_Decommit"
)

// KeyLen is the length of the derived session key.
const KeyLen = 32

// Result is the output of a completed key agreement.
type Result struct {
	LocalPartyID protocol.PartyID
	PeerPartyID  protocol.PartyID

	Group         string
	PublicKey     curves.Element
	PeerPublicKey curves.Element

	// SharedSecret is d_local * PeerPublicKey, equal on both sides.
	SharedSecret curves.Element

	// Key is HKDF-SHA3-256 over SharedSecret, salted with the session ID.
	Key []byte
}

// Round2Payload is the decommitment broadcast in round 2.
type Round2Payload struct {
	PublicKey []byte `json:"public_key"`
	Proof     []byte `json:"proof"`
	Salt      []byte `json:"salt"`
}

// ECDHMessage is a concrete implementation of protocol.Message for ECDH
type ECDHMessage struct {
	FromParty  protocol.PartyID
	ToParties  []protocol.PartyID
	IsBcast    bool
	Data       []byte
	TypeString string
	RoundNum   uint32
}

func (m *ECDHMessage) Type() string {
	return m.TypeString
}

func (m *ECDHMessage) From() protocol.PartyID {
	return m.FromParty
}

func (m *ECDHMessage) To() []protocol.PartyID {
	return m.ToParties
}

func (m *ECDHMessage) IsBroadcast() bool {
	return m.IsBcast
}

func (m *ECDHMessage) Payload() []byte {
	return m.Data
}

func (m *ECDHMessage) RoundNumber() uint32 {
	return m.RoundNum
}
