package ecdh

import (
	"fmt"

	"github.com/smallyu/go-toyecc/internal/crypto/curves"
	"github.com/smallyu/go-toyecc/internal/log"
	"github.com/smallyu/go-toyecc/pkg/protocol"
)

type state struct {
	params *protocol.Parameters
	group  curves.Group

	// Current round number (1-based)
	round int

	keyPair *KeyPair

	// Temporary data to be carried over to next rounds
	tempData map[string]interface{}

	// Messages received in the current round
	// Map: PartyID.ID() -> Message
	receivedMsgs map[string]protocol.Message

	result *Result
}

// NewStateMachine initializes a new two-party ECDH state machine.
// It immediately executes Round 1 logic to generate the first set of messages.
func NewStateMachine(params *protocol.Parameters) (protocol.StateMachine, []protocol.Message, error) {
	if err := params.Validate(2); err != nil {
		return nil, nil, err
	}
	group, err := curves.New(params.Curve)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q", protocol.ErrUnknownCurve, params.Curve)
	}

	s := &state{
		params:       params,
		group:        group,
		round:        1,
		tempData:     make(map[string]interface{}),
		receivedMsgs: make(map[string]protocol.Message),
	}

	return s.round1()
}

func (s *state) Update(msg protocol.Message) (protocol.StateMachine, []protocol.Message, error) {
	if s.result != nil {
		return nil, nil, protocol.ErrProtocolDone
	}
	if msg == nil || msg.From() == nil {
		return nil, nil, protocol.ErrInvalidMsg
	}

	// Validate message round
	if msg.RoundNumber() != uint32(s.round) {
		return nil, nil, fmt.Errorf("%w: received message for round %d, expected %d",
			protocol.ErrInvalidMsg, msg.RoundNumber(), s.round)
	}

	// Validate sender
	senderID := msg.From().ID()
	if senderID == s.params.PartyID.ID() {
		return s, nil, nil // Ignore own messages if looped back
	}
	if s.peer(senderID) == nil {
		return nil, nil, fmt.Errorf("%w: unknown sender %s", protocol.ErrInvalidMsg, senderID)
	}

	if _, exists := s.receivedMsgs[senderID]; exists {
		return nil, nil, fmt.Errorf("%w: duplicate message from party %s", protocol.ErrInvalidMsg, senderID)
	}
	s.receivedMsgs[senderID] = msg

	// Total parties = n, we need n-1 messages
	if len(s.receivedMsgs) == len(s.params.Parties)-1 {
		log.Debugw("ecdh round complete", "party", s.params.PartyID.ID(), "round", s.round)
		return s.nextRound()
	}

	return s, nil, nil
}

func (s *state) nextRound() (protocol.StateMachine, []protocol.Message, error) {
	switch s.round {
	case 1:
		return s.round2()
	case 2:
		return s.finish()
	default:
		return nil, nil, fmt.Errorf("unknown round %d", s.round)
	}
}

// peer returns the party with the given id, or nil.
func (s *state) peer(id string) protocol.PartyID {
	for _, p := range s.params.Parties {
		if p.ID() == id && id != s.params.PartyID.ID() {
			return p
		}
	}
	return nil
}

func (s *state) Result() interface{} {
	if s.result == nil {
		return nil
	}
	return s.result
}

func (s *state) Details() string {
	if s.result != nil {
		return "ECDH Finished"
	}
	return fmt.Sprintf("ECDH Round %d", s.round)
}
