package ecdh

import (
	"encoding/json"
	"fmt"

	"github.com/smallyu/go-toyecc/pkg/protocol"
)

// round2 records the peer commitments and broadcasts the decommitment.
func (s *state) round2() (protocol.StateMachine, []protocol.Message, error) {
	// 1. Process Round 1 Messages (Commitments)
	peerCommitments := make(map[string][]byte)
	for id, msg := range s.receivedMsgs {
		peerCommitments[id] = msg.Payload()
	}
	s.tempData["peer_commitments"] = peerCommitments

	// 2. Broadcast Decommitment
	decommit, ok := s.tempData["round1_decommit"].(*Round2Payload)
	if !ok {
		return nil, nil, fmt.Errorf("missing decommitment")
	}
	data, err := json.Marshal(decommit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal round 2 payload: %w", err)
	}

	msg := &ECDHMessage{
		FromParty:  s.params.PartyID,
		ToParties:  nil,
		IsBcast:    true,
		Data:       data,
		TypeString: TypeRound2Decommit,
		RoundNum:   2,
	}

	// 3. Update State
	newState := &state{
		params:       s.params,
		group:        s.group,
		round:        2,
		keyPair:      s.keyPair,
		tempData:     s.tempData,
		receivedMsgs: make(map[string]protocol.Message), // Clear for next round
	}
	return newState, []protocol.Message{msg}, nil
}
