package ecdh

import (
	"fmt"

	"github.com/smallyu/go-toyecc/internal/crypto/commitment"
	"github.com/smallyu/go-toyecc/internal/crypto/zk/schnorr"
	"github.com/smallyu/go-toyecc/pkg/protocol"
)

// round1 generates the local key pair and broadcasts a commitment to the
// public key and its proof of knowledge.
func (s *state) round1() (protocol.StateMachine, []protocol.Message, error) {
	// 1. Generate key pair
	kp, err := NewKeyPair(s.group, s.params.Rand)
	if err != nil {
		return nil, nil, err
	}
	s.keyPair = kp

	// 2. Prove knowledge of d, bound to the session and the local party
	proof, err := schnorr.Prove(s.group, s.proofContext(s.params.PartyID), kp.d, kp.pub, s.params.Rand)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create schnorr proof: %w", err)
	}
	proofBytes, err := proof.Marshal()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode schnorr proof: %w", err)
	}

	// 3. Commit to (X, proof)
	pubBytes := kp.pub.Bytes()
	comm, err := commitment.New(s.params.Rand, s.params.SessionID, []byte(s.params.PartyID.ID()), pubBytes, proofBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create commitment: %w", err)
	}

	// Store the decommitment for Round 2
	s.tempData["round1_decommit"] = &Round2Payload{
		PublicKey: pubBytes,
		Proof:     proofBytes,
		Salt:      comm.D,
	}

	msg := &ECDHMessage{
		FromParty:  s.params.PartyID,
		ToParties:  nil, // Broadcast
		IsBcast:    true,
		Data:       comm.C,
		TypeString: TypeRound1Commit,
		RoundNum:   1,
	}
	return s, []protocol.Message{msg}, nil
}

// proofContext binds a Schnorr proof to the session and the prover.
func (s *state) proofContext(prover protocol.PartyID) []byte {
	ctx := append([]byte{}, s.params.SessionID...)
	return append(ctx, []byte(prover.ID())...)
}
