package ecdh

import (
	"encoding/json"
	"fmt"

	"github.com/smallyu/go-toyecc/internal/crypto/commitment"
	"github.com/smallyu/go-toyecc/internal/crypto/zk/schnorr"
	"github.com/smallyu/go-toyecc/internal/log"
	"github.com/smallyu/go-toyecc/pkg/protocol"
)

// finish opens the peer's commitment, checks its public key and proof, and
// derives the shared secret and session key.
func (s *state) finish() (protocol.StateMachine, []protocol.Message, error) {
	peerCommitments, _ := s.tempData["peer_commitments"].(map[string][]byte)

	var result *Result
	for id, msg := range s.receivedMsgs {
		from := s.peer(id)

		// 1. Parse decommitment
		var payload Round2Payload
		if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
			return nil, nil, protocol.NewBlame(from, 2, "malformed decommitment", err)
		}

		// 2. Verify it opens the round 1 commitment
		if !commitment.Verify(peerCommitments[id], payload.Salt,
			s.params.SessionID, []byte(id), payload.PublicKey, payload.Proof) {
			return nil, nil, protocol.NewBlame(from, 2, "decommitment does not match commitment", nil)
		}

		// 3. Decode the public key
		peerPub, err := s.group.DecodeElement(payload.PublicKey)
		if err != nil {
			return nil, nil, protocol.NewBlame(from, 2, "invalid public key", err)
		}
		if peerPub.IsIdentity() {
			return nil, nil, protocol.NewBlame(from, 2, "public key is the identity", nil)
		}

		// 4. Verify the proof of knowledge
		proof, err := schnorr.Unmarshal(s.group, payload.Proof)
		if err != nil {
			return nil, nil, protocol.NewBlame(from, 2, "malformed schnorr proof", err)
		}
		if !proof.Verify(s.group, s.proofContext(from), peerPub) {
			return nil, nil, protocol.NewBlame(from, 2, "schnorr proof verification failed", nil)
		}

		// 5. Shared secret and session key
		shared, err := s.keyPair.SharedSecret(peerPub)
		if err != nil {
			return nil, nil, protocol.NewBlame(from, 2, "cannot compute shared secret", err)
		}
		key, err := DeriveKey(shared, s.params.SessionID, KeyLen)
		if err != nil {
			return nil, nil, protocol.NewBlame(from, 2, "cannot derive session key", err)
		}

		result = &Result{
			LocalPartyID:  s.params.PartyID,
			PeerPartyID:   from,
			Group:         s.group.Name(),
			PublicKey:     s.keyPair.pub,
			PeerPublicKey: peerPub,
			SharedSecret:  shared,
			Key:           key,
		}
	}

	if result == nil {
		return nil, nil, fmt.Errorf("no decommitment received")
	}

	log.Debugw("ecdh finished", "party", s.params.PartyID.ID(), "group", result.Group)
	s.result = result
	s.tempData = nil
	return s, nil, nil
}
