package ecdh

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-toyecc/internal/crypto/curves"
	"github.com/smallyu/go-toyecc/internal/crypto/kdf"
	"github.com/smallyu/go-toyecc/pkg/protocol"
)

func TestKeyPairAgreement(t *testing.T) {
	for _, name := range curves.Names() {
		t.Run(name, func(t *testing.T) {
			g, err := curves.New(name)
			require.NoError(t, err)

			alice, err := NewKeyPair(g, rand.Reader)
			require.NoError(t, err)
			bob, err := NewKeyPair(g, rand.Reader)
			require.NoError(t, err)

			s1, err := alice.SharedSecret(bob.PublicKey())
			require.NoError(t, err)
			s2, err := bob.SharedSecret(alice.PublicKey())
			require.NoError(t, err)
			assert.True(t, s1.Equal(s2))
			assert.Equal(t, s1.Bytes(), s2.Bytes())
		})
	}
}

func TestKeyPairFromScalar(t *testing.T) {
	g, err := curves.New(curves.NameToy223x42)
	require.NoError(t, err)

	alice, err := NewKeyPairFromScalar(g, big.NewInt(5))
	require.NoError(t, err)
	bob, err := NewKeyPairFromScalar(g, big.NewInt(11))
	require.NoError(t, err)
	assert.Equal(t, int64(5), alice.PrivateKey().Int64())

	s1, err := alice.SharedSecret(bob.PublicKey())
	require.NoError(t, err)
	s2, err := bob.SharedSecret(alice.PublicKey())
	require.NoError(t, err)
	assert.True(t, s1.Equal(s2))

	want, err := curves.ScalarBaseMult(g, big.NewInt(55))
	require.NoError(t, err)
	assert.True(t, s1.Equal(want))

	for _, d := range []int64{0, -1, 42, 43} {
		_, err := NewKeyPairFromScalar(g, big.NewInt(d))
		assert.Error(t, err, "d=%d", d)
	}
	_, err = NewKeyPairFromScalar(nil, big.NewInt(1))
	assert.ErrorIs(t, err, ErrNilGroup)
}

func TestSharedSecretRejectsBadPeers(t *testing.T) {
	secp := curves.NewSecp256k1()
	kp, err := NewKeyPair(secp, nil)
	require.NoError(t, err)

	_, err = kp.SharedSecret(secp.Identity())
	assert.ErrorIs(t, err, ErrInvalidPeerKey)
	_, err = kp.SharedSecret(nil)
	assert.ErrorIs(t, err, ErrInvalidPeerKey)
	_, err = kp.SharedSecret(curves.NewEd25519().Generator())
	assert.ErrorIs(t, err, ErrInvalidPeerKey)
}

func TestDeriveKey(t *testing.T) {
	g := curves.NewEd25519()
	alice, err := NewKeyPair(g, rand.Reader)
	require.NoError(t, err)
	bob, err := NewKeyPair(g, rand.Reader)
	require.NoError(t, err)

	s1, _ := alice.SharedSecret(bob.PublicKey())
	s2, _ := bob.SharedSecret(alice.PublicKey())

	k1, err := DeriveKey(s1, []byte("sid"), KeyLen)
	require.NoError(t, err)
	k2, err := DeriveKey(s2, []byte("sid"), KeyLen)
	require.NoError(t, err)
	assert.Equal(t, k1, k2)

	k3, err := DeriveKey(s1, []byte("other"), KeyLen)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)

	_, err = DeriveKey(g.Identity(), nil, KeyLen)
	assert.ErrorIs(t, err, kdf.ErrIdentity)
}

func newParams(curve string) []*protocol.Parameters {
	p1 := protocol.NewPartyID("alice")
	p2 := protocol.NewPartyID("bob")
	parties := []protocol.PartyID{p1, p2}
	return []*protocol.Parameters{
		{PartyID: p1, Parties: parties, Curve: curve, SessionID: []byte("test-session")},
		{PartyID: p2, Parties: parties, Curve: curve, SessionID: []byte("test-session")},
	}
}

func start(t *testing.T, params []*protocol.Parameters) ([]protocol.PartyID, []protocol.StateMachine, [][]protocol.Message) {
	t.Helper()
	parties := params[0].Parties
	sms := make([]protocol.StateMachine, len(params))
	out := make([][]protocol.Message, len(params))
	for i, p := range params {
		var err error
		sms[i], out[i], err = NewStateMachine(p)
		require.NoError(t, err)
	}
	return parties, sms, out
}

func TestStateMachineAgreement(t *testing.T) {
	for _, curve := range []string{curves.NameToy223, curves.NameSecp256k1, curves.NameEd25519} {
		t.Run(curve, func(t *testing.T) {
			parties, sms, out := start(t, newParams(curve))

			require.Len(t, out[0], 1)
			assert.Equal(t, uint32(1), out[0][0].RoundNumber())
			assert.True(t, out[0][0].IsBroadcast())
			assert.Equal(t, TypeRound1Commit, out[0][0].Type())
			assert.Equal(t, "ECDH Round 1", sms[0].Details())

			results, err := protocol.RunLocal(parties, sms, out)
			require.NoError(t, err)

			r1 := results[0].(*Result)
			r2 := results[1].(*Result)
			assert.Equal(t, curve, r1.Group)
			assert.True(t, r1.SharedSecret.Equal(r2.SharedSecret))
			assert.Equal(t, r1.Key, r2.Key)
			assert.Len(t, r1.Key, KeyLen)
			assert.True(t, r1.PeerPublicKey.Equal(r2.PublicKey))
			assert.Equal(t, "bob", r1.PeerPartyID.ID())
		})
	}
}

func TestNewKeyPairCoprimeToOrder(t *testing.T) {
	g, err := curves.New(curves.NameToy223x42)
	require.NoError(t, err)

	// One byte per draw from [0, 41), shifted to [1, 42): 6 and 7 share a
	// factor with 42 and are redrawn, 5 is kept
	kp, err := NewKeyPair(g, bytes.NewReader([]byte{5, 6, 4}))
	require.NoError(t, err)
	assert.Equal(t, int64(5), kp.PrivateKey().Int64())

	// A source that only yields non-coprime scalars is exhausted
	_, err = NewKeyPair(g, bytes.NewReader(bytes.Repeat([]byte{5}, 8)))
	assert.Error(t, err)

	for i := 0; i < 200; i++ {
		kp, err := NewKeyPair(g, rand.Reader)
		require.NoError(t, err)
		gcd := new(big.Int).GCD(nil, nil, kp.PrivateKey(), g.Order())
		assert.Equal(t, int64(1), gcd.Int64())
	}
}

func TestStateMachineCompositeOrderGroup(t *testing.T) {
	params := newParams(curves.NameToy223x42)

	// Scalars 6 and 7 would make 42 | d_alice*d_bob and the shared secret
	// the identity. Both are rejected and replaced by 5 and 11.
	params[0].Rand = io.MultiReader(bytes.NewReader([]byte{5, 4}), rand.Reader)
	params[1].Rand = io.MultiReader(bytes.NewReader([]byte{6, 10}), rand.Reader)

	parties, sms, out := start(t, params)
	results, err := protocol.RunLocal(parties, sms, out)
	require.NoError(t, err)

	g, err := curves.New(curves.NameToy223x42)
	require.NoError(t, err)
	want, err := curves.ScalarBaseMult(g, big.NewInt(55))
	require.NoError(t, err)

	alice := results[0].(*Result)
	bob := results[1].(*Result)
	assert.True(t, alice.SharedSecret.Equal(want))
	assert.True(t, bob.SharedSecret.Equal(want))
	assert.Equal(t, alice.Key, bob.Key)
}

func TestStateMachineCompositeOrderAgreement(t *testing.T) {
	for i := 0; i < 50; i++ {
		parties, sms, out := start(t, newParams(curves.NameToy223x42))
		results, err := protocol.RunLocal(parties, sms, out)
		require.NoError(t, err)
		assert.False(t, results[0].(*Result).SharedSecret.IsIdentity())
	}
}

func TestStateMachineRejectsParams(t *testing.T) {
	params := newParams("p256")
	_, _, err := NewStateMachine(params[0])
	assert.ErrorIs(t, err, protocol.ErrUnknownCurve)

	params = newParams(curves.NameToy223)
	params[0].Parties = append(params[0].Parties, protocol.NewPartyID("carol"))
	_, _, err = NewStateMachine(params[0])
	assert.ErrorIs(t, err, protocol.ErrInvalidParties)

	params = newParams(curves.NameToy223)
	params[0].PartyID = protocol.NewPartyID("mallory")
	_, _, err = NewStateMachine(params[0])
	assert.ErrorIs(t, err, protocol.ErrInvalidParties)
}

func TestStateMachineMessageValidation(t *testing.T) {
	_, sms, out := start(t, newParams(curves.NameToy223))
	alice := sms[0]
	bobCommit := out[1][0]

	// Wrong round
	_, _, err := alice.Update(&ECDHMessage{FromParty: bobCommit.From(), IsBcast: true, RoundNum: 2})
	assert.ErrorIs(t, err, protocol.ErrInvalidMsg)

	// Unknown sender
	_, _, err = alice.Update(&ECDHMessage{FromParty: protocol.NewPartyID("mallory"), IsBcast: true, RoundNum: 1})
	assert.ErrorIs(t, err, protocol.ErrInvalidMsg)

	// Own message is ignored
	next, msgs, err := alice.Update(out[0][0])
	require.NoError(t, err)
	assert.Nil(t, msgs)
	assert.Equal(t, "ECDH Round 1", next.Details())

	// Peer commitment completes round 1
	next, msgs, err = alice.Update(bobCommit)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, TypeRound2Decommit, msgs[0].Type())
	assert.Equal(t, "ECDH Round 2", next.Details())
	assert.Nil(t, next.Result())

	// Replayed round 1 message after the transition
	_, _, err = next.Update(bobCommit)
	assert.ErrorIs(t, err, protocol.ErrInvalidMsg)
}

func TestStateMachineDuplicateSender(t *testing.T) {
	p1 := protocol.NewPartyID("alice")
	p2 := protocol.NewPartyID("bob")
	s := &state{
		params:       &protocol.Parameters{PartyID: p1, Parties: []protocol.PartyID{p1, p2, protocol.NewPartyID("carol")}},
		round:        1,
		receivedMsgs: make(map[string]protocol.Message),
	}
	msg := &ECDHMessage{FromParty: p2, IsBcast: true, RoundNum: 1}

	_, _, err := s.Update(msg)
	require.NoError(t, err)
	_, _, err = s.Update(msg)
	assert.ErrorIs(t, err, protocol.ErrInvalidMsg)
}

// tamper runs round 1 honestly and lets mutate rewrite bob's decommitment.
func tamper(t *testing.T, mutate func(p *Round2Payload)) error {
	t.Helper()
	parties, sms, out := start(t, newParams(curves.NameSecp256k1))

	sms, out, err := protocol.Route(parties, sms, out)
	require.NoError(t, err)

	var payload Round2Payload
	require.NoError(t, json.Unmarshal(out[1][0].Payload(), &payload))
	mutate(&payload)
	data, err := json.Marshal(&payload)
	require.NoError(t, err)
	out[1][0].(*ECDHMessage).Data = data

	_, _, err = sms[0].Update(out[1][0])
	return err
}

func TestStateMachineBlame(t *testing.T) {
	g := curves.NewSecp256k1()
	other, err := NewKeyPair(g, rand.Reader)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(p *Round2Payload)
		reason string
	}{
		{"salt", func(p *Round2Payload) { p.Salt[0] ^= 0xFF }, "decommitment does not match commitment"},
		{"public key", func(p *Round2Payload) { p.PublicKey = other.PublicKey().Bytes() }, "decommitment does not match commitment"},
		{"proof", func(p *Round2Payload) { p.Proof = []byte("{}") }, "decommitment does not match commitment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tamper(t, tt.mutate)
			require.Error(t, err)

			var blame *protocol.Blame
			require.True(t, errors.As(err, &blame))
			assert.Equal(t, "bob", blame.PartyID.ID())
			assert.Equal(t, uint32(2), blame.Round)
			assert.Equal(t, tt.reason, blame.Reason)
		})
	}
}

func TestStateMachineDone(t *testing.T) {
	parties, sms, out := start(t, newParams(curves.NameToy223))

	sms, out, err := protocol.Route(parties, sms, out)
	require.NoError(t, err)
	final, _, err := protocol.Route(parties, sms, out)
	require.NoError(t, err)

	assert.NotNil(t, final[0].Result())
	assert.Equal(t, "ECDH Finished", final[0].Details())

	_, _, err = final[0].Update(out[1][0])
	assert.ErrorIs(t, err, protocol.ErrProtocolDone)
}
