// Package ecdh implements elliptic-curve Diffie-Hellman key agreement over any
// curves.Group, both as a direct key-pair API and as a two-party
// message-driven protocol with committed, proven public keys.
package ecdh

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/smallyu/go-toyecc/internal/crypto/curves"
	"github.com/smallyu/go-toyecc/internal/crypto/kdf"
)

var (
	ErrInvalidPeerKey = errors.New("ecdh: invalid peer public key")
	ErrNilGroup       = errors.New("ecdh: group cannot be nil")
)

// keyInfo is the HKDF info string for session keys.
var keyInfo = []byte("toyecc/ecdh/v1")

// KeyPair is a Diffie-Hellman private scalar and its public element.
type KeyPair struct {
	group curves.Group
	d     *big.Int
	pub   curves.Element
}

// maxKeyDraws bounds the rejection sampling in NewKeyPair.
const maxKeyDraws = 256

// NewKeyPair draws d uniformly from the scalars in [1, order) that are coprime
// to the order and computes d*G. For prime-order groups that is every scalar.
// On composite-order groups the product of two such scalars is again coprime
// to the order, so two honest parties never agree on the identity.
func NewKeyPair(g curves.Group, rand io.Reader) (*KeyPair, error) {
	if g == nil {
		return nil, ErrNilGroup
	}
	order := g.Order()
	gcd := new(big.Int)
	for i := 0; i < maxKeyDraws; i++ {
		d, err := g.RandomScalar(rand)
		if err != nil {
			return nil, fmt.Errorf("failed to draw private key: %w", err)
		}
		if gcd.GCD(nil, nil, d, order).Cmp(big.NewInt(1)) == 0 {
			return NewKeyPairFromScalar(g, d)
		}
	}
	return nil, fmt.Errorf("ecdh: no private key coprime to the group order after %d draws", maxKeyDraws)
}

// NewKeyPairFromScalar builds the key pair for a known private scalar d, which
// must lie in [1, order).
func NewKeyPairFromScalar(g curves.Group, d *big.Int) (*KeyPair, error) {
	if g == nil {
		return nil, ErrNilGroup
	}
	if d == nil || d.Sign() <= 0 || d.Cmp(g.Order()) >= 0 {
		return nil, errors.New("ecdh: private key out of range")
	}
	pub, err := curves.ScalarBaseMult(g, d)
	if err != nil {
		return nil, fmt.Errorf("failed to compute public key: %w", err)
	}
	return &KeyPair{group: g, d: new(big.Int).Set(d), pub: pub}, nil
}

func (k *KeyPair) Group() curves.Group {
	return k.group
}

func (k *KeyPair) PublicKey() curves.Element {
	return k.pub
}

// PrivateKey returns a copy of the private scalar.
func (k *KeyPair) PrivateKey() *big.Int {
	return new(big.Int).Set(k.d)
}

// SharedSecret computes d*peer. The identity and elements of another group
// are rejected.
func (k *KeyPair) SharedSecret(peer curves.Element) (curves.Element, error) {
	if peer == nil || peer.IsIdentity() {
		return nil, fmt.Errorf("%w: identity", ErrInvalidPeerKey)
	}
	if _, err := peer.Add(k.group.Identity()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPeerKey, err)
	}
	return peer.ScalarMult(k.d)
}

// DeriveKey turns a shared element into an n-byte symmetric key bound to
// sessionID.
func DeriveKey(shared curves.Element, sessionID []byte, n int) ([]byte, error) {
	return kdf.Derive(shared, sessionID, keyInfo, n)
}
