// Package elgamal implements additively homomorphic ElGamal encryption over
// any curves.Group. Messages are group elements; small integers are encoded
// as m*G and recovered with a baby-step giant-step search.
package elgamal

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/smallyu/go-toyecc/internal/crypto/curves"
)

var (
	ErrInvalidCiphertext = errors.New("elgamal: invalid ciphertext")
	ErrNilKey            = errors.New("elgamal: key cannot be nil")
)

// PublicKey is Y = d*G.
type PublicKey struct {
	Group curves.Group
	Y     curves.Element
}

// PrivateKey holds the secret scalar d.
type PrivateKey struct {
	PublicKey
	D *big.Int
}

// GenerateKey generates a new public/private ElGamal encryption key pair. d is
// drawn uniformly from [1, order).
func GenerateKey(g curves.Group, rand io.Reader) (*PrivateKey, error) {
	if g == nil {
		return nil, errors.New("elgamal: group cannot be nil")
	}
	d, err := g.RandomScalar(rand)
	if err != nil {
		return nil, fmt.Errorf("failed to generate private key scalar: %w", err)
	}
	Y, err := curves.ScalarBaseMult(g, d)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{PublicKey: PublicKey{Group: g, Y: Y}, D: d}, nil
}

// Encrypt encrypts the message element M as (r*G, M + r*Y). The randomness r
// can be provided or nil to draw a fresh one from rand.
func (pk *PublicKey) Encrypt(M curves.Element, r *big.Int, rand io.Reader) (*Ciphertext, error) {
	if pk == nil || pk.Group == nil || pk.Y == nil {
		return nil, ErrNilKey
	}
	if M == nil {
		return nil, errors.New("elgamal: message cannot be nil")
	}

	var err error
	if r == nil {
		r, err = pk.Group.RandomScalar(rand)
		if err != nil {
			return nil, fmt.Errorf("elgamal encryption failed: %w", err)
		}
	}

	// compute C1 = r * G
	c1, err := curves.ScalarBaseMult(pk.Group, r)
	if err != nil {
		return nil, fmt.Errorf("elgamal encryption failed: %w", err)
	}
	// compute s = r * Y
	s, err := pk.Y.ScalarMult(r)
	if err != nil {
		return nil, fmt.Errorf("elgamal encryption failed: %w", err)
	}
	// compute C2 = M + s
	c2, err := M.Add(s)
	if err != nil {
		return nil, fmt.Errorf("elgamal encryption failed: %w", err)
	}
	return &Ciphertext{C1: c1, C2: c2}, nil
}

// EncryptValue encodes m as m*G and encrypts it.
func (pk *PublicKey) EncryptValue(m *big.Int, r *big.Int, rand io.Reader) (*Ciphertext, error) {
	if pk == nil || pk.Group == nil {
		return nil, ErrNilKey
	}
	M, err := EncodeMessage(pk.Group, m)
	if err != nil {
		return nil, err
	}
	return pk.Encrypt(M, r, rand)
}

// Decrypt returns the message element M = C2 + (-(d*C1)).
func (sk *PrivateKey) Decrypt(c *Ciphertext) (curves.Element, error) {
	if sk == nil || sk.D == nil {
		return nil, ErrNilKey
	}
	if c == nil || c.C1 == nil || c.C2 == nil {
		return nil, ErrInvalidCiphertext
	}

	dC1, err := c.C1.ScalarMult(sk.D)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}
	M, err := c.C2.Add(dC1.Neg())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}
	return M, nil
}

// DecryptValue decrypts c and solves M = m*G for m in [0, maxMessage].
func (sk *PrivateKey) DecryptValue(c *Ciphertext, maxMessage uint64) (*big.Int, error) {
	M, err := sk.Decrypt(c)
	if err != nil {
		return nil, err
	}
	return DecodeMessage(sk.Group, M, maxMessage)
}

// CheckR reports whether r was the randomness used to produce c, that is
// whether C1 == r*G. It does not need the private key.
func CheckR(g curves.Group, c *Ciphertext, r *big.Int) bool {
	if c == nil || c.C1 == nil || r == nil {
		return false
	}
	rG, err := curves.ScalarBaseMult(g, r)
	return err == nil && rG.Equal(c.C1)
}
