// Package curves abstracts the prime-order groups the protocols run on.
//
// A Group is either one of the toy short Weierstrass curves built on pkg/ecc
// or a production curve (secp256k1, edwards25519). Protocol code only talks to
// the Group and Element interfaces and never inspects the backend.
package curves

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
)

var (
	ErrTypeMismatch    = errors.New("curves: elements belong to different groups")
	ErrInvalidEncoding = errors.New("curves: invalid element encoding")
	ErrUnknownGroup    = errors.New("curves: unknown group")
)

// Group is a cyclic group generated by Generator with prime or small order.
type Group interface {
	// Name returns the registry name of the group.
	Name() string

	// Generator returns the base point G.
	Generator() Element

	// Identity returns the neutral element.
	Identity() Element

	// Order returns the order of the generator.
	Order() *big.Int

	// RandomScalar draws a scalar uniformly from [1, Order).
	RandomScalar(rand io.Reader) (*big.Int, error)

	// DecodeElement parses the output of Element.Bytes.
	DecodeElement(b []byte) (Element, error)
}

// Element is an immutable group element.
type Element interface {
	Add(other Element) (Element, error)
	Neg() Element

	// ScalarMult computes k * e. Negative scalars multiply -e.
	ScalarMult(k *big.Int) (Element, error)

	IsIdentity() bool
	Equal(other Element) bool

	// Bytes returns the canonical encoding of the element.
	Bytes() []byte
	String() string
}

// Sub returns a - b.
func Sub(a, b Element) (Element, error) {
	return a.Add(b.Neg())
}

// ScalarBaseMult returns k * G.
func ScalarBaseMult(g Group, k *big.Int) (Element, error) {
	return g.Generator().ScalarMult(k)
}

func randomScalar(r io.Reader, order *big.Int) (*big.Int, error) {
	if r == nil {
		r = rand.Reader
	}
	if order.Cmp(big.NewInt(2)) < 0 {
		return nil, errors.New("curves: group order too small")
	}

	// Generate random integer in [0, order-2], then shift into [1, order-1]
	bound := new(big.Int).Sub(order, big.NewInt(1))
	k, err := rand.Int(r, bound)
	if err != nil {
		return nil, err
	}
	return k.Add(k, big.NewInt(1)), nil
}
