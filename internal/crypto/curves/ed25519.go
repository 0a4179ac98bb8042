package curves

import (
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	"filippo.io/edwards25519"
)

// l = 2^252 + 27742317777372353535851937790883648493
var ed25519Order, _ = new(big.Int).SetString("72370055773322622139731865630429942408571163593799076060019509382854542509893", 10)

// Ed25519 is the prime-order subgroup of edwards25519.
type Ed25519 struct{}

// NewEd25519 returns the edwards25519 group.
func NewEd25519() Group {
	return &Ed25519{}
}

func (c *Ed25519) Name() string {
	return "ed25519"
}

func (c *Ed25519) Order() *big.Int {
	return new(big.Int).Set(ed25519Order)
}

func (c *Ed25519) RandomScalar(rand io.Reader) (*big.Int, error) {
	return randomScalar(rand, ed25519Order)
}

func (c *Ed25519) Generator() Element {
	return &Ed25519Element{p: edwards25519.NewGeneratorPoint()}
}

func (c *Ed25519) Identity() Element {
	return &Ed25519Element{p: edwards25519.NewIdentityPoint()}
}

// DecodeElement parses a 32-byte encoding and rejects points with a torsion
// component.
func (c *Ed25519) DecodeElement(b []byte) (Element, error) {
	p, err := edwards25519.NewIdentityPoint().SetBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}

	// (l-1)*P + P is the identity only for points of the prime-order subgroup
	lm1 := new(big.Int).Sub(ed25519Order, big.NewInt(1))
	q := edwards25519.NewIdentityPoint().ScalarMult(toEd25519Scalar(lm1), p)
	q.Add(q, p)
	if q.Equal(edwards25519.NewIdentityPoint()) != 1 {
		return nil, fmt.Errorf("%w: point is not in the prime-order subgroup", ErrInvalidEncoding)
	}
	return &Ed25519Element{p: p}, nil
}

// toEd25519Scalar reduces n modulo l. edwards25519 scalars are little-endian
// while big.Int.Bytes is big-endian.
func toEd25519Scalar(n *big.Int) *edwards25519.Scalar {
	r := new(big.Int).Mod(n, ed25519Order)
	be := r.Bytes()

	var buf [32]byte
	for i := 0; i < len(be); i++ {
		buf[len(be)-1-i] = be[i]
	}

	s, err := edwards25519.NewScalar().SetCanonicalBytes(buf[:])
	if err != nil {
		// unreachable: r < l
		panic(err)
	}
	return s
}

// Ed25519Element implements Element
type Ed25519Element struct {
	p *edwards25519.Point
}

func (e *Ed25519Element) Add(other Element) (Element, error) {
	o, ok := other.(*Ed25519Element)
	if !ok {
		return nil, ErrTypeMismatch
	}
	return &Ed25519Element{p: edwards25519.NewIdentityPoint().Add(e.p, o.p)}, nil
}

func (e *Ed25519Element) Neg() Element {
	return &Ed25519Element{p: edwards25519.NewIdentityPoint().Negate(e.p)}
}

func (e *Ed25519Element) ScalarMult(k *big.Int) (Element, error) {
	res := edwards25519.NewIdentityPoint().ScalarMult(toEd25519Scalar(k), e.p)
	return &Ed25519Element{p: res}, nil
}

func (e *Ed25519Element) IsIdentity() bool {
	return e.p.Equal(edwards25519.NewIdentityPoint()) == 1
}

func (e *Ed25519Element) Equal(other Element) bool {
	o, ok := other.(*Ed25519Element)
	return ok && e.p.Equal(o.p) == 1
}

func (e *Ed25519Element) Bytes() []byte {
	return e.p.Bytes()
}

func (e *Ed25519Element) String() string {
	return "ed25519(" + hex.EncodeToString(e.Bytes()) + ")"
}
