package curves

import (
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Secp256k1 is the secp256k1 group with its standard generator.
type Secp256k1 struct{}

// NewSecp256k1 returns the secp256k1 group.
func NewSecp256k1() Group {
	return &Secp256k1{}
}

func (c *Secp256k1) Name() string {
	return "secp256k1"
}

func (c *Secp256k1) Order() *big.Int {
	return new(big.Int).Set(secp256k1.S256().Params().N)
}

func (c *Secp256k1) RandomScalar(rand io.Reader) (*big.Int, error) {
	return randomScalar(rand, c.Order())
}

func (c *Secp256k1) Generator() Element {
	var k secp256k1.ModNScalar
	k.SetInt(1)

	var g secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&k, &g)
	g.ToAffine()
	return &Secp256k1Element{p: g}
}

func (c *Secp256k1) Identity() Element {
	return &Secp256k1Element{}
}

// DecodeElement accepts 0x00 for the identity and SEC1 compressed or
// uncompressed points otherwise.
func (c *Secp256k1) DecodeElement(b []byte) (Element, error) {
	if len(b) == 1 && b[0] == 0x00 {
		return c.Identity(), nil
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}

	var p secp256k1.JacobianPoint
	pub.AsJacobian(&p)
	return &Secp256k1Element{p: p}, nil
}

// Secp256k1Element keeps its point in affine form (Z = 1) or as the point at
// infinity.
type Secp256k1Element struct {
	p secp256k1.JacobianPoint
}

func toModN(k *big.Int) *secp256k1.ModNScalar {
	r := new(big.Int).Mod(k, secp256k1.S256().Params().N)

	var s secp256k1.ModNScalar
	s.SetByteSlice(r.Bytes())
	return &s
}

func (e *Secp256k1Element) Add(other Element) (Element, error) {
	o, ok := other.(*Secp256k1Element)
	if !ok {
		return nil, ErrTypeMismatch
	}

	var r secp256k1.JacobianPoint
	secp256k1.AddNonConst(&e.p, &o.p, &r)
	return newSecp256k1Element(r), nil
}

func (e *Secp256k1Element) Neg() Element {
	if e.IsIdentity() {
		return e
	}
	r := e.p
	r.Y.Normalize().Negate(1).Normalize()
	return &Secp256k1Element{p: r}
}

func (e *Secp256k1Element) ScalarMult(k *big.Int) (Element, error) {
	if e.IsIdentity() {
		return e, nil
	}

	var r secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(toModN(k), &e.p, &r)
	return newSecp256k1Element(r), nil
}

func newSecp256k1Element(p secp256k1.JacobianPoint) *Secp256k1Element {
	if (p.X.IsZero() && p.Y.IsZero()) || p.Z.IsZero() {
		return &Secp256k1Element{}
	}
	p.ToAffine()
	return &Secp256k1Element{p: p}
}

func (e *Secp256k1Element) IsIdentity() bool {
	return (e.p.X.IsZero() && e.p.Y.IsZero()) || e.p.Z.IsZero()
}

func (e *Secp256k1Element) Equal(other Element) bool {
	o, ok := other.(*Secp256k1Element)
	if !ok {
		return false
	}
	if e.IsIdentity() || o.IsIdentity() {
		return e.IsIdentity() == o.IsIdentity()
	}
	return e.p.X.Equals(&o.p.X) && e.p.Y.Equals(&o.p.Y)
}

// Bytes returns the 33-byte compressed encoding, or 0x00 for the identity.
func (e *Secp256k1Element) Bytes() []byte {
	if e.IsIdentity() {
		return []byte{0x00}
	}
	return secp256k1.NewPublicKey(&e.p.X, &e.p.Y).SerializeCompressed()
}

func (e *Secp256k1Element) String() string {
	return "secp256k1(" + hex.EncodeToString(e.Bytes()) + ")"
}
