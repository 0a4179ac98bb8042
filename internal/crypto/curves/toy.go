package curves

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	"github.com/smallyu/go-toyecc/pkg/ecc"
)

const toyPointLen = 1 + 8 + 8

// Toy is the group generated by a point of a small pkg/ecc curve.
//
// Elements are encoded as 0x00 for the identity and 0x04 || x || y with
// 8-byte big-endian coordinates otherwise. Decoding checks that the point lies
// on the curve but not that it lies in the subgroup generated by G.
type Toy struct {
	name  string
	curve *ecc.Curve
	g     ecc.Point
	order int64
}

// NewToy builds the group generated by (gx, gy) on curve and computes its
// order by brute force.
func NewToy(name string, curve *ecc.Curve, gx, gy int64) (*Toy, error) {
	g, err := curve.Point(gx, gy)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}
	order, err := curve.PointOrder(g)
	if err != nil {
		return nil, fmt.Errorf("failed to compute generator order: %w", err)
	}
	return &Toy{name: name, curve: curve, g: g, order: order}, nil
}

// MustToy is like NewToy but panics on error. It is meant for constant
// parameters.
func MustToy(name string, a, b, prime, gx, gy int64) *Toy {
	curve, err := ecc.NewCurve(a, b, prime)
	if err != nil {
		panic(err)
	}
	t, err := NewToy(name, curve, gx, gy)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Toy) Name() string {
	return t.name
}

// Curve returns the underlying curve.
func (t *Toy) Curve() *ecc.Curve {
	return t.curve
}

func (t *Toy) Generator() Element {
	return &ToyElement{group: t, p: t.g}
}

func (t *Toy) Identity() Element {
	return &ToyElement{group: t, p: t.curve.Infinity()}
}

func (t *Toy) Order() *big.Int {
	return big.NewInt(t.order)
}

func (t *Toy) RandomScalar(rand io.Reader) (*big.Int, error) {
	return randomScalar(rand, t.Order())
}

// Wrap lifts a point of the underlying curve into the group.
func (t *Toy) Wrap(p ecc.Point) (*ToyElement, error) {
	if !t.curve.Contains(p) {
		return nil, fmt.Errorf("%w: %s is not on %s", ErrTypeMismatch, p, t.curve)
	}
	return &ToyElement{group: t, p: p}, nil
}

func (t *Toy) DecodeElement(b []byte) (Element, error) {
	if len(b) == 1 && b[0] == 0x00 {
		return t.Identity(), nil
	}
	if len(b) != toyPointLen || b[0] != 0x04 {
		return nil, fmt.Errorf("%w: expected %d bytes with prefix 0x04", ErrInvalidEncoding, toyPointLen)
	}

	x := binary.BigEndian.Uint64(b[1:9])
	y := binary.BigEndian.Uint64(b[9:17])
	prime := uint64(t.curve.Prime())
	if x >= prime || y >= prime {
		return nil, fmt.Errorf("%w: coordinate out of range", ErrInvalidEncoding)
	}

	p, err := t.curve.Point(int64(x), int64(y))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return &ToyElement{group: t, p: p}, nil
}

// ToyElement is an element of a Toy group.
type ToyElement struct {
	group *Toy
	p     ecc.Point
}

// Point returns the underlying curve point.
func (e *ToyElement) Point() ecc.Point {
	return e.p
}

func (e *ToyElement) cast(other Element) (*ToyElement, error) {
	o, ok := other.(*ToyElement)
	if !ok || !e.group.curve.Contains(o.p) {
		return nil, ErrTypeMismatch
	}
	return o, nil
}

func (e *ToyElement) Add(other Element) (Element, error) {
	o, err := e.cast(other)
	if err != nil {
		return nil, err
	}
	sum, err := e.p.Add(o.p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return &ToyElement{group: e.group, p: sum}, nil
}

func (e *ToyElement) Neg() Element {
	return &ToyElement{group: e.group, p: e.p.Neg()}
}

// ScalarMult computes k * e exactly when |k| fits in an int64. Larger scalars
// are reduced modulo the generator order first, which is only correct for
// elements of the subgroup generated by G.
func (e *ToyElement) ScalarMult(k *big.Int) (Element, error) {
	p := e.p
	abs := new(big.Int).Abs(k)
	if !abs.IsInt64() {
		abs.Mod(k, big.NewInt(e.group.order))
	} else if k.Sign() < 0 {
		p = p.Neg()
	}

	q, err := p.ScalarMul(abs.Int64())
	if err != nil {
		return nil, err
	}
	return &ToyElement{group: e.group, p: q}, nil
}

func (e *ToyElement) IsIdentity() bool {
	return e.p.IsInfinity()
}

func (e *ToyElement) Equal(other Element) bool {
	o, ok := other.(*ToyElement)
	return ok && e.p.Equal(o.p)
}

func (e *ToyElement) Bytes() []byte {
	x, ok := e.p.X()
	if !ok {
		return []byte{0x00}
	}
	y, _ := e.p.Y()

	out := make([]byte, toyPointLen)
	out[0] = 0x04
	binary.BigEndian.PutUint64(out[1:9], uint64(x.Value()))
	binary.BigEndian.PutUint64(out[9:17], uint64(y.Value()))
	return out
}

func (e *ToyElement) String() string {
	return e.p.String()
}
