// Package ecc implements elliptic curve arithmetic over small prime fields.
//
// It is meant for learning how the point group works: field elements, the
// chord-and-tangent group law, double-and-add scalar multiplication and
// brute-force order computation. Values fit in an int64 and nothing here is
// constant time, so it must not be used to protect real secrets.
package ecc

import (
	"fmt"
	"math/bits"
)

// Element is an integer modulo a fixed modulus, normally a prime.
// The zero value is not a valid element; use NewElement.
type Element struct {
	value   int64
	modulus int64
}

// NewElement normalizes value into [0, modulus).
func NewElement(value, modulus int64) (Element, error) {
	if modulus <= 0 {
		return Element{}, newError("field.new", ErrInvalidElement)
	}
	return Element{value: mod(value, modulus), modulus: modulus}, nil
}

// mustElement is used where the modulus has already been validated.
func mustElement(value, modulus int64) Element {
	return Element{value: mod(value, modulus), modulus: modulus}
}

// Value returns the canonical representative in [0, modulus).
func (e Element) Value() int64 {
	return e.value
}

// Prime returns the modulus of the field the element lives in.
func (e Element) Prime() int64 {
	return e.modulus
}

func (e Element) IsZero() bool {
	return e.value == 0
}

// Equal reports whether both value and modulus match.
func (e Element) Equal(other Element) bool {
	return e.value == other.value && e.modulus == other.modulus
}

func (e Element) String() string {
	return fmt.Sprintf("%d (mod %d)", e.value, e.modulus)
}

func (e Element) compatible(op string, other Element) error {
	if e.modulus <= 0 || other.modulus <= 0 {
		return newError(op, ErrInvalidElement)
	}
	if e.modulus != other.modulus {
		return wrapError(op, ErrMismatchedFields,
			fmt.Errorf("modulus %d != %d", e.modulus, other.modulus))
	}
	return nil
}

// Add returns e + other.
func (e Element) Add(other Element) (Element, error) {
	if err := e.compatible("field.add", other); err != nil {
		return Element{}, err
	}
	return e.add(other), nil
}

// Sub returns e - other.
func (e Element) Sub(other Element) (Element, error) {
	if err := e.compatible("field.sub", other); err != nil {
		return Element{}, err
	}
	return e.sub(other), nil
}

// Mul returns e * other.
func (e Element) Mul(other Element) (Element, error) {
	if err := e.compatible("field.mul", other); err != nil {
		return Element{}, err
	}
	return e.mul(other), nil
}

// Div returns e * other^-1.
func (e Element) Div(other Element) (Element, error) {
	if err := e.compatible("field.div", other); err != nil {
		return Element{}, err
	}
	inv, err := other.Inverse()
	if err != nil {
		return Element{}, err
	}
	return e.mul(inv), nil
}

// Neg returns the additive inverse. Negating zero yields zero.
func (e Element) Neg() Element {
	if e.modulus <= 0 {
		return e
	}
	return Element{value: mod(e.modulus-e.value, e.modulus), modulus: e.modulus}
}

// Inverse returns the multiplicative inverse using the extended Euclidean
// algorithm. It fails with ErrDivisionByZero for zero and with
// ErrInvalidElement when the value shares a factor with the modulus.
func (e Element) Inverse() (Element, error) {
	if e.modulus <= 0 {
		return Element{}, newError("field.inverse", ErrInvalidElement)
	}
	if e.value == 0 {
		return Element{}, newError("field.inverse", ErrDivisionByZero)
	}

	oldR, r := e.modulus, e.value
	oldT, t := int64(0), int64(1)
	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldT, t = t, oldT-q*t
	}

	if oldR != 1 {
		return Element{}, wrapError("field.inverse", ErrInvalidElement,
			fmt.Errorf("gcd(%d, %d) = %d", e.value, e.modulus, oldR))
	}
	return mustElement(oldT, e.modulus), nil
}

// Pow raises e to exponent by square-and-multiply.
//
// A negative exponent is reduced modulo modulus-1, which equals e^-1 raised
// to |exponent| only when the modulus is prime (Fermat). The modulus is not
// checked for primality.
func (e Element) Pow(exponent int64) Element {
	switch {
	case e.modulus <= 0:
		return e
	case e.modulus == 1:
		return Element{value: 0, modulus: 1}
	}
	if exponent < 0 {
		exponent = mod(exponent, e.modulus-1)
	}

	result := Element{value: mod(1, e.modulus), modulus: e.modulus}
	base := e
	for exponent > 0 {
		if exponent&1 == 1 {
			result = result.mul(base)
		}
		base = base.mul(base)
		exponent >>= 1
	}
	return result
}

// add, sub and mul assume both operands share a modulus.

func (e Element) add(other Element) Element {
	s := uint64(e.value) + uint64(other.value)
	return Element{value: int64(s % uint64(e.modulus)), modulus: e.modulus}
}

func (e Element) sub(other Element) Element {
	d := e.value - other.value
	if d < 0 {
		d += e.modulus
	}
	return Element{value: d, modulus: e.modulus}
}

func (e Element) mul(other Element) Element {
	hi, lo := bits.Mul64(uint64(e.value), uint64(other.value))
	return Element{value: int64(bits.Rem64(hi, lo, uint64(e.modulus))), modulus: e.modulus}
}

func mod(v, m int64) int64 {
	r := v % m
	if r < 0 {
		r += m
	}
	return r
}
