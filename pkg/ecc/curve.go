package ecc

import "fmt"

// Curve is a non-singular short Weierstrass curve y^2 = x^3 + a*x + b over
// the integers modulo prime.
type Curve struct {
	a, b  Element
	prime int64
}

// NewCurve validates the parameters and returns the curve. It fails with
// ErrInvalidParameters for a non-positive prime or a zero discriminant.
func NewCurve(a, b, prime int64) (*Curve, error) {
	ea, err := NewElement(a, prime)
	if err != nil {
		return nil, wrapError("curve.new", ErrInvalidParameters, err)
	}
	eb, err := NewElement(b, prime)
	if err != nil {
		return nil, wrapError("curve.new", ErrInvalidParameters, err)
	}

	c := &Curve{a: ea, b: eb, prime: prime}
	if c.Discriminant().IsZero() {
		return nil, wrapError("curve.new", ErrInvalidParameters,
			fmt.Errorf("4a^3 + 27b^2 = 0 (mod %d) for a=%d, b=%d", prime, ea.value, eb.value))
	}
	return c, nil
}

func (c *Curve) A() Element {
	return c.a
}

func (c *Curve) B() Element {
	return c.b
}

func (c *Curve) Prime() int64 {
	return c.prime
}

// Discriminant returns 4a^3 + 27b^2 in the curve field.
func (c *Curve) Discriminant() Element {
	four := mustElement(4, c.prime)
	twentySeven := mustElement(27, c.prime)
	return four.mul(c.a.Pow(3)).add(twentySeven.mul(c.b.mul(c.b)))
}

func (c *Curve) String() string {
	return fmt.Sprintf("Curve(a=%d, b=%d, p=%d)", c.a.value, c.b.value, c.prime)
}

// Point normalizes x and y into the field and returns the validated point.
// Any failure is reported as ErrPointGenerationFailed.
func (c *Curve) Point(x, y int64) (Point, error) {
	p, err := NewAffine(mustElement(x, c.prime), mustElement(y, c.prime), c.a, c.b)
	if err != nil {
		return Point{}, wrapError("curve.point", ErrPointGenerationFailed, err)
	}
	return p, nil
}

// Infinity returns the identity of the curve group.
func (c *Curve) Infinity() Point {
	return Infinity(c.a, c.b)
}

// Contains reports whether p belongs to this curve's group.
func (c *Curve) Contains(p Point) bool {
	return p.a.Equal(c.a) && p.b.Equal(c.b)
}

// PointOrder returns the smallest n > 0 with n*p equal to the identity.
//
// The identity has order 1. Searches that add p once before testing for the
// identity report 2 for it; callers porting from such code must not rely on
// that value.
//
// The search adds p to an accumulator at most prime times, so it only finds
// orders up to prime+1. Hasse's bound allows group orders up to
// prime+1+2*sqrt(prime); points whose order exceeds the search bound fail with
// ErrPointGenerationFailed even though the curve is valid.
func (c *Curve) PointOrder(p Point) (int64, error) {
	if !c.Contains(p) {
		return 0, wrapError("curve.order", ErrPointGenerationFailed, newError("curve.order", ErrDifferentCurves))
	}

	acc := p
	for n := int64(1); ; n++ {
		if acc.IsInfinity() {
			return n, nil
		}
		if n > c.prime {
			break
		}

		var err error
		acc, err = acc.Add(p)
		if err != nil {
			return 0, wrapError("curve.order", ErrPointGenerationFailed, err)
		}
	}

	return 0, wrapError("curve.order", ErrPointGenerationFailed,
		fmt.Errorf("no multiple of %s reached infinity within %d additions", p, c.prime))
}

// Points lists every affine point of the curve ordered by x, then y. It
// allocates O(prime) memory and is only meant for small fields.
func (c *Curve) Points() []Point {
	roots := make(map[int64][]int64)
	for y := int64(0); y < c.prime; y++ {
		sq := mustElement(y, c.prime)
		sq = sq.mul(sq)
		roots[sq.value] = append(roots[sq.value], y)
	}

	var points []Point
	for x := int64(0); x < c.prime; x++ {
		ex := mustElement(x, c.prime)
		rhs := ex.mul(ex).mul(ex).add(c.a.mul(ex)).add(c.b)
		for _, y := range roots[rhs.value] {
			points = append(points, Point{x: ex, y: mustElement(y, c.prime), a: c.a, b: c.b, affine: true})
		}
	}
	return points
}
