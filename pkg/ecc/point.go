package ecc

import "fmt"

// Point is a point on y^2 = x^3 + a*x + b, or the point at infinity.
//
// The curve coefficients travel with every point so that the group law needs
// no reference back to a Curve. Points are immutable; every operation returns
// a new value.
type Point struct {
	x, y Element
	a, b Element

	affine bool
}

// NewPoint validates and builds a point. A nil coordinate means "absent":
// both nil is the point at infinity, exactly one nil fails with
// ErrNotOnCurve.
func NewPoint(x, y *Element, a, b Element) (Point, error) {
	switch {
	case x == nil && y == nil:
		if err := a.compatible("point.new", b); err != nil {
			return Point{}, wrapError("point.new", ErrNotOnCurve, err)
		}
		return Point{a: a, b: b}, nil
	case x == nil || y == nil:
		return Point{}, wrapError("point.new", ErrNotOnCurve,
			fmt.Errorf("exactly one coordinate is present"))
	}
	return NewAffine(*x, *y, a, b)
}

// NewAffine builds the affine point (x, y) and checks it lies on the curve.
func NewAffine(x, y, a, b Element) (Point, error) {
	for _, e := range []Element{y, a, b} {
		if err := x.compatible("point.new", e); err != nil {
			return Point{}, wrapError("point.new", ErrNotOnCurve, err)
		}
	}

	p := Point{x: x, y: y, a: a, b: b, affine: true}
	if !p.onCurve() {
		return Point{}, wrapError("point.new", ErrNotOnCurve,
			fmt.Errorf("(%d, %d) does not satisfy the curve equation", x.value, y.value))
	}
	return p, nil
}

// Infinity returns the group identity for the curve with coefficients a, b.
func Infinity(a, b Element) Point {
	return Point{a: a, b: b}
}

// onCurve checks y^2 == x^3 + a*x + b. All elements share a modulus.
func (p Point) onCurve() bool {
	lhs := p.y.mul(p.y)
	rhs := p.x.mul(p.x).mul(p.x).add(p.a.mul(p.x)).add(p.b)
	return lhs.Equal(rhs)
}

func (p Point) IsInfinity() bool {
	return !p.affine
}

// X returns the x coordinate; ok is false for the point at infinity.
func (p Point) X() (x Element, ok bool) {
	return p.x, p.affine
}

// Y returns the y coordinate; ok is false for the point at infinity.
func (p Point) Y() (y Element, ok bool) {
	return p.y, p.affine
}

func (p Point) A() Element {
	return p.a
}

func (p Point) B() Element {
	return p.b
}

func (p Point) sameCurve(other Point) bool {
	return p.a.Equal(other.a) && p.b.Equal(other.b)
}

// Equal reports whether p and other are the same group element of the same
// curve.
func (p Point) Equal(other Point) bool {
	if !p.sameCurve(other) || p.affine != other.affine {
		return false
	}
	if !p.affine {
		return true
	}
	return p.x.Equal(other.x) && p.y.Equal(other.y)
}

func (p Point) String() string {
	if !p.affine {
		return "Point(infinity)"
	}
	return fmt.Sprintf("Point(%d, %d)", p.x.value, p.y.value)
}

// Neg returns -p. The point at infinity is its own inverse.
func (p Point) Neg() Point {
	if !p.affine {
		return p
	}
	q := p
	q.y = p.y.Neg()
	return q
}

// Add implements the chord-and-tangent group law.
func (p Point) Add(other Point) (Point, error) {
	if !p.sameCurve(other) {
		return Point{}, wrapError("point.add", ErrDifferentCurves,
			fmt.Errorf("(a=%d, b=%d) vs (a=%d, b=%d)", p.a.value, p.b.value, other.a.value, other.b.value))
	}

	// Identity absorption
	if !p.affine {
		return other, nil
	}
	if !other.affine {
		return p, nil
	}

	x1, y1 := p.x, p.y
	x2, y2 := other.x, other.y

	// P + (-P) = O, which also covers doubling a point with y = 0
	if x1.Equal(x2) && y1.Equal(y2.Neg()) {
		return Infinity(p.a, p.b), nil
	}

	var (
		slope Element
		err   error
	)
	if x1.Equal(x2) && y1.Equal(y2) {
		// s = (3x1^2 + a) / 2y1
		three := mustElement(3, x1.modulus)
		num := three.mul(x1).mul(x1).add(p.a)
		slope, err = num.Div(y1.add(y1))
	} else {
		// s = (y2 - y1) / (x2 - x1)
		slope, err = y2.sub(y1).Div(x2.sub(x1))
	}
	if err != nil {
		return Point{}, wrapError("point.add", ErrNotOnCurve, err)
	}

	// x3 = s^2 - x1 - x2, y3 = s(x1 - x3) - y1
	x3 := slope.mul(slope).sub(x1).sub(x2)
	y3 := slope.mul(x1.sub(x3)).sub(y1)

	return NewAffine(x3, y3, p.a, p.b)
}

// ScalarMul returns k*p by double-and-add.
//
// A non-positive k yields the point at infinity: the loop runs zero times.
// Negative scalars are therefore not the group-theoretic -|k|*p.
func (p Point) ScalarMul(k int64) (Point, error) {
	result := Infinity(p.a, p.b)
	current := p

	for k > 0 {
		if k&1 == 1 {
			var err error
			result, err = result.Add(current)
			if err != nil {
				return Point{}, err
			}
		}
		k >>= 1
		if k == 0 {
			break
		}

		var err error
		current, err = current.Add(current)
		if err != nil {
			return Point{}, err
		}
	}

	return result, nil
}
