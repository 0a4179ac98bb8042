package ecc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurve(t *testing.T) {
	c, err := NewCurve(0, 7, 223)
	require.NoError(t, err)
	assert.Equal(t, int64(223), c.Prime())
	assert.Equal(t, int64(0), c.A().Value())
	assert.Equal(t, int64(7), c.B().Value())
	assert.Equal(t, "Curve(a=0, b=7, p=223)", c.String())

	// 27 * 49 mod 223
	assert.Equal(t, int64(208), c.Discriminant().Value())

	c, err = NewCurve(-1, 230, 223)
	require.NoError(t, err)
	assert.Equal(t, int64(222), c.A().Value())
	assert.Equal(t, int64(7), c.B().Value())
}

func TestNewCurveRejectsSingular(t *testing.T) {
	for _, p := range []int64{2, 3, 5, 13, 223} {
		_, err := NewCurve(0, 0, p)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidParameters)
	}

	// 4(-3)^3 + 27(2)^2 = 0
	_, err := NewCurve(-3, 2, 223)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	for _, p := range []int64{0, -223} {
		_, err := NewCurve(0, 7, p)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidParameters)
		assert.ErrorIs(t, err, ErrInvalidElement)
		assert.Equal(t, "InvalidParameters", KindName(err))
	}
}

func TestCurvePoint(t *testing.T) {
	c := secpToy(t)

	p, err := c.Point(192, 105)
	require.NoError(t, err)
	assert.True(t, c.Contains(p))

	// Coordinates are normalized
	q, err := c.Point(192-223, 105+223)
	require.NoError(t, err)
	assert.True(t, q.Equal(p))

	_, err = c.Point(200, 119)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPointGenerationFailed)
	assert.ErrorIs(t, err, ErrNotOnCurve)
	assert.Equal(t, "PointGenerationFailed", KindName(err))

	assert.True(t, c.Infinity().IsInfinity())
	assert.True(t, c.Contains(c.Infinity()))
}

func TestPointOrder(t *testing.T) {
	c := secpToy(t)

	tests := []struct {
		x, y, order int64
	}{
		{15, 86, 7},
		{47, 71, 21},
		{192, 105, 42},
		{17, 56, 42},
		{143, 98, 42},
		{0, 26, 3},
		{6, 0, 2},
		{28, 95, 6},
		{10, 28, 14},
	}
	for _, tt := range tests {
		p := pt(t, c, tt.x, tt.y)
		n, err := c.PointOrder(p)
		require.NoError(t, err)
		assert.Equal(t, tt.order, n, "order of %s", p)
	}

	// The identity has order 1, not 2
	n, err := c.PointOrder(c.Infinity())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPointOrderClosure(t *testing.T) {
	c := secpToy(t)
	for _, p := range c.Points() {
		n, err := c.PointOrder(p)
		require.NoError(t, err)

		got, err := p.ScalarMul(n)
		require.NoError(t, err)
		assert.True(t, got.IsInfinity())

		for k := int64(1); k < n; k++ {
			got, err := p.ScalarMul(k)
			require.NoError(t, err)
			assert.False(t, got.IsInfinity(), "%d*%s", k, p)
		}
	}
}

func TestPointOrderSearchBound(t *testing.T) {
	// (0, 1) has order 9 on y^2 = x^3 + x + 1 mod 5, beyond the prime+1 search
	c, err := NewCurve(1, 1, 5)
	require.NoError(t, err)

	p := pt(t, c, 0, 1)
	_, err = c.PointOrder(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPointGenerationFailed)

	got, err := p.ScalarMul(9)
	require.NoError(t, err)
	assert.True(t, got.IsInfinity())
}

func TestPointOrderForeignPoint(t *testing.T) {
	c := secpToy(t)
	other, err := NewCurve(1, 1, 23)
	require.NoError(t, err)

	_, err = c.PointOrder(pt(t, other, 3, 10))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPointGenerationFailed)
	assert.ErrorIs(t, err, ErrDifferentCurves)
}

func TestCurvePoints(t *testing.T) {
	c := secpToy(t)
	points := c.Points()
	// 252 group elements including the identity
	assert.Len(t, points, 251)
	for _, p := range points {
		assert.True(t, c.Contains(p))
		x, _ := p.X()
		y, _ := p.Y()
		_, err := c.Point(x.Value(), y.Value())
		assert.NoError(t, err)
	}

	small, err := NewCurve(1, 1, 23)
	require.NoError(t, err)
	assert.Len(t, small.Points(), 27)
}
