package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type response struct {
	Handle   uint32 `json:"handle"`
	Infinity bool   `json:"infinity"`
	X        *int64 `json:"x"`
	Y        *int64 `json:"y"`
	Point    string `json:"point"`
	Curve    string `json:"curve"`
	Order    int64  `json:"order"`
	Released bool   `json:"released"`
	Error    *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, s string) response {
	t.Helper()
	var r response
	require.NoError(t, json.Unmarshal([]byte(s), &r), s)
	return r
}

func ok(t *testing.T, s string) response {
	t.Helper()
	r := decode(t, s)
	require.Nil(t, r.Error, s)
	return r
}

func TestBindingArithmetic(t *testing.T) {
	b := newBinding()

	c := ok(t, b.NewCurve(0, 7, 223))
	assert.Equal(t, "Curve(a=0, b=7, p=223)", c.Curve)

	p := ok(t, b.Point(c.Handle, 192, 105))
	q := ok(t, b.Point(c.Handle, 17, 56))
	assert.False(t, p.Infinity)
	assert.Equal(t, int64(192), *p.X)
	assert.Equal(t, int64(105), *p.Y)

	sum := ok(t, b.Add(p.Handle, q.Handle))
	assert.Equal(t, "Point(170, 142)", sum.Point)

	dbl := ok(t, b.ScalarMul(p.Handle, 2))
	assert.Equal(t, "Point(49, 71)", dbl.Point)

	neg := ok(t, b.Negate(p.Handle))
	assert.Equal(t, int64(118), *neg.Y)

	inf := ok(t, b.Add(p.Handle, neg.Handle))
	assert.True(t, inf.Infinity)
	assert.Nil(t, inf.X)
	assert.Equal(t, "Point(infinity)", inf.Point)

	assert.Equal(t, int64(42), ok(t, b.Order(p.Handle)).Order)
	assert.Equal(t, int64(1), ok(t, b.Order(ok(t, b.Infinity(c.Handle)).Handle)).Order)
}

func TestBindingErrors(t *testing.T) {
	b := newBinding()

	r := decode(t, b.NewCurve(0, 0, 223))
	require.NotNil(t, r.Error)
	assert.Equal(t, "InvalidParameters", r.Error.Kind)

	c := ok(t, b.NewCurve(0, 7, 223))
	r = decode(t, b.Point(c.Handle, 200, 119))
	require.NotNil(t, r.Error)
	assert.Equal(t, "PointGenerationFailed", r.Error.Kind)

	other := ok(t, b.NewCurve(1, 1, 23))
	p := ok(t, b.Point(c.Handle, 192, 105))
	q := ok(t, b.Point(other.Handle, 3, 10))
	r = decode(t, b.Add(p.Handle, q.Handle))
	require.NotNil(t, r.Error)
	assert.Equal(t, "DifferentCurves", r.Error.Kind)

	// A curve handle is not a point handle
	r = decode(t, b.Negate(c.Handle))
	require.NotNil(t, r.Error)
	assert.Equal(t, "InvalidHandle", r.Error.Kind)

	r = decode(t, b.Point(p.Handle, 1, 1))
	require.NotNil(t, r.Error)
	assert.Equal(t, "InvalidHandle", r.Error.Kind)
}

func TestBindingRelease(t *testing.T) {
	b := newBinding()
	c := ok(t, b.NewCurve(0, 7, 223))
	p := ok(t, b.Point(c.Handle, 47, 71))
	assert.Equal(t, 2, b.live())

	assert.True(t, ok(t, b.Release(c.Handle)).Released)
	assert.Equal(t, 1, b.live())

	// Points outlive their curve handle
	assert.Equal(t, int64(21), ok(t, b.Order(p.Handle)).Order)

	assert.True(t, ok(t, b.Release(p.Handle)).Released)
	r := decode(t, b.Release(p.Handle))
	require.NotNil(t, r.Error)
	assert.Equal(t, "InvalidHandle", r.Error.Kind)

	r = decode(t, b.Order(p.Handle))
	require.NotNil(t, r.Error)
	assert.Equal(t, "InvalidHandle", r.Error.Kind)
	assert.Equal(t, 0, b.live())
}
