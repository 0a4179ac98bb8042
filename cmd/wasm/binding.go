package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/smallyu/go-toyecc/internal/log"
	"github.com/smallyu/go-toyecc/pkg/ecc"
)

var errInvalidHandle = errors.New("invalid handle")

type curveEntry struct {
	curve *ecc.Curve
}

type pointEntry struct {
	curve *ecc.Curve
	point ecc.Point
}

// binding owns every curve and point handed out to JavaScript. Handles stay
// valid until Release.
type binding struct {
	mu      sync.Mutex
	next    uint32
	handles map[uint32]interface{}
}

func newBinding() *binding {
	return &binding{handles: make(map[uint32]interface{})}
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type curveResult struct {
	Handle uint32 `json:"handle"`
	A      int64  `json:"a"`
	B      int64  `json:"b"`
	Prime  int64  `json:"prime"`
	Curve  string `json:"curve"`
}

type pointResult struct {
	Handle   uint32 `json:"handle"`
	Infinity bool   `json:"infinity"`
	X        *int64 `json:"x,omitempty"`
	Y        *int64 `json:"y,omitempty"`
	Point    string `json:"point"`
}

func marshal(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return errorJSON(err)
	}
	return string(b)
}

func errorJSON(err error) string {
	kind := ecc.KindName(err)
	if errors.Is(err, errInvalidHandle) {
		kind = "InvalidHandle"
	}
	b, _ := json.Marshal(map[string]errorBody{
		"error": {Kind: kind, Message: err.Error()},
	})
	return string(b)
}

func (b *binding) store(v interface{}) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.handles[b.next] = v
	return b.next
}

func (b *binding) curve(h uint32) (*ecc.Curve, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.handles[h].(curveEntry)
	if !ok {
		return nil, fmt.Errorf("%w: %d is not a curve", errInvalidHandle, h)
	}
	return e.curve, nil
}

func (b *binding) point(h uint32) (pointEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.handles[h].(pointEntry)
	if !ok {
		return pointEntry{}, fmt.Errorf("%w: %d is not a point", errInvalidHandle, h)
	}
	return e, nil
}

func (b *binding) storePoint(curve *ecc.Curve, p ecc.Point) string {
	h := b.store(pointEntry{curve: curve, point: p})
	res := pointResult{Handle: h, Infinity: p.IsInfinity(), Point: p.String()}
	if x, ok := p.X(); ok {
		y, _ := p.Y()
		xv, yv := x.Value(), y.Value()
		res.X, res.Y = &xv, &yv
	}
	return marshal(res)
}

func (b *binding) NewCurve(a, bb, prime int64) string {
	c, err := ecc.NewCurve(a, bb, prime)
	if err != nil {
		return errorJSON(err)
	}
	h := b.store(curveEntry{curve: c})
	log.Debugw("curve created", "handle", h, "curve", c.String())
	return marshal(curveResult{Handle: h, A: c.A().Value(), B: c.B().Value(), Prime: c.Prime(), Curve: c.String()})
}

func (b *binding) Point(curve uint32, x, y int64) string {
	c, err := b.curve(curve)
	if err != nil {
		return errorJSON(err)
	}
	p, err := c.Point(x, y)
	if err != nil {
		return errorJSON(err)
	}
	return b.storePoint(c, p)
}

func (b *binding) Infinity(curve uint32) string {
	c, err := b.curve(curve)
	if err != nil {
		return errorJSON(err)
	}
	return b.storePoint(c, c.Infinity())
}

func (b *binding) Add(p1, p2 uint32) string {
	e1, err := b.point(p1)
	if err != nil {
		return errorJSON(err)
	}
	e2, err := b.point(p2)
	if err != nil {
		return errorJSON(err)
	}
	sum, err := e1.point.Add(e2.point)
	if err != nil {
		return errorJSON(err)
	}
	return b.storePoint(e1.curve, sum)
}

func (b *binding) Negate(p uint32) string {
	e, err := b.point(p)
	if err != nil {
		return errorJSON(err)
	}
	return b.storePoint(e.curve, e.point.Neg())
}

func (b *binding) ScalarMul(p uint32, k int64) string {
	e, err := b.point(p)
	if err != nil {
		return errorJSON(err)
	}
	q, err := e.point.ScalarMul(k)
	if err != nil {
		return errorJSON(err)
	}
	return b.storePoint(e.curve, q)
}

func (b *binding) Order(p uint32) string {
	e, err := b.point(p)
	if err != nil {
		return errorJSON(err)
	}
	n, err := e.curve.PointOrder(e.point)
	if err != nil {
		return errorJSON(err)
	}
	return marshal(map[string]int64{"order": n})
}

// Release frees a handle. Points keep working after their curve is released.
func (b *binding) Release(h uint32) string {
	b.mu.Lock()
	_, ok := b.handles[h]
	delete(b.handles, h)
	b.mu.Unlock()

	if !ok {
		return errorJSON(fmt.Errorf("%w: %d", errInvalidHandle, h))
	}
	log.Debugw("handle released", "handle", h)
	return marshal(map[string]bool{"released": true})
}

func (b *binding) live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handles)
}
