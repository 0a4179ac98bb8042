package schnorr

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"io"
	"math/big"

	"github.com/smallyu/go-toyecc/internal/crypto/curves"
)

var domain = []byte("toyecc/schnorr/v1")

// Proof represents a Schnorr proof of knowledge of a discrete logarithm.
// Proves knowledge of x such that X = x * G.
type Proof struct {
	R curves.Element // Commitment R = k * G
	S *big.Int       // Response s = k + e * x
}

// Prove generates a Schnorr proof for the secret x, public key X = x*G.
// The session ID sid binds the proof to one protocol run.
func Prove(g curves.Group, sid []byte, x *big.Int, X curves.Element, rand io.Reader) (*Proof, error) {
	if g == nil || x == nil || X == nil {
		return nil, errors.New("schnorr: inputs cannot be nil")
	}
	n := g.Order()

	// 1. Generate random nonce k
	k, err := g.RandomScalar(rand)
	if err != nil {
		return nil, err
	}

	// 2. Compute R = k * G
	R, err := curves.ScalarBaseMult(g, k)
	if err != nil {
		return nil, err
	}

	// 3. Compute challenge e = H(sid, X, R)
	e := challenge(g, sid, X, R)

	// 4. Compute s = k + e * x mod n
	s := new(big.Int).Mul(e, x)
	s.Add(s, k)
	s.Mod(s, n)

	return &Proof{R: R, S: s}, nil
}

// Verify checks the validity of the Schnorr proof for public key X.
func (p *Proof) Verify(g curves.Group, sid []byte, X curves.Element) bool {
	if p == nil || p.R == nil || p.S == nil || g == nil || X == nil {
		return false
	}

	// Check if s is in [0, n-1]
	if p.S.Sign() < 0 || p.S.Cmp(g.Order()) >= 0 {
		return false
	}

	// 1. Compute challenge e = H(sid, X, R)
	e := challenge(g, sid, X, p.R)

	// 2. Check s*G = R + e*X
	lhs, err := curves.ScalarBaseMult(g, p.S)
	if err != nil {
		return false
	}
	eX, err := X.ScalarMult(e)
	if err != nil {
		return false
	}
	rhs, err := p.R.Add(eX)
	if err != nil {
		return false
	}
	return lhs.Equal(rhs)
}

// challenge computes H(domain, group, sid, X, R) mod n
func challenge(g curves.Group, sid []byte, X, R curves.Element) *big.Int {
	h := sha256.New()
	for _, part := range [][]byte{domain, []byte(g.Name()), sid, X.Bytes(), R.Bytes()} {
		h.Write(big.NewInt(int64(len(part))).FillBytes(make([]byte, 8)))
		h.Write(part)
	}

	e := new(big.Int).SetBytes(h.Sum(nil))
	return e.Mod(e, g.Order())
}

type wireProof struct {
	R []byte `json:"r"`
	S []byte `json:"s"`
}

// Marshal encodes the proof as JSON.
func (p *Proof) Marshal() ([]byte, error) {
	if p == nil || p.R == nil || p.S == nil {
		return nil, errors.New("schnorr: incomplete proof")
	}
	return json.Marshal(wireProof{R: p.R.Bytes(), S: p.S.Bytes()})
}

// Unmarshal decodes a proof produced by Marshal for group g.
func Unmarshal(g curves.Group, data []byte) (*Proof, error) {
	var w wireProof
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	R, err := g.DecodeElement(w.R)
	if err != nil {
		return nil, err
	}
	return &Proof{R: R, S: new(big.Int).SetBytes(w.S)}, nil
}
