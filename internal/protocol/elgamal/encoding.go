package elgamal

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/smallyu/go-toyecc/internal/crypto/curves"
)

// MaxDecodable bounds the search range of DecodeMessage.
const MaxDecodable = 1 << 40

var ErrNoDiscreteLog = errors.New("elgamal: no discrete log in range")

// EncodeMessage maps m to the group element m*G.
func EncodeMessage(g curves.Group, m *big.Int) (curves.Element, error) {
	if m == nil || m.Sign() < 0 {
		return nil, errors.New("elgamal: message must be non-negative")
	}
	return curves.ScalarBaseMult(g, m)
}

// DecodeMessage solves M = x*G for the smallest x in [0, maxMessage] using
// the baby-step giant-step algorithm.
func DecodeMessage(g curves.Group, M curves.Element, maxMessage uint64) (*big.Int, error) {
	if M == nil {
		return nil, ErrInvalidCiphertext
	}
	if maxMessage > MaxDecodable {
		return nil, fmt.Errorf("elgamal: search bound %d exceeds %d", maxMessage, uint64(MaxDecodable))
	}
	mSqrt := uint64(math.Sqrt(float64(maxMessage))) + 1

	// Precompute baby steps: j*G for j in [0, mSqrt)
	babySteps := make(map[string]uint64, mSqrt)
	babyStep := g.Identity()
	for j := uint64(0); j < mSqrt; j++ {
		key := hex.EncodeToString(babyStep.Bytes())
		if _, ok := babySteps[key]; !ok {
			babySteps[key] = j
		}

		var err error
		if babyStep, err = babyStep.Add(g.Generator()); err != nil {
			return nil, err
		}
	}

	// c = mSqrt * (-G)
	c, err := curves.ScalarBaseMult(g, new(big.Int).SetUint64(mSqrt))
	if err != nil {
		return nil, err
	}
	c = c.Neg()

	giantStep := M
	for i := uint64(0); i <= mSqrt; i++ {
		if j, found := babySteps[hex.EncodeToString(giantStep.Bytes())]; found {
			x := i*mSqrt + j
			if x > maxMessage {
				break
			}
			return new(big.Int).SetUint64(x), nil
		}
		if giantStep, err = giantStep.Add(c); err != nil {
			return nil, err
		}
	}

	return nil, ErrNoDiscreteLog
}
