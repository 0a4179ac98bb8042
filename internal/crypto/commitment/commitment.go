package commitment

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"io"
)

const saltLen = 32

// Commitment represents the output of a commitment scheme.
// C = H(salt || len(p1) || p1 || ... || len(pn) || pn)
type Commitment struct {
	C []byte // The commitment value (hash)
	D []byte // The decommitment value (salt)
}

// New commits to the ordered list of parts using a fresh salt read from
// random. A nil random uses crypto/rand.
func New(random io.Reader, parts ...[]byte) (*Commitment, error) {
	if random == nil {
		random = rand.Reader
	}

	// 1. Generate random salt
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(random, salt); err != nil {
		return nil, errors.New("commitment: failed to read salt")
	}

	// 2. Compute C
	return &Commitment{
		C: digest(salt, parts),
		D: salt,
	}, nil
}

// Verify checks that c opens to parts under the salt d.
func Verify(c, d []byte, parts ...[]byte) bool {
	if len(c) != sha256.Size || len(d) != saltLen {
		return false
	}
	return subtle.ConstantTimeCompare(digest(d, parts), c) == 1
}

// digest length-prefixes every part so that different splits of the same
// bytes never collide.
func digest(salt []byte, parts [][]byte) []byte {
	var l [8]byte

	h := sha256.New()
	h.Write(salt)
	for _, p := range parts {
		binary.BigEndian.PutUint64(l[:], uint64(len(p)))
		h.Write(l[:])
		h.Write(p)
	}
	return h.Sum(nil)
}
