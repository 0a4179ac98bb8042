package elgamal

import (
	"encoding/binary"
	"fmt"

	"github.com/smallyu/go-toyecc/internal/crypto/curves"
)

// Ciphertext is an ElGamal ciphertext (C1, C2) = (r*G, M + r*Y).
type Ciphertext struct {
	C1 curves.Element
	C2 curves.Element
}

// Add returns the component-wise sum of c and other, which decrypts to the
// sum of both plaintexts.
func (c *Ciphertext) Add(other *Ciphertext) (*Ciphertext, error) {
	if c == nil || other == nil || c.C1 == nil || c.C2 == nil || other.C1 == nil || other.C2 == nil {
		return nil, ErrInvalidCiphertext
	}
	c1, err := c.C1.Add(other.C1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}
	c2, err := c.C2.Add(other.C2)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}
	return &Ciphertext{C1: c1, C2: c2}, nil
}

// Bytes serializes the ciphertext as len(C1) || C1 || C2, with a 2-byte
// big-endian length prefix.
func (c *Ciphertext) Bytes() []byte {
	b1 := c.C1.Bytes()
	b2 := c.C2.Bytes()

	out := make([]byte, 2, 2+len(b1)+len(b2))
	binary.BigEndian.PutUint16(out, uint16(len(b1)))
	out = append(out, b1...)
	return append(out, b2...)
}

// DecodeCiphertext parses the output of Ciphertext.Bytes for group g.
func DecodeCiphertext(g curves.Group, data []byte) (*Ciphertext, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: too short", ErrInvalidCiphertext)
	}
	n := int(binary.BigEndian.Uint16(data))
	if len(data) < 2+n {
		return nil, fmt.Errorf("%w: truncated C1", ErrInvalidCiphertext)
	}

	c1, err := g.DecodeElement(data[2 : 2+n])
	if err != nil {
		return nil, fmt.Errorf("%w: C1: %v", ErrInvalidCiphertext, err)
	}
	c2, err := g.DecodeElement(data[2+n:])
	if err != nil {
		return nil, fmt.Errorf("%w: C2: %v", ErrInvalidCiphertext, err)
	}
	return &Ciphertext{C1: c1, C2: c2}, nil
}

// String returns a string representation of the Ciphertext.
func (c *Ciphertext) String() string {
	if c == nil || c.C1 == nil || c.C2 == nil {
		return "{C1: nil, C2: nil}"
	}
	return fmt.Sprintf("{C1: %s, C2: %s}", c.C1, c.C2)
}
