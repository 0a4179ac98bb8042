// Package kdf derives symmetric keys from Diffie-Hellman shared elements.
package kdf

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"

	"github.com/smallyu/go-toyecc/internal/crypto/curves"
)

// MaxKeyLen is the longest key HKDF-SHA3-256 can produce.
const MaxKeyLen = 255 * 32

var ErrIdentity = errors.New("kdf: shared element is the identity")

// Derive expands the encoding of shared into an n-byte key with
// HKDF-SHA3-256. salt may be nil; info binds the key to its use.
func Derive(shared curves.Element, salt, info []byte, n int) ([]byte, error) {
	if shared == nil || shared.IsIdentity() {
		return nil, ErrIdentity
	}
	if n <= 0 || n > MaxKeyLen {
		return nil, fmt.Errorf("kdf: invalid key length %d", n)
	}

	key := make([]byte, n)
	r := hkdf.New(sha3.New256, shared.Bytes(), salt, info)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to expand key: %w", err)
	}
	return key, nil
}
