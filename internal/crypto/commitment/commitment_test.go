package commitment

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitment(t *testing.T) {
	msg := []byte("Hello, ECDH!")

	comm, err := New(rand.Reader, msg)
	require.NoError(t, err)
	assert.Len(t, comm.C, 32)
	assert.Len(t, comm.D, 32)

	assert.True(t, Verify(comm.C, comm.D, msg))
}

func TestCommitmentVerifyFailed(t *testing.T) {
	msg := []byte("Secret Message")
	comm, err := New(nil, msg)
	require.NoError(t, err)

	// Case 1: Wrong message
	assert.False(t, Verify(comm.C, comm.D, []byte("Wrong Message")))

	// Case 2: Wrong salt
	wrongSalt := bytes.Clone(comm.D)
	wrongSalt[0] ^= 0xFF
	assert.False(t, Verify(comm.C, wrongSalt, msg))

	// Case 3: Wrong commitment
	wrongC := bytes.Clone(comm.C)
	wrongC[0] ^= 0xFF
	assert.False(t, Verify(wrongC, comm.D, msg))

	// Case 4: Truncated values
	assert.False(t, Verify(comm.C[:31], comm.D, msg))
	assert.False(t, Verify(comm.C, comm.D[:31], msg))
}

func TestCommitmentParts(t *testing.T) {
	comm, err := New(rand.Reader, []byte("ab"), []byte("c"))
	require.NoError(t, err)

	assert.True(t, Verify(comm.C, comm.D, []byte("ab"), []byte("c")))

	// Same bytes, different split
	assert.False(t, Verify(comm.C, comm.D, []byte("a"), []byte("bc")))
	assert.False(t, Verify(comm.C, comm.D, []byte("abc")))
	assert.False(t, Verify(comm.C, comm.D, []byte("c"), []byte("ab")))
}

func TestCommitmentShortRandom(t *testing.T) {
	_, err := New(bytes.NewReader(make([]byte, 16)), []byte("x"))
	assert.Error(t, err)
}
