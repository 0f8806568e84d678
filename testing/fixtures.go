package testing

import (
	"crypto/rand"
	"io"
	"testing"

	"github.com/dargueta/textcompressor/utilities/compression"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// LoadFixture takes a compressed code stream and returns a stream to access the
// decompressed data.
//
//   - Writes to the stream do not affect `compressedBytes`.
//   - While the stream can be written to, its size is fixed to `expectedSize`.
//     Attempting to write past the end of this buffer will trigger an error.
func LoadFixture(t *testing.T, compressedBytes []byte, expectedSize uint) io.ReadWriteSeeker {
	require.Greater(t, len(compressedBytes), 0, "compressed stream is empty")

	expanded, err := compression.ExpandBytes(compressedBytes)
	require.NoError(t, err)

	require.Equal(
		t,
		expectedSize,
		uint(len(expanded)),
		"expanded fixture is wrong size",
	)
	return bytesextra.NewReadWriteSeeker(expanded)
}

// RandomText returns `size` random bytes, all in the range the compressor
// accepts. It's guaranteed to either return a valid slice or fail the test and
// abort.
func RandomText(t *testing.T, size uint) []byte {
	data := make([]byte, size)
	_, err := rand.Read(data)
	require.NoErrorf(t, err, "failed to generate %d random bytes", size)

	for i := range data {
		data[i] &= compression.MaxSymbol
	}
	return data
}

// RandomTextFromAlphabet returns `size` random bytes drawn from `alphabet`.
// Small alphabets repeat often, which exercises dictionary growth much more
// than uniformly random text does.
func RandomTextFromAlphabet(t *testing.T, size uint, alphabet []byte) []byte {
	require.NotEmpty(t, alphabet, "alphabet can't be empty")

	data := RandomText(t, size)
	for i := range data {
		data[i] = alphabet[int(data[i])%len(alphabet)]
	}
	return data
}
