package compression_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/dargueta/textcompressor"
	ct "github.com/dargueta/textcompressor/testing"
	c "github.com/dargueta/textcompressor/utilities/compression"
	"github.com/noxer/bytewriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type RLE8TestCase struct {
	Input          []byte
	ExpectedOutput []byte
	Name           string
}

func TestCompressRLE8__Basic(t *testing.T) {
	tests := []RLE8TestCase{
		{[]byte{}, []byte{}, "empty"},
		{[]byte{4, 4}, []byte{4, 4, 0}, "run with two only"},
		{[]byte{0, 1, 2, 3, 4}, []byte{0, 1, 2, 3, 4}, "no runs"},
		{[]byte{6, 1, 3, 0, 0}, []byte{6, 1, 3, 0, 0, 0}, "two at end"},
		{[]byte{6, 1, 0, 0, 0}, []byte{6, 1, 0, 0, 1}, "three at end"},
		{[]byte{9, 5, 5, 5, 5, 5, 3, 7}, []byte{9, 5, 5, 3, 3, 7}, "short run"},
		{
			[]byte{9, 5, 5, 5, 5, 5, 5, 3, 3, 3, 3, 7, 2, 6},
			[]byte{9, 5, 5, 4, 3, 3, 2, 7, 2, 6},
			"adjacent runs",
		},
		{
			bytes.Repeat([]byte{255}, 1024),
			[]byte{255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 251},
			"single long run of the top code",
		},
		{bytes.Repeat([]byte{129}, 257), []byte{129, 129, 255}, "257"},
		{bytes.Repeat([]byte{129}, 258), []byte{129, 129, 255, 129}, "258"},
		{bytes.Repeat([]byte{129}, 259), []byte{129, 129, 255, 129, 129, 0}, "259"},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			outputBuffer := make([]byte, len(test.ExpectedOutput)*2)
			outputWriter := bytewriter.New(outputBuffer)

			n, err := c.CompressRLE8(bytes.NewReader(test.Input), outputWriter)
			require.NoError(t, err)
			assert.EqualValues(t, len(test.ExpectedOutput), n, "wrong number of bytes written")
			assert.Equal(t, test.ExpectedOutput, outputBuffer[:n], "output data is wrong")

			decompressed, err := decompressRLE8ToBytes(outputBuffer[:n])
			require.NoError(t, err)
			assert.Equal(t, test.Input, decompressed)
		})
	}
}

func TestRLE8RoundTrip__CodeStreams(t *testing.T) {
	inputs := map[string][]byte{
		"empty":          {},
		"nulls":          make([]byte, 9000),
		"small alphabet": ct.RandomTextFromAlphabet(t, 5000, []byte("ab")),
		"random text":    ct.RandomText(t, 1852),
	}

	for name, input := range inputs {
		input := input
		t.Run(name, func(t *testing.T) {
			stream, err := c.CompressBytes(input)
			require.NoError(t, err)

			var packed bytes.Buffer
			n, err := c.CompressRLE8(bytes.NewReader(stream), &packed)
			require.NoError(t, err)
			assert.EqualValues(t, packed.Len(), n)

			unpacked, err := decompressRLE8ToBytes(packed.Bytes())
			require.NoError(t, err)
			assert.Equal(t, stream, unpacked)
		})
	}
}

func TestRLE8Decompress__MissingRepeatCount(t *testing.T) {
	data := []byte{9, 1, 4, 4}
	decompressed := make([]byte, 16)
	writer := bytewriter.New(decompressed)

	_, err := c.DecompressRLE8(bytes.NewReader(data), writer)
	require.Error(t, err, "read with missing repeat count should've failed")
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, textcompressor.ErrTruncatedStream)
}

func TestRLE8Decompress__OutputFull(t *testing.T) {
	writer := bytewriter.New(make([]byte, 2))

	_, err := c.DecompressRLE8(bytes.NewReader([]byte{7, 7, 10}), writer)
	assert.ErrorIs(t, err, textcompressor.ErrIOFailed)
}

func decompressRLE8ToBytes(packed []byte) ([]byte, error) {
	var output bytes.Buffer
	_, err := c.DecompressRLE8(bytes.NewReader(packed), &output)
	if err != nil {
		return nil, err
	}
	return append([]byte{}, output.Bytes()...), nil
}
