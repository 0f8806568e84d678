package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dargueta/textcompressor"
	"github.com/dargueta/textcompressor/utilities/compression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appResult struct {
	Stdout []byte
	Stderr string
	Err    error
}

// untouchedReader fails the test if anything tries to read from it.
type untouchedReader struct {
	t *testing.T
}

func (r untouchedReader) Read(p []byte) (int, error) {
	r.t.Error("standard input was read")
	return 0, nil
}

func runApp(t *testing.T, stdin []byte, args ...string) appResult {
	var stdout, stderr bytes.Buffer

	app := newApp()
	if stdin == nil {
		app.Reader = untouchedReader{t}
	} else {
		app.Reader = bytes.NewReader(stdin)
	}
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.Run(append([]string{"textcompressor"}, args...))
	return appResult{Stdout: stdout.Bytes(), Stderr: stderr.String(), Err: err}
}

func TestOperator__Compress(t *testing.T) {
	result := runApp(t, []byte("abraabracadabra"), "-")
	require.NoError(t, result.Err)
	assert.Equal(
		t,
		[]byte{97, 98, 114, 97, 129, 131, 99, 97, 100, 133, 97, 128},
		result.Stdout,
	)
}

func TestOperator__Expand(t *testing.T) {
	result := runApp(t, []byte{97, 98, 114, 97, 129, 131, 99, 97, 100, 133, 97, 128}, "+")
	require.NoError(t, result.Err)
	assert.Equal(t, "abraabracadabra", string(result.Stdout))
}

func TestOperator__RoundTrip(t *testing.T) {
	text := []byte(strings.Repeat("She sells sea shells by the sea shore.\n", 30))

	compressed := runApp(t, text, "-")
	require.NoError(t, compressed.Err)
	assert.Less(t, len(compressed.Stdout), len(text), "repetitive text should shrink")

	expanded := runApp(t, compressed.Stdout, "+")
	require.NoError(t, expanded.Err)
	assert.Equal(t, text, expanded.Stdout)
}

func TestOperator__InvalidUsage(t *testing.T) {
	tests := []struct {
		Name string
		Args []string
	}{
		{"missing", []string{}},
		{"unknown symbol", []string{"x"}},
		{"word", []string{"compressplease"}},
		{"too many", []string{"-", "+"}},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			result := runApp(t, nil, test.Args...)
			require.Error(t, result.Err)
			assert.ErrorIs(t, result.Err, textcompressor.ErrInvalidUsage)
			assert.Empty(t, result.Stdout, "output written for invalid usage")
		})
	}
}

func TestOperator__ExpandTruncated(t *testing.T) {
	result := runApp(t, []byte{97, 98, 114}, "+")
	assert.ErrorIs(t, result.Err, textcompressor.ErrTruncatedStream)
	assert.Empty(t, result.Stdout)
}

func TestOperator__CompressRejectsHighBytes(t *testing.T) {
	result := runApp(t, []byte("na\xefve"), "-")
	assert.ErrorIs(t, result.Err, textcompressor.ErrSymbolOutOfRange)
	assert.Empty(t, result.Stdout)
}

func TestOperator__Verbose(t *testing.T) {
	result := runApp(t, []byte("aaa"), "--verbose", "-")
	require.NoError(t, result.Err)
	assert.Equal(t, []byte{97, 129, 128}, result.Stdout)
	assert.Contains(t, result.Stderr, "compress: read 3 bytes, wrote 3 bytes")
}

func TestCompressCommand__Files(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "input.txt")
	streamPath := filepath.Join(dir, "input.lzw")
	expandedPath := filepath.Join(dir, "expanded.txt")

	text := []byte("TOBEORNOTTOBEORTOBEORNOT")
	require.NoError(t, os.WriteFile(textPath, text, 0600))

	result := runApp(t, nil, "compress", "-i", textPath, "-o", streamPath)
	require.NoError(t, result.Err)
	assert.Empty(t, result.Stdout)

	stream, err := os.ReadFile(streamPath)
	require.NoError(t, err)
	assert.Len(t, stream, 17)

	result = runApp(t, nil, "expand", "--input", streamPath, "--output", expandedPath)
	require.NoError(t, result.Err)

	expanded, err := os.ReadFile(expandedPath)
	require.NoError(t, err)
	assert.Equal(t, text, expanded)
}

func TestCompressCommand__Containers(t *testing.T) {
	text := []byte(strings.Repeat("how much wood would a woodchuck chuck ", 50))

	for _, container := range []string{"none", "gzip", "lz4", "rle8", "rle90"} {
		t.Run(container, func(t *testing.T) {
			compressed := runApp(t, text, "compress", "--container", container)
			require.NoError(t, compressed.Err)

			expanded := runApp(t, compressed.Stdout, "expand", "--container", container)
			require.NoError(t, expanded.Err)
			assert.Equal(t, text, expanded.Stdout)
		})
	}
}

func TestCompressCommand__ContainerFromEnvironment(t *testing.T) {
	t.Setenv("TEXTCOMPRESSOR_CONTAINER", "gzip")
	text := []byte("environmental")

	compressed := runApp(t, text, "compress")
	require.NoError(t, compressed.Err)
	require.Greater(t, len(compressed.Stdout), 2)
	assert.Equal(t, []byte{0x1f, 0x8b}, compressed.Stdout[:2], "output isn't gzipped")

	var expanded bytes.Buffer
	_, err := compression.ExpandContainer(
		bytes.NewReader(compressed.Stdout), &expanded, compression.ContainerGzip)
	require.NoError(t, err)
	assert.Equal(t, text, expanded.Bytes())
}

func TestCompressCommand__UnknownContainer(t *testing.T) {
	result := runApp(t, nil, "compress", "--container", "zip")
	assert.ErrorIs(t, result.Err, textcompressor.ErrUnknownContainer)
}

func TestCompressCommand__Report(t *testing.T) {
	text := bytes.Repeat([]byte("ab"), 500)

	result := runApp(t, text, "compress", "--report")
	require.NoError(t, result.Err)
	assert.Contains(t, result.Stderr, "1000B -> ")
	assert.Contains(t, result.Stderr, "compression ratio")
}

func TestCompressCommand__MissingInputFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.txt")
	result := runApp(t, nil, "compress", "-i", missing)
	assert.ErrorIs(t, result.Err, textcompressor.ErrIOFailed)
	assert.ErrorIs(t, result.Err, os.ErrNotExist)
}

func TestDictCommand(t *testing.T) {
	result := runApp(t, []byte("abraabracadabra"), "dict")
	require.NoError(t, result.Err)

	lines := strings.Split(strings.TrimSpace(string(result.Stdout)), "\n")
	require.Len(t, lines, 1+compression.SeedSymbols+10)
	assert.Equal(t, "code,length,pattern", lines[0])
	assert.Equal(t, `129,2,"""ab"""`, lines[1+compression.SeedSymbols])
}
