package compression_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dargueta/textcompressor"
	c "github.com/dargueta/textcompressor/utilities/compression"
	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpDictionary(t *testing.T) {
	var output bytes.Buffer
	n, err := c.DumpDictionary(strings.NewReader("abraabracadabra"), &output)
	require.NoError(t, err)

	// 128 seeded patterns plus one learned pattern per emitted code except the
	// last: 11 codes before EOF, so 10 learned.
	assert.Equal(t, c.SeedSymbols+10, n)

	var rows []c.DictionaryRow
	require.NoError(t, gocsv.UnmarshalBytes(output.Bytes(), &rows))
	require.Len(t, rows, n)

	assert.Equal(t, c.DictionaryRow{Code: 0, Length: 1, Pattern: `"\x00"`}, rows[0])
	assert.Equal(t, c.DictionaryRow{Code: 97, Length: 1, Pattern: `"a"`}, rows[97])
	assert.Equal(t, c.DictionaryRow{Code: 129, Length: 2, Pattern: `"ab"`}, rows[c.SeedSymbols])
	assert.Equal(t, c.DictionaryRow{Code: 138, Length: 4, Pattern: `"abra"`}, rows[n-1])
}

func TestDumpDictionary__BadInput(t *testing.T) {
	var output bytes.Buffer
	_, err := c.DumpDictionary(strings.NewReader("\xff"), &output)
	assert.ErrorIs(t, err, textcompressor.ErrSymbolOutOfRange)
	assert.Equal(t, 0, output.Len())
}

func TestDictionaryRows__QuotesControlCharacters(t *testing.T) {
	rows := c.DictionaryRows([]c.DictionaryEntry{
		{Code: 10, Pattern: []byte("\n")},
		{Code: 200, Pattern: []byte("say \"hi\"")},
	})

	assert.Equal(t, `"\n"`, rows[0].Pattern)
	assert.Equal(t, `"say \"hi\""`, rows[1].Pattern)
	assert.Equal(t, 8, rows[1].Length)
}
