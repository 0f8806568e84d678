package compression

import (
	"io"
	"strconv"

	"github.com/dargueta/textcompressor"
	"github.com/gocarina/gocsv"
)

// DictionaryRow is one row of a dictionary dump.
type DictionaryRow struct {
	Code   int `csv:"code"`
	Length int `csv:"length"`
	// Pattern is the pattern as a quoted Go string literal, so control
	// characters and quotes survive a trip through CSV intact.
	Pattern string `csv:"pattern"`
}

// DictionaryRows converts dictionary entries into rows for a CSV dump.
func DictionaryRows(entries []DictionaryEntry) []DictionaryRow {
	rows := make([]DictionaryRow, len(entries))
	for i, entry := range entries {
		rows[i] = DictionaryRow{
			Code:    int(entry.Code),
			Length:  len(entry.Pattern),
			Pattern: strconv.Quote(string(entry.Pattern)),
		}
	}
	return rows
}

// DumpDictionary compresses `input`, throws away the code stream, and writes
// the dictionary the compressor built to `output` as CSV. It returns the number
// of entries written.
func DumpDictionary(input io.Reader, output io.Writer) (int, error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return 0, textcompressor.ErrIOFailed.Wrap(err)
	}

	encoder := NewEncoder(io.Discard)
	if _, err = encoder.Encode(data); err != nil {
		return 0, err
	}

	rows := DictionaryRows(encoder.Dictionary().Entries())
	if err = gocsv.Marshal(rows, output); err != nil {
		return 0, textcompressor.ErrIOFailed.Wrap(err)
	}
	return len(rows), nil
}
