package testing

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/dargueta/textcompressor/utilities/compression"
	"github.com/gocarina/gocsv"
)

// Fixture is a known input and the exact code stream it must compress to.
type Fixture struct {
	Name  string `csv:"name"`
	Input string `csv:"input"`
	// Codes is the expected code stream as space-separated decimal numbers,
	// including the end-of-stream marker.
	Codes string `csv:"codes"`
	Notes string `csv:"notes"`
}

// ExpectedCodes parses [Fixture.Codes].
func (f *Fixture) ExpectedCodes() ([]compression.Code, error) {
	fields := strings.Fields(f.Codes)
	codes := make([]compression.Code, len(fields))

	for i, field := range fields {
		value, err := strconv.ParseUint(field, 10, compression.CodeWidth)
		if err != nil {
			return nil, fmt.Errorf("fixture %q: bad code %q at index %d: %w", f.Name, field, i, err)
		}
		codes[i] = compression.Code(value)
	}
	return codes, nil
}

// ExpectedStream returns the exact bytes the fixture's input compresses to.
// Codes are one byte wide, so this is just the codes themselves.
func (f *Fixture) ExpectedStream() ([]byte, error) {
	codes, err := f.ExpectedCodes()
	if err != nil {
		return nil, err
	}

	stream := make([]byte, len(codes))
	for i, code := range codes {
		stream[i] = byte(code)
	}
	return stream, nil
}

//go:embed corpus.csv
var corpusRawCSV string
var corpus []Fixture

// Corpus returns every fixture in the embedded corpus, in file order.
func Corpus() []Fixture {
	fixtures := make([]Fixture, len(corpus))
	copy(fixtures, corpus)
	return fixtures
}

// GetFixture returns the fixture with the given name.
func GetFixture(name string) (Fixture, error) {
	for _, fixture := range corpus {
		if fixture.Name == name {
			return fixture, nil
		}
	}
	return Fixture{}, fmt.Errorf("no fixture exists with name %q", name)
}

func init() {
	csvReader := csv.NewReader(strings.NewReader(corpusRawCSV))
	csvReader.Comma = '|'

	var rows []Fixture
	if err := gocsv.UnmarshalCSV(csvReader, &rows); err != nil {
		panic(fmt.Errorf("failed to decode fixture corpus: %w", err))
	}

	seen := make(map[string]bool, len(rows))
	for i, row := range rows {
		if seen[row.Name] {
			panic(fmt.Errorf("duplicate definition for fixture %q found on row %d", row.Name, i+1))
		}
		seen[row.Name] = true
	}
	corpus = rows
}
