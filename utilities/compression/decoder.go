package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/textcompressor"
	"github.com/icza/bitio"
)

// decode rebuilds the original data from the codes returned by `next`. `next`
// must return [io.EOF] once the source runs out of codes.
//
// Output is accumulated in memory and only returned if the end-of-stream marker
// was found; a malformed stream never produces partial output.
func decode(next func() (Code, error), table *Table, alloc *CodeAllocator) ([]byte, error) {
	var output bytes.Buffer
	codesRead := 0

	readCode := func() (Code, error) {
		code, err := next()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return 0, textcompressor.ErrTruncatedStream.
					Wrap(io.ErrUnexpectedEOF).
					WithMessage(fmt.Sprintf("no end-of-stream code after %d codes", codesRead))
			}
			return 0, textcompressor.ErrIOFailed.Wrap(err)
		}
		codesRead++
		return code, nil
	}

	firstCode, err := readCode()
	if err != nil {
		return nil, err
	}
	if firstCode == EOFCode {
		return []byte{}, nil
	}

	previous, ok := table.Get(firstCode)
	if !ok {
		return nil, textcompressor.ErrInvalidCode.WithMessage(
			fmt.Sprintf("stream must start with a code below %d, got %d", SeedSymbols, firstCode))
	}
	output.Write(previous)

	for {
		code, err := readCode()
		if err != nil {
			return nil, err
		}
		if code == EOFCode {
			return output.Bytes(), nil
		}

		current, ok := table.Get(code)
		if !ok {
			pendingCode, hasPending := alloc.Peek()
			if !hasPending || code != pendingCode {
				return nil, textcompressor.ErrInvalidCode.WithMessage(
					fmt.Sprintf("code %d at position %d hasn't been defined", code, codesRead-1))
			}
			// The code refers to the pattern we're about to define, which can
			// only be the previous pattern followed by its own first byte.
			current = extendPattern(previous, previous[0])
		}
		output.Write(current)

		newCode, err := alloc.AllocateSingle()
		if err == nil {
			if !table.Add(newCode, extendPattern(previous, current[0])) {
				return nil, textcompressor.ErrInternal.WithMessage(
					fmt.Sprintf("decode table refused code %d", newCode))
			}
		} else if !errors.Is(err, textcompressor.ErrDictionaryFull) {
			return nil, err
		}
		previous = current
	}
}

// DecodeCodes rebuilds the original data from a sequence of codes. The
// sequence must end with the end-of-stream marker; codes after it are ignored.
func DecodeCodes(codes []Code) ([]byte, error) {
	position := 0
	next := func() (Code, error) {
		if position >= len(codes) {
			return 0, io.EOF
		}
		code := codes[position]
		position++
		return code, nil
	}
	return decode(next, NewTable(), NewCodeAllocator())
}

// Decoder reads a compressed stream from an [io.Reader]. A Decoder can only be
// used for one stream.
type Decoder struct {
	br     *bitio.Reader
	table  *Table
	alloc  *CodeAllocator
	closed bool
}

// NewDecoder creates a Decoder that reads from `r`.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		br:    bitio.NewReader(r),
		table: NewTable(),
		alloc: NewCodeAllocator(),
	}
}

// Decode reads codes up to and including the end-of-stream marker and returns
// the decompressed data. Anything after the marker is ignored, though it may
// already have been buffered from `r`.
func (dec *Decoder) Decode() ([]byte, error) {
	if dec.closed {
		return nil, textcompressor.ErrAlreadyClosed.WithMessage(
			"a Decoder can only read one stream")
	}
	dec.closed = true

	next := func() (Code, error) {
		value, err := dec.br.ReadBits(CodeWidth)
		return Code(value), err
	}
	return decode(next, dec.table, dec.alloc)
}

// Table returns the table the Decoder built while reading.
func (dec *Decoder) Table() *Table {
	return dec.table
}

// Expand reads a compressed stream from `input` and writes the decompressed
// data to `output`. Nothing is written if the stream is malformed.
//
// The return value is the number of bytes written, only valid if no error
// occurred.
func Expand(input io.Reader, output io.Writer) (int64, error) {
	data, err := NewDecoder(input).Decode()
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, nil
	}

	n, err := output.Write(data)
	if err != nil {
		return int64(n), textcompressor.ErrIOFailed.Wrap(err)
	}
	return int64(n), nil
}
