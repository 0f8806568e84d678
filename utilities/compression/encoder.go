package compression

import (
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/textcompressor"
	"github.com/icza/bitio"
)

// countingWriter tracks how many bytes have been written through it. It
// deliberately doesn't expose the underlying writer's Close method.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// checkSymbols makes sure every byte in `data` has a seeded code.
func checkSymbols(data []byte) error {
	for i, b := range data {
		if b > MaxSymbol {
			return textcompressor.ErrSymbolOutOfRange.WithMessage(
				fmt.Sprintf(
					"byte 0x%02x at offset %d is outside the range [0, %d]",
					b,
					i,
					MaxSymbol,
				),
			)
		}
	}
	return nil
}

// encode runs the compressor over `data`, calling `emit` for every code in
// order, ending with the end-of-stream marker.
func encode(
	data []byte, dict *Dictionary, alloc *CodeAllocator, emit func(Code) error,
) error {
	if err := checkSymbols(data); err != nil {
		return err
	}

	for position := 0; position < len(data); {
		code, matchLength := dict.LongestPrefix(data[position:])
		if matchLength == 0 {
			// Can't happen with a seeded dictionary and checked input.
			return textcompressor.ErrSymbolOutOfRange.WithMessage(
				fmt.Sprintf("no pattern matches offset %d", position))
		}

		if err := emit(code); err != nil {
			return err
		}

		matchEnd := position + matchLength
		if matchEnd < len(data) {
			newCode, err := alloc.AllocateSingle()
			if err == nil {
				dict.Insert(data[position:matchEnd+1], newCode)
			} else if !errors.Is(err, textcompressor.ErrDictionaryFull) {
				return err
			}
		}
		position = matchEnd
	}

	return emit(EOFCode)
}

// EncodeCodes compresses `data` and returns the codes it compresses to,
// including the trailing end-of-stream marker.
func EncodeCodes(data []byte) ([]Code, error) {
	codes := make([]Code, 0, len(data)/2+1)
	err := encode(
		data,
		NewDictionary(),
		NewCodeAllocator(),
		func(c Code) error {
			codes = append(codes, c)
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return codes, nil
}

// Encoder writes a compressed stream to an [io.Writer]. An Encoder can only be
// used for one stream.
type Encoder struct {
	out        *countingWriter
	bw         *bitio.Writer
	dictionary *Dictionary
	alloc      *CodeAllocator
	closed     bool
}

// NewEncoder creates an Encoder that writes to `w`. The Encoder never closes
// `w`.
func NewEncoder(w io.Writer) *Encoder {
	out := &countingWriter{w: w}
	return &Encoder{
		out:        out,
		bw:         bitio.NewWriter(out),
		dictionary: NewDictionary(),
		alloc:      NewCodeAllocator(),
	}
}

// Encode compresses all of `data`, writes the end-of-stream marker, and flushes
// the output. The return value is the number of bytes written to the underlying
// writer, only valid if no error occurred.
//
// Input is validated before anything is written, so if `data` contains bytes
// above 127 nothing is written at all.
func (enc *Encoder) Encode(data []byte) (int64, error) {
	if enc.closed {
		return 0, textcompressor.ErrAlreadyClosed.WithMessage(
			"an Encoder can only write one stream")
	}
	enc.closed = true

	err := encode(
		data,
		enc.dictionary,
		enc.alloc,
		func(c Code) error {
			enc.bw.TryWriteBits(uint64(c), CodeWidth)
			return enc.bw.TryError
		},
	)
	if err != nil {
		if enc.bw.TryError != nil {
			return enc.out.n, textcompressor.ErrIOFailed.Wrap(err)
		}
		return enc.out.n, err
	}

	if err = enc.bw.Close(); err != nil {
		return enc.out.n, textcompressor.ErrIOFailed.Wrap(err)
	}
	return enc.out.n, nil
}

// Dictionary returns the dictionary the Encoder built. It's only complete
// after [Encoder.Encode] has returned.
func (enc *Encoder) Dictionary() *Dictionary {
	return enc.dictionary
}

// DynamicCodesUsed gives the number of codes assigned to multi-byte patterns so
// far.
func (enc *Encoder) DynamicCodesUsed() int {
	return enc.alloc.Allocated()
}

// Compress reads `input` until EOF and writes its compressed form to `output`.
// The return value is the number of bytes written, only valid if no error
// occurred.
func Compress(input io.Reader, output io.Writer) (int64, error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return 0, textcompressor.ErrIOFailed.Wrap(err)
	}
	return NewEncoder(output).Encode(data)
}
