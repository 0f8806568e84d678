package compression

import (
	"bufio"
	"errors"
	"io"

	"github.com/dargueta/textcompressor"
)

// rle90Marker introduces a repeat count in RLE90 data. The marker followed by
// zero is a literal 0x90 byte.
const rle90Marker = 0x90

// rle90MinRepeat is the shortest run of a non-marker byte worth encoding as a
// repeat instead of literally.
const rle90MinRepeat = 3

// RLE90Writer run-length encodes everything written to it using the BinHex
// RLE90 scheme: `b 0x90 n` is `b` followed by `n` more copies of it.
//
// Runs can continue across calls to Write, so the final run is only written
// when the writer is closed. Closing doesn't close the underlying writer.
type RLE90Writer struct {
	stream    *bufio.Writer
	hasRun    bool
	runByte   byte
	runLength int
}

// NewRLE90Writer returns an RLE90Writer that writes encoded data to `stream`.
func NewRLE90Writer(stream io.Writer) *RLE90Writer {
	return &RLE90Writer{stream: bufio.NewWriter(stream)}
}

func (writer *RLE90Writer) Write(p []byte) (int, error) {
	for _, nextByte := range p {
		if writer.hasRun && nextByte == writer.runByte {
			writer.runLength++
			continue
		}
		if err := writer.flushRun(); err != nil {
			return 0, err
		}
		writer.hasRun = true
		writer.runByte = nextByte
		writer.runLength = 1
	}
	return len(p), nil
}

func (writer *RLE90Writer) flushRun() error {
	if !writer.hasRun {
		return nil
	}
	writer.hasRun = false

	var encoded []byte
	if writer.runByte == rle90Marker {
		encoded = append(encoded, rle90Marker, 0)
	} else {
		encoded = append(encoded, writer.runByte)
	}

	remaining := writer.runLength - 1
	if writer.runByte != rle90Marker && remaining < rle90MinRepeat {
		for ; remaining > 0; remaining-- {
			encoded = append(encoded, writer.runByte)
		}
	}
	for remaining > 0 {
		repeatCount := remaining
		if repeatCount > 255 {
			repeatCount = 255
		}
		encoded = append(encoded, rle90Marker, byte(repeatCount))
		remaining -= repeatCount
	}

	if _, err := writer.stream.Write(encoded); err != nil {
		return textcompressor.ErrIOFailed.Wrap(err)
	}
	return nil
}

// Close writes out the final run and flushes buffered data to the underlying
// writer.
func (writer *RLE90Writer) Close() error {
	if err := writer.flushRun(); err != nil {
		return err
	}
	if err := writer.stream.Flush(); err != nil {
		return textcompressor.ErrIOFailed.Wrap(err)
	}
	return nil
}

// RLE90Reader decodes data written by an [RLE90Writer].
type RLE90Reader struct {
	stream        *bufio.Reader
	lastByte      byte
	hasLastByte   bool
	pendingRepeat int
}

// NewRLE90Reader returns an RLE90Reader that decodes data from `stream`.
func NewRLE90Reader(stream io.Reader) *RLE90Reader {
	return &RLE90Reader{stream: bufio.NewReader(stream)}
}

// Read decodes up to len(p) bytes into `p`. A marker at the very end of the
// input fails with [io.ErrUnexpectedEOF]; a repeat count with no byte before it
// fails with [textcompressor.ErrCorruptContainer].
func (reader *RLE90Reader) Read(p []byte) (int, error) {
	numBytesRead := 0

	for numBytesRead < len(p) {
		// Copy out repeats we've decoded but haven't returned yet.
		if reader.pendingRepeat > 0 {
			p[numBytesRead] = reader.lastByte
			numBytesRead++
			reader.pendingRepeat--
			continue
		}

		nextByte, err := reader.stream.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && numBytesRead > 0 {
				// Report EOF on the next call.
				return numBytesRead, nil
			}
			return numBytesRead, err
		}

		if nextByte != rle90Marker {
			reader.lastByte = nextByte
			reader.hasLastByte = true
			p[numBytesRead] = nextByte
			numBytesRead++
			continue
		}

		repeatCount, err := reader.stream.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return numBytesRead, io.ErrUnexpectedEOF
			}
			return numBytesRead, err
		}

		if repeatCount == 0 {
			reader.lastByte = rle90Marker
			reader.hasLastByte = true
			p[numBytesRead] = rle90Marker
			numBytesRead++
		} else if !reader.hasLastByte {
			return numBytesRead, textcompressor.ErrCorruptContainer.WithMessage(
				"RLE90 repeat count with no byte to repeat")
		} else {
			reader.pendingRepeat = int(repeatCount)
		}
	}
	return numBytesRead, nil
}
