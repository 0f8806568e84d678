package compression

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/textcompressor"
)

// CompressRLE8 reads bytes from the input and writes run-length encoded data to
// the output until the input is exhausted. A run of two or more identical bytes
// is written as two copies of the byte followed by the number of additional
// repeats (0-255). The return value is the number of bytes written, only valid
// if no error occurred.
func CompressRLE8(input io.Reader, output io.Writer) (int64, error) {
	grouper := NewRLEGrouper(input)

	totalBytesWritten := int64(0)
	for {
		run, getRunErr := grouper.GetNextRun()
		if getRunErr != nil && !errors.Is(getRunErr, io.EOF) {
			// An error was encountered and it's *not* EOF.
			return totalBytesWritten, textcompressor.ErrIOFailed.Wrap(getRunErr)
		}

		for run.RunLength >= 2 {
			var repeatCount int
			if run.RunLength > 257 {
				repeatCount = 255
			} else {
				repeatCount = run.RunLength - 2
			}

			n, err := output.Write([]byte{run.Byte, run.Byte, byte(repeatCount)})
			totalBytesWritten += int64(n)
			if err != nil {
				return totalBytesWritten, textcompressor.ErrIOFailed.Wrap(err)
			}
			run.RunLength -= repeatCount + 2
		}

		if run.RunLength == 1 {
			n, err := output.Write([]byte{run.Byte})
			totalBytesWritten += int64(n)
			if err != nil {
				return totalBytesWritten, textcompressor.ErrIOFailed.Wrap(err)
			}
		}

		// Non-EOF errors bailed out above, so a non-nil error here means we
		// finished the input.
		if getRunErr != nil {
			return totalBytesWritten, nil
		}
	}
}

// DecompressRLE8 reverses [CompressRLE8]. The return value is the number of
// bytes written, only valid if no error occurred.
func DecompressRLE8(input io.Reader, output io.Writer) (int64, error) {
	source := bufio.NewReader(input)
	lastByteRead := -1
	totalBytesWritten := int64(0)

	for {
		currentByte, err := source.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return totalBytesWritten, nil
			}
			return totalBytesWritten, textcompressor.ErrIOFailed.Wrap(err)
		}

		var currentOutput []byte
		if int(currentByte) == lastByteRead {
			// Two identical bytes in a row, so the next byte is a repeat count.
			repeatCountByte, err := source.ReadByte()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return totalBytesWritten, textcompressor.ErrTruncatedStream.
						Wrap(io.ErrUnexpectedEOF).
						WithMessage(
							fmt.Sprintf("missing repeat count after two %02x bytes", currentByte))
				}
				return totalBytesWritten, textcompressor.ErrIOFailed.Wrap(err)
			}

			// The second byte of the pair wasn't written yet, hence +1.
			currentOutput = bytes.Repeat([]byte{currentByte}, int(repeatCountByte)+1)

			// A run longer than 257 bytes is split into several groups, and the
			// next group must not pair with this one.
			lastByteRead = -1
		} else {
			lastByteRead = int(currentByte)
			currentOutput = []byte{currentByte}
		}

		n, err := output.Write(currentOutput)
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, textcompressor.ErrIOFailed.Wrap(err)
		}
	}
}
