package compression

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/dargueta/textcompressor"
	"github.com/pierrec/lz4/v4"
)

// Container selects an optional outer compression layer wrapped around the raw
// code stream when it's stored.
type Container int

const (
	// ContainerNone stores the raw code stream as-is.
	ContainerNone Container = iota
	// ContainerGzip wraps the code stream in gzip at the highest compression
	// level.
	ContainerGzip
	// ContainerLZ4 wraps the code stream in an LZ4 frame.
	ContainerLZ4
	// ContainerRLE8 run-length encodes the code stream with [CompressRLE8].
	ContainerRLE8
	// ContainerRLE90 run-length encodes the code stream with an [RLE90Writer].
	ContainerRLE90
)

var containerNames = map[Container]string{
	ContainerNone:  "none",
	ContainerGzip:  "gzip",
	ContainerLZ4:   "lz4",
	ContainerRLE8:  "rle8",
	ContainerRLE90: "rle90",
}

func (c Container) String() string {
	name, ok := containerNames[c]
	if !ok {
		return fmt.Sprintf("Container(%d)", int(c))
	}
	return name
}

// ParseContainer converts a container name ("none", "gzip", "lz4", "rle8", or
// "rle90") to a [Container]. Matching is case-insensitive, and the empty string means
// [ContainerNone].
func ParseContainer(name string) (Container, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ContainerNone, nil
	}
	for container, containerName := range containerNames {
		if containerName == name {
			return container, nil
		}
	}
	return ContainerNone, textcompressor.ErrUnknownContainer.WithMessage(
		fmt.Sprintf("%q is not one of none, gzip, lz4, rle8, rle90", name))
}

// writeOnly hides a writer's Close method so the codec can't close it out from
// under us.
type writeOnly struct {
	io.Writer
}

// CompressContainer compresses `input` and writes the code stream to `output`
// inside the given container.
//
// The returned int64 gives the size of the raw code stream, before the
// container's own compression. If an error occurred, the value is undefined and
// should not be used.
func CompressContainer(input io.Reader, output io.Writer, container Container) (int64, error) {
	var layer io.WriteCloser

	switch container {
	case ContainerNone:
		return Compress(input, output)
	case ContainerGzip:
		gzWriter, err := gzip.NewWriterLevel(output, gzip.BestCompression)
		if err != nil {
			return 0, textcompressor.ErrIOFailed.Wrap(err)
		}
		layer = gzWriter
	case ContainerLZ4:
		layer = lz4.NewWriter(output)
	case ContainerRLE8:
		var codeStream bytes.Buffer
		n, err := Compress(input, &codeStream)
		if err != nil {
			return n, err
		}
		_, err = CompressRLE8(&codeStream, output)
		return n, err
	case ContainerRLE90:
		layer = NewRLE90Writer(output)
	default:
		return 0, textcompressor.ErrUnknownContainer.WithMessage(container.String())
	}

	n, err := Compress(input, writeOnly{layer})
	if err != nil {
		layer.Close()
		return n, err
	}
	if err = layer.Close(); err != nil {
		return n, textcompressor.ErrIOFailed.Wrap(err)
	}
	return n, nil
}

// ExpandContainer takes a code stream wrapped in the given container and writes
// the decompressed data to `output`.
//
// The returned int64 gives the number of bytes written to the output. If an
// error occurred, the value is undefined and should not be used.
func ExpandContainer(input io.Reader, output io.Writer, container Container) (int64, error) {
	switch container {
	case ContainerNone:
		return Expand(input, output)
	case ContainerGzip:
		gzReader, err := gzip.NewReader(input)
		if err != nil {
			return 0, textcompressor.ErrIOFailed.Wrap(err)
		}
		defer gzReader.Close()
		return Expand(gzReader, output)
	case ContainerLZ4:
		return Expand(lz4.NewReader(input), output)
	case ContainerRLE8:
		var codeStream bytes.Buffer
		if _, err := DecompressRLE8(input, &codeStream); err != nil {
			return 0, err
		}
		return Expand(&codeStream, output)
	case ContainerRLE90:
		return Expand(NewRLE90Reader(input), output)
	default:
		return 0, textcompressor.ErrUnknownContainer.WithMessage(container.String())
	}
}

// CompressBytes compresses `data` with a new [Encoder] and returns the code
// stream in a new byte slice.
func CompressBytes(data []byte) ([]byte, error) {
	var buffer bytes.Buffer
	_, err := NewEncoder(&buffer).Encode(data)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// ExpandBytes decodes `compressed` with a new [Decoder] and returns the
// decompressed data in a new byte slice.
func ExpandBytes(compressed []byte) ([]byte, error) {
	return NewDecoder(bytes.NewReader(compressed)).Decode()
}
