package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dargueta/textcompressor"
	"github.com/dargueta/textcompressor/utilities/compression"
	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix(logPrefix)

	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

const logPrefix = "textcompressor: "

func ioFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "read from `FILE` instead of standard input",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "write to `FILE` instead of standard output",
		},
	}
}

func codecFlags() []cli.Flag {
	return append(
		ioFlags(),
		&cli.StringFlag{
			Name:    "container",
			Usage:   "outer layer around the code stream: none, gzip, lz4, rle8, or rle90",
			Value:   "none",
			EnvVars: []string{"TEXTCOMPRESSOR_CONTAINER"},
		},
		&cli.BoolFlag{
			Name:    "report",
			Aliases: []string{"r"},
			Usage:   "log the compression ratio when done",
		},
	)
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "textcompressor",
		Usage: "Compress and expand 7-bit text using 8-bit LZW codes",
		UsageText: "textcompressor - < input.txt > input.lzw    (compress)\n" +
			"textcompressor + < input.lzw > input.txt    (expand)\n" +
			"textcompressor [global options] command [command options]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log progress to standard error",
			},
		},
		Action:          dispatchOperator,
		HideHelpCommand: true,
		Commands: []*cli.Command{
			{
				Name:   "compress",
				Usage:  "Compress text into a code stream",
				Flags:  codecFlags(),
				Action: compressCommand,
			},
			{
				Name:   "expand",
				Usage:  "Expand a code stream back into text",
				Flags:  codecFlags(),
				Action: expandCommand,
			},
			{
				Name:   "dict",
				Usage:  "Compress text and print the resulting dictionary as CSV",
				Flags:  ioFlags(),
				Action: dictCommand,
			},
		},
	}
}

// dispatchOperator implements the single-argument form: `-` compresses standard
// input to standard output and `+` expands it.
func dispatchOperator(context *cli.Context) error {
	if context.NArg() != 1 {
		return textcompressor.ErrInvalidUsage.WithMessage(
			fmt.Sprintf(
				"expected exactly one argument, `-` to compress or `+` to expand; got %d",
				context.NArg(),
			),
		)
	}

	switch operator := context.Args().First(); operator {
	case "-":
		return runCodec(context, compressOperation, context.App.Reader, context.App.Writer, compression.ContainerNone)
	case "+":
		return runCodec(context, expandOperation, context.App.Reader, context.App.Writer, compression.ContainerNone)
	default:
		return textcompressor.ErrInvalidUsage.WithMessage(
			fmt.Sprintf("unrecognized argument %q, expected `-` or `+`", operator))
	}
}

func compressCommand(context *cli.Context) error {
	return runFileCodec(context, compressOperation)
}

func expandCommand(context *cli.Context) error {
	return runFileCodec(context, expandOperation)
}

func dictCommand(context *cli.Context) (err error) {
	if context.NArg() != 0 {
		return textcompressor.ErrInvalidUsage.WithMessage("dict takes no positional arguments")
	}

	input, output, err := openStreams(context)
	if err != nil {
		return err
	}
	defer func() { err = closeStreams(err, input, output) }()

	n, err := compression.DumpDictionary(input, output)
	if err != nil {
		return err
	}
	newLogger(context).Printf("wrote %d dictionary entries", n)
	return nil
}

func runFileCodec(context *cli.Context, op operation) (err error) {
	if context.NArg() != 0 {
		return textcompressor.ErrInvalidUsage.WithMessage(
			fmt.Sprintf("%s takes no positional arguments", op))
	}

	container, err := compression.ParseContainer(context.String("container"))
	if err != nil {
		return err
	}

	input, output, err := openStreams(context)
	if err != nil {
		return err
	}
	defer func() { err = closeStreams(err, input, output) }()

	return runCodec(context, op, input, output, container)
}

type operation int

const (
	compressOperation operation = iota
	expandOperation
)

func (op operation) String() string {
	if op == compressOperation {
		return "compress"
	}
	return "expand"
}

// runCodec runs one compression or expansion from `input` to `output`.
func runCodec(
	context *cli.Context,
	op operation,
	input io.Reader,
	output io.Writer,
	container compression.Container,
) error {
	logger := newLogger(context)
	source := &countingReader{r: input}
	sink := &countingWriter{w: output}

	var err error
	if op == compressOperation {
		_, err = compression.CompressContainer(source, sink, container)
	} else {
		_, err = compression.ExpandContainer(source, sink, container)
	}
	if err != nil {
		return err
	}

	logger.Printf("%s: read %d bytes, wrote %d bytes", op, source.n, sink.n)
	if context.Bool("report") {
		reportRatio(context, op, source.n, sink.n)
	}
	return nil
}

// reportRatio logs the size of the compressed data as a percentage of the
// original text. It's always logged, regardless of --verbose.
func reportRatio(context *cli.Context, op operation, read, written int64) {
	original, compressed := read, written
	if op == expandOperation {
		original, compressed = written, read
	}

	reporter := log.New(context.App.ErrWriter, logPrefix, 0)
	if original == 0 {
		reporter.Printf("%dB -> %dB, ratio undefined for empty text", original, compressed)
		return
	}

	ratio := compressed * 10000 / original
	reporter.Printf(
		"%dB -> %dB, compression ratio %d.%02d%%", original, compressed, ratio/100, ratio%100)
}

// newLogger returns a logger writing to the app's error stream if --verbose was
// given, or one that discards everything otherwise.
func newLogger(context *cli.Context) *log.Logger {
	if !context.Bool("verbose") {
		return log.New(io.Discard, "", 0)
	}
	return log.New(context.App.ErrWriter, logPrefix, 0)
}

// openStreams opens the files named by --input and --output, falling back to
// the app's standard streams.
func openStreams(context *cli.Context) (io.ReadCloser, io.WriteCloser, error) {
	var input io.ReadCloser = io.NopCloser(context.App.Reader)
	if path := context.String("input"); path != "" && path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, nil, textcompressor.ErrIOFailed.Wrap(err)
		}
		input = file
	}

	var output io.WriteCloser = nopWriteCloser{context.App.Writer}
	if path := context.String("output"); path != "" && path != "-" {
		file, err := os.Create(path)
		if err != nil {
			input.Close()
			return nil, nil, textcompressor.ErrIOFailed.Wrap(err)
		}
		output = file
	}
	return input, output, nil
}

// closeStreams closes both streams, folding any close errors into `err`.
func closeStreams(err error, input io.Closer, output io.Closer) error {
	var result *multierror.Error
	if err != nil {
		result = multierror.Append(result, err)
	}
	if closeErr := input.Close(); closeErr != nil {
		result = multierror.Append(result, textcompressor.ErrIOFailed.Wrap(closeErr))
	}
	if closeErr := output.Close(); closeErr != nil {
		result = multierror.Append(result, textcompressor.ErrIOFailed.Wrap(closeErr))
	}
	if result == nil {
		return nil
	}
	if len(result.Errors) == 1 {
		return result.Errors[0]
	}
	return result
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
