package textcompressor

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

type CodecError interface {
	error
	WithMessage(message string) CodecError
	Wrap(err error) CodecError
}

type baseCodecError string

const rootError = baseCodecError("")

var ErrAlreadyClosed = rootError.WithMessage("Stream already closed")
var ErrCorruptContainer = rootError.WithMessage("Container data is corrupted")
var ErrDictionaryFull = rootError.WithMessage("Dictionary is full")
var ErrInternal = rootError.WithMessage("Internal error")
var ErrInvalidCode = rootError.WithMessage("Invalid code in stream")
var ErrInvalidUsage = rootError.WithMessage("Invalid usage")
var ErrIOFailed = rootError.WithMessage("Input/output error")
var ErrSymbolOutOfRange = rootError.WithMessage("Symbol out of range")
var ErrTruncatedStream = rootError.WithMessage("Code stream truncated")
var ErrUnknownContainer = rootError.WithMessage("Unknown container format")

func (e baseCodecError) Error() string {
	return string(e)
}

func (e baseCodecError) RootCause() CodecError {
	return e
}

func (e baseCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       message,
		originalError: e,
	}
}

func (e baseCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customCodecError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customCodecError) Error() string {
	return e.message
}

func (e customCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customCodecError) Unwrap() error {
	return e.originalError
}
