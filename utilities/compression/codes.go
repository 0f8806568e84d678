package compression

// Code is a single fixed-width code in a compressed stream.
type Code uint8

const (
	// CodeWidth is the number of bits each code occupies on the wire.
	CodeWidth = 8

	// TotalCodes is the size of the code space, and the capacity of the
	// dictionary. The end-of-stream marker counts as one of these.
	TotalCodes = 1 << CodeWidth

	// SeedSymbols is the number of single-byte patterns the dictionary starts
	// out with. Their codes are equal to the byte values.
	SeedSymbols = 128

	// MaxSymbol is the largest byte value the compressor accepts.
	MaxSymbol = SeedSymbols - 1

	// EOFCode marks the end of a compressed stream. It's never assigned to a
	// pattern.
	EOFCode Code = SeedSymbols

	// FirstDynamicCode is the first code assigned to a multi-byte pattern.
	FirstDynamicCode = int(EOFCode) + 1

	// DynamicCodes is the number of codes available for multi-byte patterns.
	DynamicCodes = TotalCodes - FirstDynamicCode
)

// extendPattern returns a new slice containing `prefix` followed by `next`.
// The prefix is never modified; patterns are shared between the dictionary and
// callers and must stay immutable once stored.
func extendPattern(prefix []byte, next byte) []byte {
	pattern := make([]byte, len(prefix)+1)
	copy(pattern, prefix)
	pattern[len(prefix)] = next
	return pattern
}
