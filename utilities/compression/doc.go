// Package compression implements a fixed-width LZW text codec.
//
// The compressor scans its input once, left to right, and builds a dictionary
// mapping every byte sequence ("pattern") it has seen to a numeric code. It
// always emits the code for the longest pattern it already knows, then teaches
// itself the pattern one byte longer. The decompressor never receives the
// dictionary; it rebuilds an identical one by replaying the same insertion
// rule, one step behind the compressor.
//
// Every code is exactly 8 bits wide, giving 256 codes in total:
//
//	0..127    single-byte patterns, seeded at startup (code == byte value)
//	128       end-of-stream marker, never assigned to a pattern
//	129..255  multi-byte patterns, assigned in the order they're discovered
//
// Once code 255 has been handed out the dictionary is frozen. Both sides keep
// using it as-is; there is no reset. This caps the compression ratio on long
// inputs but doesn't affect correctness.
//
// The compressed stream is just the codes packed back to back, followed by
// the end-of-stream marker:
//
//	code1 code2 ... codeN 128
//
// There's no header, length prefix, or embedded dictionary. Because the seed
// only covers 7-bit ASCII, input bytes of 128 or above can't be represented
// and are rejected by the compressor.
//
// Decompression is one step behind compression, so occasionally a code arrives
// that refers to the pattern the decompressor is just about to define. This
// only happens when the pattern is the previous one plus its own first byte
// (e.g. "aaa" compresses to 97, 129, 128), so the decompressor can construct it
// directly.

package compression
