// Package utils holds small helpers shared by the buffer and the highlighter.
package utils

import "unicode/utf8"

// RuneIndexToByteOffset converts a rune index within line to a byte offset.
// Indexes past the end clamp to len(line).
func RuneIndexToByteOffset(line []byte, runeIndex int) int {
	byteOffset := 0
	for i := 0; i < runeIndex && byteOffset < len(line); i++ {
		_, size := utf8.DecodeRune(line[byteOffset:])
		byteOffset += size
	}
	return byteOffset
}

// ByteOffsetToRuneIndex counts the runes that start before byteOffset.
// A byteOffset inside a multi-byte rune counts that rune.
func ByteOffsetToRuneIndex(line []byte, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	return utf8.RuneCount(line[:byteOffset])
}
