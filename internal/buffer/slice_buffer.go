// internal/buffer/slice_buffer.go
package buffer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/medit/internal/types"
	"github.com/bethropolis/medit/internal/utils"
)

// SliceBuffer stores the document as a slice of lines without their
// line terminators.
type SliceBuffer struct {
	lines    [][]byte
	filePath string
	modified bool
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		lines: [][]byte{{}},
	}
}

// Load reads a file into the buffer. A missing file yields an empty buffer
// bound to filePath.
func (sb *SliceBuffer) Load(filePath string) error {
	sb.modified = false

	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.lines = [][]byte{{}}
			sb.filePath = filePath
			return nil
		}
		return fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	newLines := [][]byte{}
	for scanner.Scan() {
		line := scanner.Bytes()
		lineCopy := make([]byte, len(line))
		copy(lineCopy, line)
		newLines = append(newLines, lineCopy)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file '%s': %w", filePath, err)
	}
	if len(newLines) == 0 {
		newLines = append(newLines, []byte{})
	}
	sb.lines = newLines
	sb.filePath = filePath
	return nil
}

// SetText replaces the whole content and marks the buffer modified.
func (sb *SliceBuffer) SetText(text string) types.EditInfo {
	old := sb.Bytes()
	oldEnd := sb.endPoint()

	parts := bytes.Split([]byte(text), []byte("\n"))
	sb.lines = make([][]byte, len(parts))
	for i, p := range parts {
		sb.lines[i] = append([]byte{}, p...)
	}
	sb.modified = true

	return types.EditInfo{
		StartIndex:     0,
		OldEndIndex:    uint32(len(old)),
		NewEndIndex:    uint32(len(text)),
		OldEndPosition: oldEnd,
		NewEndPosition: sb.endPoint(),
	}
}

func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

// Line returns the raw bytes of one line.
func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d (0-%d): %w", index, len(sb.lines)-1, ErrOutOfRange)
	}
	return sb.lines[index], nil
}

// Len is the document length in runes.
func (sb *SliceBuffer) Len() int {
	n := len(sb.lines) - 1
	for _, line := range sb.lines {
		n += utf8.RuneCount(line)
	}
	return n
}

// Bytes joins all lines with '\n'.
func (sb *SliceBuffer) Bytes() []byte {
	var buffer bytes.Buffer
	for i, line := range sb.lines {
		buffer.Write(line)
		if i < len(sb.lines)-1 {
			buffer.WriteByte('\n')
		}
	}
	return buffer.Bytes()
}

// Save writes the content to filePath, or to the bound path when empty.
func (sb *SliceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	if err := os.WriteFile(path, sb.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}

	sb.filePath = path
	sb.modified = false
	return nil
}

func (sb *SliceBuffer) IsModified() bool {
	return sb.modified
}

func (sb *SliceBuffer) FilePath() string {
	return sb.filePath
}

// --- Offset conversion ---

// OffsetToPosition maps a rune offset to a line/column, clamped to the
// document bounds.
func (sb *SliceBuffer) OffsetToPosition(offset int) types.Position {
	if offset < 0 {
		offset = 0
	}
	for i, line := range sb.lines {
		n := utf8.RuneCount(line)
		if offset <= n || i == len(sb.lines)-1 {
			return types.Position{Line: i, Col: min(offset, n)}
		}
		offset -= n + 1
	}
	return types.Position{}
}

// PositionToOffset maps a line/column to a rune offset. Out of range
// positions are clamped first.
func (sb *SliceBuffer) PositionToOffset(pos types.Position) int {
	valid, _ := sb.validatePosition(pos)
	offset := 0
	for i := 0; i < valid.Line; i++ {
		offset += utf8.RuneCount(sb.lines[i]) + 1
	}
	return offset + valid.Col
}

// Slice returns the text between two rune offsets, in either order.
func (sb *SliceBuffer) Slice(begin, end int) string {
	if begin > end {
		begin, end = end, begin
	}
	text := []rune(string(sb.Bytes()))
	begin = max(0, min(begin, len(text)))
	end = max(0, min(end, len(text)))
	return string(text[begin:end])
}

// --- Buffer Modification Methods ---

// Insert inserts text at pos. Text may span several lines.
func (sb *SliceBuffer) Insert(pos types.Position, text []byte) (types.EditInfo, error) {
	validPos, byteOffset := sb.validatePosition(pos)
	startIndex := sb.byteIndex(validPos.Line, byteOffset)
	start := sitter.Point{Row: uint32(validPos.Line), Column: uint32(byteOffset)}
	info := types.EditInfo{
		StartIndex:     startIndex,
		OldEndIndex:    startIndex,
		NewEndIndex:    startIndex,
		StartPosition:  start,
		OldEndPosition: start,
		NewEndPosition: start,
	}
	if len(text) == 0 {
		return info, nil
	}

	sb.modified = true

	currentLine := sb.lines[validPos.Line]
	insertLines := bytes.Split(text, []byte("\n"))

	tail := append([]byte{}, currentLine[byteOffset:]...)
	head := append([]byte{}, currentLine[:byteOffset]...)
	sb.lines[validPos.Line] = append(head, insertLines[0]...)

	lastLine := validPos.Line
	lastCol := uint32(len(sb.lines[validPos.Line]))
	if len(insertLines) > 1 {
		newLines := make([][]byte, len(insertLines)-1)
		for i := 1; i < len(insertLines); i++ {
			newLines[i-1] = append([]byte{}, insertLines[i]...)
		}
		lastLine = validPos.Line + len(newLines)
		lastCol = uint32(len(newLines[len(newLines)-1]))
		newLines[len(newLines)-1] = append(newLines[len(newLines)-1], tail...)

		rest := append([][]byte{}, sb.lines[validPos.Line+1:]...)
		sb.lines = append(append(sb.lines[:validPos.Line+1], newLines...), rest...)
	} else {
		sb.lines[validPos.Line] = append(sb.lines[validPos.Line], tail...)
	}

	info.NewEndIndex = startIndex + uint32(len(text))
	info.NewEndPosition = sitter.Point{Row: uint32(lastLine), Column: lastCol}
	return info, nil
}

// Delete removes text in [start, end). The two positions may come in any order.
func (sb *SliceBuffer) Delete(start, end types.Position) (types.EditInfo, error) {
	if end.Before(start) {
		start, end = end, start
	}
	vStart, startOffset := sb.validatePosition(start)
	vEnd, endOffset := sb.validatePosition(end)

	startIndex := sb.byteIndex(vStart.Line, startOffset)
	info := types.EditInfo{
		StartIndex:     startIndex,
		OldEndIndex:    sb.byteIndex(vEnd.Line, endOffset),
		NewEndIndex:    startIndex,
		StartPosition:  sitter.Point{Row: uint32(vStart.Line), Column: uint32(startOffset)},
		OldEndPosition: sitter.Point{Row: uint32(vEnd.Line), Column: uint32(endOffset)},
		NewEndPosition: sitter.Point{Row: uint32(vStart.Line), Column: uint32(startOffset)},
	}
	if vStart == vEnd {
		return info, nil
	}

	sb.modified = true

	head := append([]byte{}, sb.lines[vStart.Line][:startOffset]...)
	joined := append(head, sb.lines[vEnd.Line][endOffset:]...)
	sb.lines[vStart.Line] = joined
	if vEnd.Line > vStart.Line {
		sb.lines = append(sb.lines[:vStart.Line+1], sb.lines[vEnd.Line+1:]...)
	}

	return info, nil
}

// validatePosition clamps pos into the buffer and returns the byte offset of
// its column within the line.
func (sb *SliceBuffer) validatePosition(pos types.Position) (types.Position, int) {
	if len(sb.lines) == 0 {
		sb.lines = [][]byte{{}}
	}
	pos.Line = max(0, min(pos.Line, len(sb.lines)-1))
	pos.Col = max(0, pos.Col)

	line := sb.lines[pos.Line]
	byteOff := utils.RuneIndexToByteOffset(line, pos.Col)
	pos.Col = utils.ByteOffsetToRuneIndex(line, byteOff)
	return pos, byteOff
}

// byteIndex is the absolute byte index of a byte column on a line.
func (sb *SliceBuffer) byteIndex(line, byteCol int) uint32 {
	idx := 0
	for i := 0; i < line; i++ {
		idx += len(sb.lines[i]) + 1
	}
	return uint32(idx + byteCol)
}

func (sb *SliceBuffer) endPoint() sitter.Point {
	last := len(sb.lines) - 1
	return sitter.Point{Row: uint32(last), Column: uint32(len(sb.lines[last]))}
}

var _ Buffer = (*SliceBuffer)(nil)
