// internal/buffer/buffer.go
package buffer

import (
	"errors"

	"github.com/bethropolis/medit/internal/types"
)

// ErrOutOfRange is returned when a line index or offset falls outside the buffer.
var ErrOutOfRange = errors.New("out of range")

// Buffer defines the interface for text buffer operations.
// Offsets are rune offsets into the whole document, with each line break
// counting as one rune.
type Buffer interface {
	Load(filePath string) error
	SetText(text string) types.EditInfo
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	Len() int
	Insert(pos types.Position, text []byte) (types.EditInfo, error)
	Delete(start, end types.Position) (types.EditInfo, error)
	OffsetToPosition(offset int) types.Position
	PositionToOffset(pos types.Position) int
	Slice(begin, end int) string
	Save(filePath string) error
	Bytes() []byte
	FilePath() string
	IsModified() bool
}
