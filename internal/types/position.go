// internal/types/position.go
package types

// Position represents a cursor or text position within the buffer.
// Line is the 0-based line index.
// Col is the 0-based column (rune) index within the line.
type Position struct {
	Line int
	Col  int // Rune index
}

// Before reports whether p sorts strictly before other.
func (p Position) Before(other Position) bool {
	return p.Line < other.Line || (p.Line == other.Line && p.Col < other.Col)
}

// SurfaceID identifies one open view for the lifetime of the process.
type SurfaceID int

// StyledRange is a styled span of rune columns on a single line.
type StyledRange struct {
	StartCol  int
	EndCol    int // Exclusive
	StyleName string
}
