// Package console is the text-mode character grid the shell writes to.
//
// The grid is one byte per cell, Width x Height, row-major. It has no notion of
// pixels; the term service draws it.
package console

const (
	Width  = 80
	Height = 25
	Cells  = Width * Height
)

const blank = ' '

// Alignment controls where new glyphs land on the active row.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "unknown"
	}
}

// Screen is a Width x Height character grid with a write cursor.
//
// Screen is not safe for concurrent use; it belongs to a single task.
type Screen struct {
	cells [Cells]byte
	row   int
	col   int // glyphs written on the active row
	align Alignment

	// cont marks rows entered by wrapping a full row rather than by '\n'.
	cont [Height]bool

	dirty bool
}

// New returns a cleared screen.
func New(align Alignment) *Screen {
	s := &Screen{align: align}
	s.Clear()
	return s
}

// Alignment returns the current alignment mode.
func (s *Screen) Alignment() Alignment { return s.align }

// Cursor returns the active row and the cell the next glyph goes to.
func (s *Screen) Cursor() (row, col int) {
	switch s.align {
	case AlignRight:
		return s.row, Width - 1
	case AlignCenter:
		c := Width/2 + s.col/2
		if c >= Width {
			c = Width - 1
		}
		return s.row, c
	default:
		if s.col >= Width {
			return s.row, Width - 1
		}
		return s.row, s.col
	}
}

// Write draws s byte by byte. '\n' starts a new row.
func (s *Screen) Write(str string) {
	for i := 0; i < len(str); i++ {
		_ = s.WriteByte(str[i])
	}
}

// WriteByte draws one byte. It never fails; the error is for io.ByteWriter.
func (s *Screen) WriteByte(b byte) error {
	s.dirty = true
	if b == '\n' {
		s.newline()
		return nil
	}

	switch s.align {
	case AlignRight:
		s.shiftLeft()
		s.cells[s.row*Width+Width-1] = b
		s.col++
	case AlignCenter:
		if s.col%2 == 1 {
			s.shiftLeft()
		}
		c := Width/2 + s.col/2
		if c >= Width {
			s.wrap()
			c = Width / 2
		}
		s.cells[s.row*Width+c] = b
		s.col++
	default:
		if s.col >= Width {
			s.wrap()
		}
		s.cells[s.row*Width+s.col] = b
		s.col++
	}
	return nil
}

// Clear blanks the grid and homes the cursor.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blank
	}
	s.cont = [Height]bool{}
	s.row = 0
	s.col = 0
	s.dirty = true
}

// DeleteLastGlyph erases the most recently written glyph of the active row.
// It refuses to touch the first reserved columns and reports whether a glyph was erased.
// Erasing the only glyph of a wrapped row moves the cursor back to the end of
// the row above.
func (s *Screen) DeleteLastGlyph(reserved int) bool {
	if reserved < 0 {
		reserved = 0
	}
	if s.col <= reserved {
		return false
	}

	switch s.align {
	case AlignRight:
		s.shiftRight()
	case AlignCenter:
		c := Width/2 + (s.col-1)/2
		if c < Width {
			s.cells[s.row*Width+c] = blank
		}
		if (s.col-1)%2 == 1 {
			s.shiftRight()
		}
	default:
		s.cells[s.row*Width+s.col-1] = blank
	}
	s.col--
	if s.col == 0 && s.cont[s.row] && s.row > 0 {
		s.cont[s.row] = false
		s.row--
		s.col = Width
	}
	s.dirty = true
	return true
}

// Snapshot copies the full grid into dst.
func (s *Screen) Snapshot(dst *[Cells]byte) {
	copy(dst[:], s.cells[:])
}

// Row returns a copy of row r.
func (s *Screen) Row(r int) string {
	if r < 0 || r >= Height {
		return ""
	}
	return string(s.cells[r*Width : (r+1)*Width])
}

// TakeDirty reports whether the grid changed since the last call and resets the flag.
func (s *Screen) TakeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}

func (s *Screen) newline() {
	s.col = 0
	if s.row < Height-1 {
		s.row++
	} else {
		s.scroll()
	}
	s.cont[s.row] = false
}

// wrap continues the output of a full row on the next one.
func (s *Screen) wrap() {
	s.newline()
	s.cont[s.row] = true
}

// scroll moves every row up by one and blanks the last row.
func (s *Screen) scroll() {
	copy(s.cells[:Cells-Width], s.cells[Width:])
	for i := Cells - Width; i < Cells; i++ {
		s.cells[i] = blank
	}
	copy(s.cont[:Height-1], s.cont[1:])
	s.cont[Height-1] = false
}

func (s *Screen) shiftLeft() {
	row := s.cells[s.row*Width : (s.row+1)*Width]
	copy(row[:Width-1], row[1:])
	row[Width-1] = blank
}

func (s *Screen) shiftRight() {
	row := s.cells[s.row*Width : (s.row+1)*Width]
	copy(row[1:], row[:Width-1])
	row[0] = blank
}
