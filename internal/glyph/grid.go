package glyph

import (
	"strings"
)

// Grid is a rendered glyph frame, Rows lines of Cols glyphs.
type Grid struct {
	Cols, Rows int
	Cells      []rune
	Theme      Theme
}

func (g Grid) At(col, row int) rune { return g.Cells[row*g.Cols+col] }

func (g Grid) Line(row int) string {
	return string(g.Cells[row*g.Cols : (row+1)*g.Cols])
}

// Lines returns every row as a string.
func (g Grid) Lines() []string {
	lines := make([]string, g.Rows)
	for i := range lines {
		lines[i] = g.Line(i)
	}
	return lines
}

// String returns the plain text frame, newline separated, no colors.
func (g Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// Styled renders the frame with the theme colors applied.
func (g Grid) Styled() string {
	return g.Theme.Style().Render(g.String())
}
