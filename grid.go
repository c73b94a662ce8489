package bitfx

import "strings"

// GlyphGrid is a rows x cols array of binary digits, one per cell.
// A grid is created fresh for each frame and consumed once.
type GlyphGrid struct {
	cols int
	rows int
	bits []uint8
}

// GenerateGrid fills a cols x rows grid from src in row-major order: left
// to right within a row, rows top to bottom. It draws exactly cols*rows
// bits. Non-positive dimensions give an empty grid and draw nothing.
func GenerateGrid(cols, rows int, src BitSource) *GlyphGrid {
	if cols <= 0 || rows <= 0 {
		return &GlyphGrid{}
	}

	g := &GlyphGrid{
		cols: cols,
		rows: rows,
		bits: make([]uint8, cols*rows),
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			g.bits[row*cols+col] = src.Bit() & 1
		}
	}
	return g
}

// Cols returns the number of cells per row.
func (g *GlyphGrid) Cols() int {
	return g.cols
}

// Rows returns the number of rows.
func (g *GlyphGrid) Rows() int {
	return g.rows
}

// Len returns the number of cells.
func (g *GlyphGrid) Len() int {
	return len(g.bits)
}

// Bit returns the digit stored at (row, col).
func (g *GlyphGrid) Bit(row, col int) uint8 {
	return g.bits[row*g.cols+col]
}

// Rune returns the glyph drawn for (row, col): '0' or '1'.
func (g *GlyphGrid) Rune(row, col int) rune {
	return rune('0' + g.Bit(row, col))
}

// String renders the grid as rows of digits separated by newlines.
func (g *GlyphGrid) String() string {
	var sb strings.Builder
	sb.Grow(len(g.bits) + g.rows)
	for row := 0; row < g.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < g.cols; col++ {
			sb.WriteByte('0' + g.Bit(row, col))
		}
	}
	return sb.String()
}
