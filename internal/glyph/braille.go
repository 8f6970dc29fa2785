package glyph

// Braille dot layout within one cell, 2 wide by 4 tall:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank rune = 0x2800

// brailleCell packs eight sub-cell levels (row-major, 4 rows of 2) into one
// pattern, setting a dot for each level at or above threshold.
func brailleCell(levels *[4][2]float32, threshold float32) rune {
	ch := brailleBlank
	for y := range 4 {
		for x := range 2 {
			if levels[y][x] >= threshold {
				ch |= dotBits[y][x]
			}
		}
	}
	return ch
}
