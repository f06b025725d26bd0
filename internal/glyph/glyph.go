// Package glyph holds the fixed digit bitmaps used by the numeric modes.
package glyph

import "github.com/coreman2200/textime/internal/model"

const (
	Height = 8
	Width  = 5
)

// Bitmap is one glyph, one byte per row, bit 4 being the leftmost column.
type Bitmap [Height]uint8

func (b Bitmap) On(row, col int) bool {
	if row < 0 || row >= Height || col < 0 || col >= Width {
		return false
	}
	return b[row]&(1<<(Width-1-col)) != 0
}

var digits = [10]Bitmap{
	{0b01110, 0b10001, 0b10011, 0b10101, 0b11001, 0b10001, 0b10001, 0b01110},
	{0b00100, 0b01100, 0b00100, 0b00100, 0b00100, 0b00100, 0b00100, 0b01110},
	{0b01110, 0b10001, 0b00001, 0b00010, 0b00100, 0b01000, 0b10000, 0b11111},
	{0b11111, 0b00010, 0b00100, 0b00010, 0b00001, 0b00001, 0b10001, 0b01110},
	{0b00010, 0b00110, 0b01010, 0b10010, 0b11111, 0b00010, 0b00010, 0b00010},
	{0b11111, 0b10000, 0b11110, 0b00001, 0b00001, 0b00001, 0b10001, 0b01110},
	{0b00110, 0b01000, 0b10000, 0b11110, 0b10001, 0b10001, 0b10001, 0b01110},
	{0b11111, 0b00001, 0b00010, 0b00100, 0b01000, 0b01000, 0b01000, 0b01000},
	{0b01110, 0b10001, 0b10001, 0b01110, 0b10001, 0b10001, 0b10001, 0b01110},
	{0b01110, 0b10001, 0b10001, 0b10001, 0b01111, 0b00001, 0b00010, 0b01100},
}

// Minus replaces the tens digit of a negative number.
var Minus = Bitmap{0, 0, 0, 0b11111, 0, 0, 0, 0}

// Digit returns the bitmap of n, which must be 0..9; anything else yields an
// empty glyph.
func Digit(n int) Bitmap {
	if n < 0 || n > 9 {
		return Bitmap{}
	}
	return digits[n]
}

// Glyph placement on the grid.
const (
	Top      = 1
	TensCol  = 0
	OnesCol  = 6
	MinValue = -9
	MaxValue = 99
)

// Draw lights the set bits of g with origin at row,col. Cells falling off the
// grid are dropped by the buffer.
func Draw(g Bitmap, dst *model.Buffer, row, col int, c model.Color) {
	for r := 0; r < Height; r++ {
		for x := 0; x < Width; x++ {
			if g.On(r, x) {
				dst.SetPixel(model.On(c), row+r, col+x)
			}
		}
	}
}

// RenderNumber draws n as two glyph columns: tens (0 when single digit, the
// minus sign when negative) then ones. n is clamped to [-9, 99].
func RenderNumber(n int, dst *model.Buffer, c model.Color) {
	if n < MinValue {
		n = MinValue
	}
	if n > MaxValue {
		n = MaxValue
	}
	if n < 0 {
		Draw(Minus, dst, Top, TensCol, c)
	} else {
		Draw(Digit(n/10), dst, Top, TensCol, c)
	}
	ones := n % 10
	if ones < 0 {
		ones = -ones
	}
	Draw(Digit(ones), dst, Top, OnesCol, c)
}
