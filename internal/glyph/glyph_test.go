package glyph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/textime/internal/model"
)

// glyphAt reads back the Width x Height block at row,col as a bitmap.
func glyphAt(b *model.Buffer, row, col int) Bitmap {
	var g Bitmap
	for r := 0; r < Height; r++ {
		for x := 0; x < Width; x++ {
			if b.Pixel(row+r, col+x).Display {
				g[r] |= 1 << (Width - 1 - x)
			}
		}
	}
	return g
}

func TestRenderNumberSingleDigit(t *testing.T) {
	var b model.Buffer
	RenderNumber(7, &b, model.Red)

	assert.Equal(t, Digit(0), glyphAt(&b, Top, TensCol))
	assert.Equal(t, Digit(7), glyphAt(&b, Top, OnesCol))
	assert.Equal(t, model.On(model.Red), b.Pixel(Top, OnesCol))
}

func TestRenderNumberNegative(t *testing.T) {
	var b model.Buffer
	RenderNumber(-3, &b, model.White)

	assert.Equal(t, Minus, glyphAt(&b, Top, TensCol))
	assert.Equal(t, Digit(3), glyphAt(&b, Top, OnesCol))
}

func TestRenderNumberTwoDigits(t *testing.T) {
	var b model.Buffer
	RenderNumber(42, &b, model.White)

	assert.Equal(t, Digit(4), glyphAt(&b, Top, TensCol))
	assert.Equal(t, Digit(2), glyphAt(&b, Top, OnesCol))
}

func TestRenderNumberClamps(t *testing.T) {
	var hi, lo model.Buffer
	RenderNumber(150, &hi, model.White)
	RenderNumber(-40, &lo, model.White)

	assert.Equal(t, Digit(9), glyphAt(&hi, Top, TensCol))
	assert.Equal(t, Digit(9), glyphAt(&hi, Top, OnesCol))
	assert.Equal(t, Minus, glyphAt(&lo, Top, TensCol))
	assert.Equal(t, Digit(9), glyphAt(&lo, Top, OnesCol))
}

func TestRenderNumberNeverTouchesEdges(t *testing.T) {
	var b model.Buffer
	RenderNumber(88, &b, model.White)
	for i := 0; i < model.Edges; i++ {
		assert.False(t, b.EdgePixel(i).Display)
	}
	assert.False(t, b.Dirty)
}

func TestDigitsAreDistinct(t *testing.T) {
	seen := map[Bitmap]int{}
	for n := 0; n <= 9; n++ {
		prev, dup := seen[Digit(n)]
		assert.False(t, dup, "digit %d equals digit %d", n, prev)
		seen[Digit(n)] = n
	}
	assert.Equal(t, Bitmap{}, Digit(10))
	assert.Equal(t, Bitmap{}, Digit(-1))
}
