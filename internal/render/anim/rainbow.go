package anim

import (
	"github.com/coreman2200/textime/internal/model"
	"github.com/coreman2200/textime/internal/render"
)

const (
	rainbowStep = 0.001
	// rainbowSpan is the share of the hue circle spread across the grid.
	rainbowSpan = 60.0 / 360.0
)

// Rainbow recolors lit content with a slowly rotating hue gradient that
// runs row-major across the grid. Edges take the hue of their corner.
type Rainbow struct {
	frame  render.Frame
	offset float64
}

func NewRainbow() *Rainbow { return &Rainbow{} }

func (*Rainbow) Name() string { return "Rainbow" }

func (r *Rainbow) Begin(in, out *model.Buffer) {
	r.frame.Init(RainbowPeriod)
	r.offset = 0
}

func (r *Rainbow) Offset() float64 { return r.offset }

// hue returns the gradient color of cell (row, col) at the current offset.
func (r *Rainbow) hue(row, col int) model.Color {
	h := float64(row*model.Cols+col)/float64(model.Rows*model.Cols)*rainbowSpan + r.offset
	return model.Hue(h)
}

var corners = [model.Edges][2]int{
	{0, 0},
	{0, model.Cols - 1},
	{model.Rows - 1, model.Cols - 1},
	{model.Rows - 1, 0},
}

func (r *Rainbow) Handle(in, out *model.Buffer) {
	if !r.frame.Next() {
		return
	}
	r.offset += rainbowStep
	if r.offset > 1 {
		r.offset = 0
	}
	out.Clear()
	for row := 0; row < model.Rows; row++ {
		for col := 0; col < model.Cols; col++ {
			if in.Pixel(row, col).Display {
				out.SetPixel(model.On(r.hue(row, col)), row, col)
			}
		}
	}
	for i, c := range corners {
		if in.EdgePixel(i).Display {
			out.SetEdge(model.On(r.hue(c[0], c[1])), i)
		}
	}
	out.Dirty = true
}
