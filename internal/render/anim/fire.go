package anim

import (
	"math/rand"

	"github.com/coreman2200/textime/internal/model"
	"github.com/coreman2200/textime/internal/render"
)

var ember = model.RGB(58, 58, 6)

// Fire keeps content as is and fills every other position with a
// flickering ember.
type Fire struct {
	rnd   *rand.Rand
	frame render.Frame
}

func NewFire(rnd *rand.Rand) *Fire { return &Fire{rnd: rnd} }

func (*Fire) Name() string { return "Fire" }

func (f *Fire) Begin(in, out *model.Buffer) {
	f.frame.Init(FirePeriod)
}

func (f *Fire) Handle(in, out *model.Buffer) {
	if !f.frame.Next() {
		return
	}
	for r := 0; r < model.Rows; r++ {
		for c := 0; c < model.Cols; c++ {
			p := in.Pixel(r, c)
			if !p.Display {
				p = model.On(f.flicker())
			}
			out.SetPixel(p, r, c)
		}
	}
	for i := 0; i < model.Edges; i++ {
		p := in.EdgePixel(i)
		if !p.Display {
			p = model.On(f.flicker())
		}
		out.SetEdge(p, i)
	}
	out.Dirty = true
}

func (f *Fire) flicker() model.Color {
	c := ember.Darken(uint8(f.rnd.Intn(15)))
	c.R += uint8(f.rnd.Intn(15))
	return c
}
