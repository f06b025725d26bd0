// Package anim holds the effects that turn the content buffer into the
// animated buffer. Each paces itself with a render.Frame counted in engine
// ticks and only writes the output when it actually produced a frame.
package anim

import (
	"math/rand"

	"github.com/coreman2200/textime/internal/model"
	"github.com/coreman2200/textime/internal/render"
)

// Pacing of each effect, in engine ticks.
const (
	BlinkPeriod     = 50
	FirePeriod      = 8
	MatrixPeriod    = 8
	RainbowPeriod   = 10
	SnowflakePeriod = 15
)

// Registry returns every effect in selection order. All of them draw from
// rnd, so a seeded source makes the output reproducible.
func Registry(rnd *rand.Rand) *render.Registry[render.Animation] {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(1))
	}
	return render.NewRegistry[render.Animation](
		NewNormal(),
		NewBlink(rnd),
		NewFire(rnd),
		NewMatrix(rnd),
		NewRainbow(),
		NewSnowflakes(rnd),
	)
}

// overlay copies every lit position of in onto out.
func overlay(in, out *model.Buffer) {
	for r := 0; r < model.Rows; r++ {
		for c := 0; c < model.Cols; c++ {
			if p := in.Pixel(r, c); p.Display {
				out.SetPixel(p, r, c)
			}
		}
	}
	for i := 0; i < model.Edges; i++ {
		if p := in.EdgePixel(i); p.Display {
			out.SetEdge(p, i)
		}
	}
}

// Normal passes content through untouched.
type Normal struct{}

func NewNormal() *Normal { return &Normal{} }

func (*Normal) Name() string { return "Normal" }

func (*Normal) Begin(in, out *model.Buffer) {
	in.Dirty = true
}

func (*Normal) Handle(in, out *model.Buffer) {
	if !in.Dirty {
		return
	}
	*out = *in
	out.Dirty = true
}
