// Package mode holds the content generators. Each one regenerates the
// content buffer only when the inputs it last rendered have changed.
package mode

import (
	"math/rand"

	"github.com/coreman2200/textime/internal/model"
	"github.com/coreman2200/textime/internal/render"
)

// Cell addresses one letter of the grid.
type Cell struct {
	Row, Col int
}

// WordSource splits a time of day into words, each a run of cells. An empty
// result means there is nothing to show for that time.
type WordSource interface {
	Words(hour, minute int) [][]Cell
}

// Base carries what every mode shares: a name, a color and a policy for
// randomizing it. Embed it to satisfy render.Colorer.
type Base struct {
	name   string
	color  model.Color
	policy render.ColorPolicy
	rnd    *rand.Rand
}

func newBase(name string, rnd *rand.Rand) Base {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(1))
	}
	return Base{name: name, color: model.White, rnd: rnd}
}

func (b *Base) Name() string { return b.name }
func (b *Base) Color() model.Color { return b.color }
func (b *Base) SetColor(c model.Color) { b.color = c }
func (b *Base) ColorPolicy() render.ColorPolicy { return b.policy }
func (b *Base) SetColorPolicy(p render.ColorPolicy) { b.policy = p }

func (b *Base) randomColor() model.Color {
	return model.Hue(float64(b.rnd.Intn(256)) / 255)
}

// picker hands out colors according to the policy: a fresh one for the
// whole frame, per word or per letter.
type picker struct {
	b *Base
	c model.Color
}

func (b *Base) picker() *picker {
	p := &picker{b: b, c: b.color}
	if b.policy == render.ColorRandomAll {
		p.c = b.randomColor()
	}
	return p
}

func (p *picker) word() {
	if p.b.policy == render.ColorRandomWord {
		p.c = p.b.randomColor()
	}
}

func (p *picker) letter() model.Color {
	if p.b.policy == render.ColorRandomLetter {
		p.c = p.b.randomColor()
	}
	return p.c
}

// Registry returns the full set in selection order.
func Registry(d Deps) *render.Registry[render.Mode] {
	return render.NewRegistry[render.Mode](
		NewNothing(),
		NewTime(d.Clock, d.Words, d.Rand),
		NewSeconds(d.Clock),
		NewDay(d.Clock),
		NewTemperature(d.Clock, d.Thermometer),
		NewTestColors(d.TestColorsHold),
		NewTestSpeed(),
		NewTestStrip(d.Strip, d.Log),
	)
}
