package anim

import (
	"math/rand"

	"github.com/coreman2200/textime/internal/model"
	"github.com/coreman2200/textime/internal/render"
)

type slot struct {
	row, col int
	edge     int // -1 for grid cells
	p        model.Pixel
}

// Blink reveals the lit content one random position at a time, in a random
// order, until everything is shown. New content restarts the reveal.
type Blink struct {
	rnd   *rand.Rand
	frame render.Frame
	pool  []slot
}

func NewBlink(rnd *rand.Rand) *Blink {
	return &Blink{rnd: rnd, pool: make([]slot, 0, model.Rows*model.Cols+model.Edges)}
}

func (*Blink) Name() string { return "Blink" }

// Pending is the number of positions not revealed yet.
func (b *Blink) Pending() int { return len(b.pool) }

func (b *Blink) Begin(in, out *model.Buffer) {
	b.frame.Init(BlinkPeriod)
	b.pool = b.pool[:0]
	for r := 0; r < model.Rows; r++ {
		for c := 0; c < model.Cols; c++ {
			if p := in.Pixel(r, c); p.Display {
				b.pool = append(b.pool, slot{row: r, col: c, edge: -1, p: p})
			}
		}
	}
	for i := 0; i < model.Edges; i++ {
		if p := in.EdgePixel(i); p.Display {
			b.pool = append(b.pool, slot{edge: i, p: p})
		}
	}
	out.Clear()
	out.Dirty = true
}

func (b *Blink) Handle(in, out *model.Buffer) {
	if in.Dirty {
		b.Begin(in, out)
		return
	}
	if !b.frame.Next() || len(b.pool) == 0 {
		return
	}
	i := b.rnd.Intn(len(b.pool))
	s := b.pool[i]
	last := len(b.pool) - 1
	b.pool[i] = b.pool[last]
	b.pool = b.pool[:last]

	if s.edge >= 0 {
		out.SetEdge(s.p, s.edge)
	} else {
		out.SetPixel(s.p, s.row, s.col)
	}
	out.Dirty = true
}
