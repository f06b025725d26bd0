package mode

import (
	"math/rand"

	"github.com/coreman2200/textime/internal/clock"
	"github.com/coreman2200/textime/internal/model"
)

// Time spells the time of day with words and lights one edge slot per
// minute past the last multiple of five.
type Time struct {
	Base
	clock clock.Clock
	words WordSource

	hour, minute int
}

func NewTime(clk clock.Clock, words WordSource, rnd *rand.Rand) *Time {
	return &Time{Base: newBase("Time", rnd), clock: clk, words: words}
}

func (t *Time) AllowAnimation() bool { return true }

func (t *Time) Begin(buf *model.Buffer) {
	t.hour, t.minute = -1, -1
}

func (t *Time) Handle(buf *model.Buffer) {
	now := t.clock.Now()
	h, m := now.Hour(), now.Minute()
	if h == t.hour && m == t.minute {
		return
	}
	t.hour, t.minute = h, m

	words := t.words.Words(h, m)
	if len(words) == 0 {
		return
	}
	buf.Clear()
	p := t.picker()
	for _, w := range words {
		p.word()
		for _, c := range w {
			buf.SetPixel(model.On(p.letter()), c.Row, c.Col)
		}
	}
	p.word()
	for i := 0; i < m%5 && i < model.Edges; i++ {
		buf.SetEdge(model.On(p.letter()), i)
	}
	buf.Dirty = true
}
