package mode

import (
	"github.com/coreman2200/textime/internal/clock"
	"github.com/coreman2200/textime/internal/glyph"
	"github.com/coreman2200/textime/internal/model"
)

// Seconds shows the seconds of the current minute.
type Seconds struct {
	Base
	clock  clock.Clock
	second int
}

func NewSeconds(clk clock.Clock) *Seconds {
	return &Seconds{Base: newBase("Seconds", nil), clock: clk}
}

func (s *Seconds) AllowAnimation() bool { return true }
func (s *Seconds) Begin(buf *model.Buffer) { s.second = -1 }

func (s *Seconds) Handle(buf *model.Buffer) {
	v := s.clock.Now().Second()
	if v == s.second {
		return
	}
	s.second = v
	drawNumber(buf, v, s.color)
}

// Day shows the day of the month.
type Day struct {
	Base
	clock clock.Clock
	day   int
}

func NewDay(clk clock.Clock) *Day {
	return &Day{Base: newBase("Day", nil), clock: clk}
}

func (d *Day) AllowAnimation() bool { return true }
func (d *Day) Begin(buf *model.Buffer) { d.day = -1 }

func (d *Day) Handle(buf *model.Buffer) {
	v := d.clock.Now().Day()
	if v == d.day {
		return
	}
	d.day = v
	drawNumber(buf, v, d.color)
}

// Temperature polls the thermometer once per second. Without a reading the
// previous frame stays up.
type Temperature struct {
	Base
	clock  clock.Clock
	thermo clock.Thermometer
	second int
}

func NewTemperature(clk clock.Clock, thermo clock.Thermometer) *Temperature {
	if thermo == nil {
		thermo = clock.Unavailable{}
	}
	return &Temperature{Base: newBase("Temperature", nil), clock: clk, thermo: thermo}
}

func (t *Temperature) AllowAnimation() bool { return true }
func (t *Temperature) Begin(buf *model.Buffer) { t.second = -1 }

func (t *Temperature) Handle(buf *model.Buffer) {
	s := t.clock.Now().Second()
	if s == t.second {
		return
	}
	t.second = s
	v, ok := t.thermo.Temperature()
	if !ok {
		return
	}
	drawNumber(buf, v, t.color)
}

func drawNumber(buf *model.Buffer, v int, c model.Color) {
	buf.Clear()
	glyph.RenderNumber(v, buf, c)
	buf.Dirty = true
}
