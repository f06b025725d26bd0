package mode

import (
	"github.com/rs/zerolog"

	"github.com/coreman2200/textime/internal/led"
	"github.com/coreman2200/textime/internal/model"
	"github.com/coreman2200/textime/internal/render"
)

// Nothing blanks the display once and leaves it alone.
type Nothing struct{ Base }

func NewNothing() *Nothing { return &Nothing{Base: newBase("Nothing", nil)} }

func (n *Nothing) AllowAnimation() bool { return true }

func (n *Nothing) Begin(buf *model.Buffer) {
	buf.Clear()
	buf.Dirty = true
}

func (n *Nothing) Handle(buf *model.Buffer) {}

// TestColorsHold is the default number of ticks each color is held.
const TestColorsHold = 1000

var testColors = [...]model.Color{model.Red, model.Green, model.Blue, model.White}

// TestColors fills the panel red, green, blue and white in turn. Frames go
// to the strip unmodified.
type TestColors struct {
	Base
	hold int
	tick int
}

func NewTestColors(hold int) *TestColors {
	if hold < 1 {
		hold = TestColorsHold
	}
	return &TestColors{Base: newBase("Test Colors", nil), hold: hold}
}

func (t *TestColors) AllowAnimation() bool { return false }
func (t *TestColors) Begin(buf *model.Buffer) { t.tick = 0 }

func (t *TestColors) Handle(buf *model.Buffer) {
	if t.tick%t.hold == 0 {
		buf.Fill(model.On(testColors[t.tick/t.hold]))
		buf.Dirty = true
	}
	t.tick++
	if t.tick >= len(testColors)*t.hold {
		t.tick = 0
	}
}

// TestSpeed walks one white cell across the grid, advancing only once the
// previous frame has been consumed. The step rate is the pipeline's
// throughput. The lit edge slot moves on after each full pass of the grid.
type TestSpeed struct {
	Base
	row, col, edge int
}

func NewTestSpeed() *TestSpeed { return &TestSpeed{Base: newBase("Test Speed", nil)} }

func (t *TestSpeed) AllowAnimation() bool { return true }

func (t *TestSpeed) Begin(buf *model.Buffer) {
	t.row, t.col, t.edge = 0, 0, 0
}

func (t *TestSpeed) Handle(buf *model.Buffer) {
	if buf.Dirty {
		return
	}
	buf.Clear()
	buf.SetPixel(model.On(model.White), t.row, t.col)
	buf.SetEdge(model.On(model.White), t.edge)
	buf.Dirty = true

	t.col++
	if t.col < model.Cols {
		return
	}
	t.col = 0
	t.row++
	if t.row >= model.Rows {
		t.row = 0
		t.edge = (t.edge + 1) % model.Edges
	}
}

// TestStripPeriod is the number of ticks each LED stays lit.
const TestStripPeriod = 4

// TestStrip lights the physical LEDs one at a time by index, writing the
// strip directly. The content buffer is left blank and clean.
type TestStrip struct {
	Base
	strip led.Strip
	log   zerolog.Logger
	frame render.Frame
	index int
}

func NewTestStrip(strip led.Strip, log zerolog.Logger) *TestStrip {
	return &TestStrip{Base: newBase("Test Strip", nil), strip: strip, log: log}
}

func (t *TestStrip) AllowAnimation() bool { return false }

func (t *TestStrip) Begin(buf *model.Buffer) {
	t.index = 0
	t.frame.Init(TestStripPeriod)
}

func (t *TestStrip) Handle(buf *model.Buffer) {
	if !t.frame.Next() {
		return
	}
	buf.Clear()
	buf.Dirty = false
	if t.strip == nil || !t.strip.CanShow() {
		return
	}
	if t.index >= t.strip.PixelCount() {
		t.index = 0
	}
	t.strip.ClearTo(model.Black)
	t.strip.SetPixelColor(t.index, model.White)
	if err := t.strip.Show(); err != nil {
		t.log.Warn().Err(err).Int("led", t.index).Msg("test strip")
	}
	t.index++
}

func (t *TestStrip) Index() int { return t.index }
