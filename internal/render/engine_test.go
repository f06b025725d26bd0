package render

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/textime/internal/layout"
	"github.com/coreman2200/textime/internal/led"
	"github.com/coreman2200/textime/internal/model"
	"github.com/coreman2200/textime/internal/status"
)

// fakeMode draws once per call to dirty(), like a change-driven mode.
type fakeMode struct {
	name    string
	anim    bool
	pending bool
	draw    func(b *model.Buffer)

	begins  int
	handles int
	color   model.Color
	policy  ColorPolicy
}

func (f *fakeMode) Name() string { return f.name }
func (f *fakeMode) AllowAnimation() bool { return f.anim }
func (f *fakeMode) Begin(b *model.Buffer) {
	f.begins++
	f.pending = true
}
func (f *fakeMode) Handle(b *model.Buffer) {
	f.handles++
	if !f.pending {
		return
	}
	f.pending = false
	b.Clear()
	if f.draw != nil {
		f.draw(b)
	}
	b.Dirty = true
}
func (f *fakeMode) dirty() { f.pending = true }
func (f *fakeMode) SetColor(c model.Color) { f.color = c }
func (f *fakeMode) Color() model.Color { return f.color }
func (f *fakeMode) SetColorPolicy(p ColorPolicy) { f.policy = p }

// passAnim copies content like the Normal effect.
type passAnim struct {
	begins  int
	handles int
}

func (p *passAnim) Name() string { return "pass" }
func (p *passAnim) Begin(in, out *model.Buffer) {
	p.begins++
	in.Dirty = true
}
func (p *passAnim) Handle(in, out *model.Buffer) {
	p.handles++
	if in.Dirty {
		*out = *in
	}
}

type recorder struct{ msgs [][2]string }

func (r *recorder) Publish(topic, payload string) {
	r.msgs = append(r.msgs, [2]string{topic, payload})
}

func (r *recorder) last() [2]string {
	if len(r.msgs) == 0 {
		return [2]string{}
	}
	return r.msgs[len(r.msgs)-1]
}

func redCorner(b *model.Buffer) {
	b.SetPixel(model.On(model.Red), 0, 0)
	b.SetEdge(model.On(model.Blue), 0)
}

type fixture struct {
	e     *Engine
	strip *led.Sim
	sink  *recorder
	raw   *fakeMode
	fx    *fakeMode
	anim  *passAnim
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		strip: led.NewSim(layout.Panel100Double().Count()),
		sink:  &recorder{},
		raw:   &fakeMode{name: "raw", draw: redCorner},
		fx:    &fakeMode{name: "fx", anim: true, draw: redCorner},
		anim:  &passAnim{},
	}
	e, err := NewEngine(Options{
		Strip:      f.strip,
		Configs:    layout.Builds(),
		Modes:      NewRegistry[Mode](f.raw, f.fx),
		Animations: NewRegistry[Animation](f.anim),
		Sink:       f.sink,
		Log:        zerolog.Nop(),
	})
	require.NoError(t, err)
	f.e = e
	return f
}

func pixel(frame []byte, i int) model.Color {
	return model.RGB(frame[i*3], frame[i*3+1], frame[i*3+2])
}

func TestNewEngineValidates(t *testing.T) {
	_, err := NewEngine(Options{Configs: layout.Builds()})
	assert.Error(t, err)
	_, err = NewEngine(Options{Strip: led.NewSim(1)})
	assert.Error(t, err)
	_, err = NewEngine(Options{Strip: led.NewSim(1), Configs: layout.Builds(), Config: 7})
	assert.Error(t, err)

	e, err := NewEngine(Options{Strip: led.NewSim(1), Configs: layout.Builds(), Log: zerolog.Nop()})
	require.NoError(t, err)
	assert.Equal(t, -1, e.Mode())
	e.Tick()
}

func TestFlushMapsThroughConfiguration(t *testing.T) {
	f := newFixture(t)
	f.e.Tick()

	require.Equal(t, 1, f.strip.Shows)
	frame := f.strip.Last()
	cfg := layout.Panel40()
	assert.Equal(t, model.Red, pixel(frame, cfg.Matrix(0, 0)[0]))
	assert.Equal(t, model.Blue, pixel(frame, cfg.Edge(0)[0]))
	assert.Equal(t, model.Black, pixel(frame, cfg.Matrix(0, 1)[0]))
	assert.False(t, f.e.content.Dirty)
}

func TestFlushClearsDirtyOnlyWhenTransmitted(t *testing.T) {
	f := newFixture(t)
	f.strip.Busy = true
	f.e.Tick()
	assert.Zero(t, f.strip.Shows)
	assert.True(t, f.e.content.Dirty)

	f.strip.Busy = false
	f.strip.ShowErr = errors.New("bus error")
	f.e.Tick()
	assert.Zero(t, f.strip.Shows)
	assert.True(t, f.e.content.Dirty)

	f.strip.ShowErr = nil
	f.e.Tick()
	assert.Equal(t, 1, f.strip.Shows)
	assert.False(t, f.e.content.Dirty)

	// Nothing new: no transmission.
	f.e.Tick()
	assert.Equal(t, 1, f.strip.Shows)
	assert.False(t, f.e.flush(&f.e.content))
}

func TestRawModeBypassesAnimation(t *testing.T) {
	f := newFixture(t)
	f.e.Tick()
	assert.Zero(t, f.anim.handles)
	assert.Equal(t, 1, f.strip.Shows)
}

func TestAnimationBackpressure(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.e.SetMode(1))
	f.strip.Busy = true

	f.e.Tick()
	assert.Equal(t, 1, f.anim.handles)
	assert.True(t, f.e.animated.Dirty)
	assert.False(t, f.e.content.Dirty, "content is consumed once the effect produced a frame")

	// While the animated frame is pending the effect is not run again.
	f.fx.dirty()
	f.e.Tick()
	f.e.Tick()
	assert.Equal(t, 1, f.anim.handles)
	assert.True(t, f.e.content.Dirty)
	assert.Zero(t, f.strip.Shows)

	f.strip.Busy = false
	f.e.Tick()
	assert.Equal(t, 1, f.strip.Shows)
	assert.False(t, f.e.animated.Dirty)

	f.e.Tick()
	assert.Equal(t, 2, f.anim.handles)
	assert.Equal(t, 2, f.strip.Shows)
	assert.False(t, f.e.content.Dirty)
}

func TestSelections(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, [2]string{status.TopicMode, "0"}, f.sink.last())
	assert.Equal(t, 1, f.anim.begins)

	n := len(f.sink.msgs)
	for _, i := range []int{-1, 2, 99} {
		assert.False(t, f.e.SetMode(i))
		assert.False(t, f.e.SetAnimation(i))
	}
	assert.False(t, f.e.SetConfiguration(3))
	assert.False(t, f.e.SetColorPolicy(ColorPolicy(9)))
	assert.Len(t, f.sink.msgs, n, "rejected selections publish nothing")
	assert.Equal(t, 0, f.e.Mode())
	assert.Equal(t, 0, f.e.Animation())
	assert.Equal(t, 0, f.e.Configuration())

	assert.True(t, f.e.SetMode(1))
	assert.Equal(t, 1, f.fx.begins)
	assert.Equal(t, [2]string{status.TopicMode, "1"}, f.sink.last())

	assert.True(t, f.e.SetAnimation(0))
	assert.Equal(t, 2, f.anim.begins)
	assert.Equal(t, [2]string{status.TopicAnimation, "0"}, f.sink.last())

	assert.Equal(t, []string{"raw", "fx"}, f.e.ModeNames())
	assert.Equal(t, []string{"pass"}, f.e.AnimationNames())
	assert.Equal(t, []string{"40x40@1", "100x100@1", "100x100@2"}, f.e.ConfigurationNames())
}

func TestSetConfigurationResendsFrame(t *testing.T) {
	f := newFixture(t)
	f.e.Tick()
	require.Equal(t, 1, f.strip.Shows)

	require.True(t, f.e.SetConfiguration(2))
	f.e.Tick()
	require.Equal(t, 2, f.strip.Shows)
	cfg := layout.Panel100Double()
	for _, i := range cfg.Matrix(0, 0) {
		assert.Equal(t, model.Red, pixel(f.strip.Last(), i))
	}
	for _, i := range cfg.Edge(0) {
		assert.Equal(t, model.Blue, pixel(f.strip.Last(), i))
	}
	assert.Equal(t, 1, f.raw.begins, "mode state is kept")

	// Same with an effect in between.
	require.True(t, f.e.SetMode(1))
	f.e.Tick()
	require.Equal(t, 3, f.strip.Shows)
	handles := f.anim.handles
	require.True(t, f.e.SetConfiguration(1))
	f.e.Tick()
	assert.Equal(t, 4, f.strip.Shows)
	assert.Equal(t, 1, f.anim.begins, "animation state is kept")
	assert.Equal(t, handles, f.anim.handles, "the pending frame is re-sent, not re-animated")
	assert.Equal(t, model.Red, pixel(f.strip.Last(), layout.Panel100Single().Matrix(0, 0)[0]))
}

func TestSetColor(t *testing.T) {
	f := newFixture(t)
	c := model.RGB(0x12, 0xab, 0x00)
	f.e.SetColor(c)

	assert.Equal(t, c, f.raw.color)
	assert.Equal(t, c, f.fx.color)
	assert.Equal(t, c, f.e.Color())
	assert.Equal(t, 2, f.raw.begins, "current mode is re-selected")
	assert.Equal(t, [2]string{status.TopicColor, "#12AB00"}, f.sink.last())

	assert.True(t, f.e.SetColorPolicy(ColorRandomWord))
	assert.Equal(t, ColorRandomWord, f.raw.policy)
	assert.Equal(t, ColorRandomWord, f.fx.policy)
	assert.Equal(t, 3, f.raw.begins)
}

func TestBrightnessWithoutController(t *testing.T) {
	f := newFixture(t)
	f.e.SetBrightness(10)
	f.e.SetAutomaticBrightness(true)
	assert.Equal(t, uint8(255), f.e.Brightness())
	assert.False(t, f.e.AutomaticBrightness())
}
