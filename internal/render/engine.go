package render

import (
	"errors"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/coreman2200/textime/internal/brightness"
	"github.com/coreman2200/textime/internal/layout"
	"github.com/coreman2200/textime/internal/led"
	"github.com/coreman2200/textime/internal/model"
	"github.com/coreman2200/textime/internal/status"
)

// Options wires an Engine. Strip and at least one configuration are
// required; everything else has a usable zero value.
type Options struct {
	Strip      led.Strip
	Configs    []*layout.Configuration
	Modes      *Registry[Mode]
	Animations *Registry[Animation]
	Brightness *brightness.Controller
	Sink       status.Sink
	Log        zerolog.Logger

	// Initial selections. Out-of-range values leave nothing selected.
	Config    int
	Mode      int
	Animation int
}

// Engine runs the content → effect → flush pipeline. It is not safe for
// concurrent use; one goroutine calls Tick and the setters.
type Engine struct {
	strip   led.Strip
	configs []*layout.Configuration
	modes   *Registry[Mode]
	anims   *Registry[Animation]
	bright  *brightness.Controller
	sink    status.Sink
	log     zerolog.Logger

	config int
	mode   int
	anim   int
	color  model.Color
	policy ColorPolicy

	content  model.Buffer
	animated model.Buffer
}

func NewEngine(o Options) (*Engine, error) {
	if o.Strip == nil {
		return nil, errors.New("render: nil strip")
	}
	if len(o.Configs) == 0 {
		return nil, errors.New("render: no LED configuration")
	}
	if o.Config < 0 || o.Config >= len(o.Configs) {
		return nil, errors.New("render: configuration out of range: " + strconv.Itoa(o.Config))
	}
	if o.Modes == nil {
		o.Modes = NewRegistry[Mode]()
	}
	if o.Animations == nil {
		o.Animations = NewRegistry[Animation]()
	}
	if o.Sink == nil {
		o.Sink = status.Nop{}
	}
	e := &Engine{
		strip:   o.Strip,
		configs: o.Configs,
		modes:   o.Modes,
		anims:   o.Animations,
		bright:  o.Brightness,
		sink:    o.Sink,
		log:     o.Log,
		config:  o.Config,
		mode:    -1,
		anim:    -1,
		color:   model.White,
	}
	if !e.SetAnimation(o.Animation) {
		e.log.Warn().Int("animation", o.Animation).Msg("no animation selected")
	}
	if !e.SetMode(o.Mode) {
		e.log.Warn().Int("mode", o.Mode).Msg("no mode selected")
	}
	return e, nil
}

// Tick advances the pipeline by one step. It never blocks; when the strip is
// busy the pending frame simply stays dirty until a later tick.
func (e *Engine) Tick() {
	if e.bright != nil {
		e.bright.Handle()
	}
	m, ok := e.modes.Get(e.mode)
	if !ok {
		return
	}
	m.Handle(&e.content)

	if !m.AllowAnimation() {
		e.flush(&e.content)
		return
	}
	if a, ok := e.anims.Get(e.anim); ok && !e.animated.Dirty {
		a.Handle(&e.content, &e.animated)
		if e.animated.Dirty {
			e.content.Dirty = false
		}
	}
	e.flush(&e.animated)
}

// flush transmits buf through the active configuration. It reports whether
// a frame went out; dirty is cleared only in that case.
func (e *Engine) flush(buf *model.Buffer) bool {
	if !buf.Dirty || !e.strip.CanShow() {
		return false
	}
	cfg := e.configs[e.config]
	e.strip.ClearTo(model.Black)
	for r := 0; r < model.Rows; r++ {
		for c := 0; c < model.Cols; c++ {
			p := buf.Pixel(r, c)
			if !p.Display {
				continue
			}
			for _, i := range cfg.Matrix(r, c) {
				e.strip.SetPixelColor(i, p.Color)
			}
		}
	}
	for i := 0; i < model.Edges; i++ {
		p := buf.EdgePixel(i)
		if !p.Display {
			continue
		}
		for _, j := range cfg.Edge(i) {
			e.strip.SetPixelColor(j, p.Color)
		}
	}
	if err := e.strip.Show(); err != nil {
		e.log.Warn().Err(err).Msg("show")
		return false
	}
	buf.Dirty = false
	return true
}

func (e *Engine) SetMode(i int) bool {
	m, ok := e.modes.Get(i)
	if !ok {
		return false
	}
	e.mode = i
	m.Begin(&e.content)
	e.log.Info().Int("mode", i).Str("name", m.Name()).Msg("mode selected")
	e.sink.Publish(status.TopicMode, strconv.Itoa(i))
	return true
}

func (e *Engine) SetAnimation(i int) bool {
	a, ok := e.anims.Get(i)
	if !ok {
		return false
	}
	e.anim = i
	a.Begin(&e.content, &e.animated)
	e.log.Info().Int("animation", i).Str("name", a.Name()).Msg("animation selected")
	e.sink.Publish(status.TopicAnimation, strconv.Itoa(i))
	return true
}

// SetConfiguration switches the logical→physical table. Mode and animation
// state are kept; the buffer that is flushed next is marked dirty so the
// current picture is re-sent through the new table.
func (e *Engine) SetConfiguration(i int) bool {
	if i < 0 || i >= len(e.configs) {
		return false
	}
	e.config = i
	if m, ok := e.modes.Get(e.mode); ok && !m.AllowAnimation() {
		e.content.Dirty = true
	} else {
		e.animated.Dirty = true
	}
	cfg := e.configs[i]
	if cfg.Count() > e.strip.PixelCount() {
		e.log.Warn().Int("leds", cfg.Count()).Int("strip", e.strip.PixelCount()).
			Msg("configuration is larger than the strip; extra LEDs are dropped")
	}
	e.log.Info().Int("config", i).Str("name", cfg.Name()).Msg("configuration selected")
	e.sink.Publish(status.TopicConfiguration, strconv.Itoa(i))
	return true
}

// SetColor applies c to every mode that draws in a color, then re-selects the
// current mode so the change shows immediately.
func (e *Engine) SetColor(c model.Color) {
	e.color = c
	e.modes.Each(func(_ int, m Mode) {
		if cm, ok := m.(Colorer); ok {
			cm.SetColor(c)
		}
	})
	e.SetMode(e.mode)
	e.sink.Publish(status.TopicColor, c.Hex())
}

func (e *Engine) SetColorPolicy(p ColorPolicy) bool {
	if !p.Valid() {
		return false
	}
	e.policy = p
	e.modes.Each(func(_ int, m Mode) {
		if cm, ok := m.(Colorer); ok {
			cm.SetColorPolicy(p)
		}
	})
	e.SetMode(e.mode)
	return true
}

// SetBrightness sets a manual gain and disables the automatic schedule.
func (e *Engine) SetBrightness(b int) {
	if e.bright == nil {
		return
	}
	v := e.bright.SetManual(b)
	e.sink.Publish(status.TopicBrightness, strconv.Itoa(int(v)))
}

func (e *Engine) SetAutomaticBrightness(on bool) {
	if e.bright == nil {
		return
	}
	e.bright.SetAutomatic(on)
}

func (e *Engine) Mode() int { return e.mode }
func (e *Engine) Animation() int { return e.anim }
func (e *Engine) Configuration() int { return e.config }
func (e *Engine) Color() model.Color { return e.color }
func (e *Engine) ColorPolicy() ColorPolicy { return e.policy }
func (e *Engine) ModeNames() []string { return e.modes.List() }
func (e *Engine) AnimationNames() []string { return e.anims.List() }
func (e *Engine) Brightness() uint8 { return e.strip.Brightness() }
func (e *Engine) AutomaticBrightness() bool { return e.bright != nil && e.bright.Automatic() }

func (e *Engine) ConfigurationNames() []string {
	out := make([]string, len(e.configs))
	for i, c := range e.configs {
		out[i] = c.Name()
	}
	return out
}
