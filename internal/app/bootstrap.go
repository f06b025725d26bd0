package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/textime/internal/brightness"
	"github.com/coreman2200/textime/internal/clock"
	"github.com/coreman2200/textime/internal/config"
	diag "github.com/coreman2200/textime/internal/diagnostics"
	"github.com/coreman2200/textime/internal/layout"
	"github.com/coreman2200/textime/internal/led"
	"github.com/coreman2200/textime/internal/model"
	"github.com/coreman2200/textime/internal/render"
	"github.com/coreman2200/textime/internal/render/anim"
	"github.com/coreman2200/textime/internal/render/mode"
	"github.com/coreman2200/textime/internal/status"
	"github.com/coreman2200/textime/internal/wordclock"
	"github.com/coreman2200/textime/internal/ws"
)

// HW bundles the devices opened by the caller. Nil fields get software
// stand-ins.
type HW struct {
	Strip       led.Strip
	Clock       clock.Clock
	Thermometer clock.Thermometer
	Lux         brightness.LuxReader
}

// Core owns the engine. Everything that touches it runs on the goroutine
// calling Run.
type Core struct {
	Eng *render.Engine
	Hub *ws.Hub
	Lux *brightness.Averager

	cfg     *config.Config
	cfgPath string
	reader  brightness.LuxReader
	thermo  *clock.Sampler
	tick    time.Duration
	log     zerolog.Logger
}

// StripSize is the LED count that fits every known build, so the active
// configuration can be switched at runtime.
func StripSize() int {
	n := 0
	for _, b := range layout.Builds() {
		if b.Count() > n {
			n = b.Count()
		}
	}
	return n
}

func InitCore(cfg *config.Config, cfgPath string, hw HW, hub *ws.Hub, log zerolog.Logger) (*Core, error) {
	if hw.Strip == nil {
		return nil, errors.New("app: no strip")
	}
	if hw.Clock == nil {
		hw.Clock = clock.System{}
	}
	if hw.Thermometer == nil {
		hw.Thermometer = clock.Unavailable{}
	}
	if hw.Lux == nil {
		hw.Lux = brightness.Constant(cfg.Lux.Value)
	}

	// 1) Physical layout
	builds := layout.Builds()
	ci := layout.Find(builds, cfg.LedConfig)
	if ci < 0 {
		log.Warn().Str("led_config", cfg.LedConfig).Str("using", builds[0].Name()).Msg("unknown LED configuration")
		ci = 0
	}

	// 2) Output: every transmitted frame is mirrored to the preview stream
	var strip led.Strip = hw.Strip
	sinks := status.Multi{status.Log{Logger: log}}
	if hub != nil {
		strip = &led.Observed{Strip: hw.Strip, OnShow: hub.Frame}
		sinks = append(sinks, hub)
	}

	// 3) Registries
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))
	// The sensor is read off the tick; prime it so Temperature has a value
	// from the first frame.
	thermo := clock.NewSampler(hw.Thermometer)
	thermo.Sample()
	modes := mode.Registry(mode.Deps{
		Clock:       hw.Clock,
		Words:       wordclock.English{},
		Thermometer: thermo,
		Strip:       strip,
		Rand:        rnd,
		Log:         log,
	})
	anims := anim.Registry(rnd)

	// 4) Brightness
	lux := brightness.NewAverager(cfg.Lux.Value)
	settings := brightness.Settings{
		MinDay:   cfg.Brightness.MinDay,
		MinNight: cfg.Brightness.MinNight,
		LuxMin:   cfg.Brightness.LuxMin,
		LuxMax:   cfg.Brightness.LuxMax,
	}
	bright := brightness.NewController(strip, hw.Clock, lux, settings, log)

	// 5) Engine
	eng, err := render.NewEngine(render.Options{
		Strip:      strip,
		Configs:    builds,
		Modes:      modes,
		Animations: anims,
		Brightness: bright,
		Sink:       sinks,
		Log:        log,
		Config:     ci,
		Mode:       cfg.Mode,
		Animation:  cfg.Animation,
	})
	if err != nil {
		return nil, err
	}

	// 6) Persisted operator settings
	if c, err := model.ParseHex(cfg.Color); err == nil {
		eng.SetColor(c)
	} else if cfg.Color != "" {
		log.Warn().Err(err).Str("color", cfg.Color).Msg("ignoring color")
	}
	if !eng.SetColorPolicy(render.ColorPolicy(cfg.ColorRandom)) {
		log.Warn().Int("color_random", cfg.ColorRandom).Msg("ignoring color policy")
	}
	if !cfg.Brightness.Auto {
		eng.SetBrightness(cfg.Brightness.Value)
	}

	tick := time.Duration(cfg.TickUs) * time.Microsecond
	if tick <= 0 {
		tick = time.Millisecond
	}
	return &Core{
		Eng:     eng,
		Hub:     hub,
		Lux:     lux,
		cfg:     cfg,
		cfgPath: cfgPath,
		reader:  hw.Lux,
		thermo:  thermo,
		tick:    tick,
		log:     log,
	}, nil
}

// Run ticks the engine and applies control commands between ticks until ctx
// is done.
func (c *Core) Run(ctx context.Context) {
	go c.Lux.Run(ctx, c.reader, c.log)
	go c.thermo.Run(ctx, clock.SamplePeriod, c.log)

	var cmds <-chan ws.Command
	if c.Hub != nil {
		cmds = c.Hub.Commands()
	}
	t := time.NewTicker(c.tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-cmds:
			c.Apply(cmd)
		case <-t.C:
			c.Eng.Tick()
		}
	}
}

// Apply executes one control command. Rejected fields are reported and
// leave everything else untouched; accepted ones are persisted.
func (c *Core) Apply(cmd ws.Command) {
	changed := false
	if v := cmd.Config; v != nil {
		if c.Eng.SetConfiguration(*v) {
			c.cfg.LedConfig = c.Eng.ConfigurationNames()[*v]
			changed = true
		} else {
			c.reject("config", *v, rangeOf(c.Eng.ConfigurationNames()))
		}
	}
	if v := cmd.Mode; v != nil {
		if c.Eng.SetMode(*v) {
			c.cfg.Mode = *v
			changed = true
		} else {
			c.reject("mode", *v, rangeOf(c.Eng.ModeNames()))
		}
	}
	if v := cmd.Animation; v != nil {
		if c.Eng.SetAnimation(*v) {
			c.cfg.Animation = *v
			changed = true
		} else {
			c.reject("animation", *v, rangeOf(c.Eng.AnimationNames()))
		}
	}
	if v := cmd.Color; v != nil {
		if col, err := model.ParseHex(*v); err == nil {
			c.Eng.SetColor(col)
			c.cfg.Color = col.Hex()
			changed = true
		} else {
			c.reject("color", *v, "#RRGGBB")
		}
	}
	if v := cmd.ColorRandom; v != nil {
		if c.Eng.SetColorPolicy(render.ColorPolicy(*v)) {
			c.cfg.ColorRandom = *v
			changed = true
		} else {
			c.reject("color_random", *v, "0..3")
		}
	}
	if v := cmd.Brightness; v != nil {
		c.Eng.SetBrightness(*v)
		c.cfg.Brightness.Auto = false
		c.cfg.Brightness.Value = int(c.Eng.Brightness())
		changed = true
	}
	if v := cmd.Auto; v != nil {
		c.Eng.SetAutomaticBrightness(*v)
		c.cfg.Brightness.Auto = *v
		changed = true
	}
	if changed {
		c.saveConfig()
	}
}

func rangeOf(names []string) string {
	return fmt.Sprintf("0..%d", len(names)-1)
}

func (c *Core) reject(field string, value any, valid string) {
	d := diag.Rejected(field, value, valid)
	c.log.Warn().Str("field", field).Interface("value", value).Msg(d.Summary)
	if c.Hub != nil {
		c.Hub.PushDiag(d)
	}
}

func (c *Core) saveConfig() {
	if c.cfgPath == "" {
		return
	}
	if err := config.Save(c.cfgPath, c.cfg); err != nil {
		c.log.Warn().Err(err).Str("path", c.cfgPath).Msg("config save failed")
		if c.Hub != nil {
			c.Hub.PushDiag(diag.Diagnostic{Severity: diag.Err, Code: diag.ConfigSave, Summary: "Could not save config", Detail: err.Error()})
		}
	}
}
