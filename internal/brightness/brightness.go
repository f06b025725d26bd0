// Package brightness drives the strip's global gain from a time-of-day
// schedule scaled by ambient light, or holds a manual value.
package brightness

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/textime/internal/clock"
	"github.com/coreman2200/textime/internal/led"
)

// Period is the wall-clock cadence of automatic updates.
const Period = 50 * time.Millisecond

// Hours at which the floor starts moving between its night and day values.
// Each transition lasts one hour.
const (
	EveningHour = 21
	MorningHour = 9
)

type LuxSource interface {
	AvgLux() int
}

type Settings struct {
	MinDay   int
	MinNight int
	LuxMin   int
	LuxMax   int
}

// Floor is the lowest brightness allowed at hour:minute. Day hours use
// MinDay, everything else MinNight, and the two transition hours move
// strictly monotonically between them without ever reaching either end.
func (s Settings) Floor(hour, minute int) int {
	if minute < 0 {
		minute = 0
	}
	if minute > 59 {
		minute = 59
	}
	switch {
	case hour == EveningHour:
		return between(s.MinDay, s.MinNight, minute)
	case hour == MorningHour:
		return between(s.MinNight, s.MinDay, minute)
	case hour > MorningHour && hour < EveningHour:
		return s.MinDay
	}
	return s.MinNight
}

func between(from, to, minute int) int {
	return from + (to-from)*(minute+1)/61
}

// Level maps lux from [LuxMin,LuxMax] onto [floor,255] and clamps to
// [1,255].
func (s Settings) Level(floor, lux int) uint8 {
	v := floor
	if s.LuxMax > s.LuxMin {
		if lux < s.LuxMin {
			lux = s.LuxMin
		}
		if lux > s.LuxMax {
			lux = s.LuxMax
		}
		v = floor + (lux-s.LuxMin)*(255-floor)/(s.LuxMax-s.LuxMin)
	}
	return clamp(v)
}

func clamp(v int) uint8 {
	if v < 1 {
		return 1
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Controller owns the strip's gain. Handle is called every engine tick and
// does real work at most once per Period.
type Controller struct {
	strip    led.Strip
	clock    clock.Clock
	lux      LuxSource
	settings Settings
	log      zerolog.Logger

	auto bool
	last int64
}

func NewController(strip led.Strip, clk clock.Clock, lux LuxSource, s Settings, log zerolog.Logger) *Controller {
	return &Controller{
		strip:    strip,
		clock:    clk,
		lux:      lux,
		settings: s,
		log:      log,
		auto:     true,
		last:     -1,
	}
}

func (c *Controller) Automatic() bool { return c.auto }

// SetAutomatic toggles the schedule. Turning it on applies it at the next
// Handle.
func (c *Controller) SetAutomatic(on bool) {
	c.auto = on
	c.last = -1
}

// SetManual clamps b to [1,255], turns automatic mode off and applies the
// value right away. It returns the value applied.
func (c *Controller) SetManual(b int) uint8 {
	c.auto = false
	v := clamp(b)
	c.apply(v)
	return v
}

func (c *Controller) Handle() {
	if !c.auto {
		return
	}
	now := c.clock.Now()
	slot := now.UnixNano() / int64(Period)
	if slot == c.last {
		return
	}
	c.last = slot

	floor := c.settings.Floor(now.Hour(), now.Minute())
	lux := c.settings.LuxMin
	if c.lux != nil {
		lux = c.lux.AvgLux()
	}
	c.apply(c.settings.Level(floor, lux))
}

// apply re-sends the current frame when the gain changed so the new value is
// visible without waiting for new content.
func (c *Controller) apply(v uint8) {
	if v == c.strip.Brightness() {
		return
	}
	c.strip.SetBrightness(v)
	c.log.Trace().Uint8("brightness", v).Msg("brightness")
	if !c.strip.CanShow() {
		return
	}
	if err := c.strip.Show(); err != nil {
		c.log.Debug().Err(err).Msg("brightness show")
	}
}
