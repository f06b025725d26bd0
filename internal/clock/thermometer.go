package clock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"
)

// Thermometer reports whole degrees Celsius. ok=false means no reading is
// available and callers should keep whatever they showed before.
type Thermometer interface {
	Temperature() (celsius int, ok bool)
}

type Unavailable struct{}

func (Unavailable) Temperature() (int, bool) { return 0, false }

// Fixed always reports the same temperature.
type Fixed int

func (f Fixed) Temperature() (int, bool) { return int(f), true }

// SamplePeriod is how often a Sampler reads its source.
const SamplePeriod = time.Second

// Sampler reads a slow Thermometer from its own goroutine and serves the
// last reading, so callers on the render path never wait on the bus.
type Sampler struct {
	src Thermometer

	mu      sync.Mutex
	celsius int
	ok      bool
}

func NewSampler(src Thermometer) *Sampler {
	if src == nil {
		src = Unavailable{}
	}
	return &Sampler{src: src}
}

// Temperature returns the cached reading; ok is false until the first
// successful sample.
func (s *Sampler) Temperature() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.celsius, s.ok
}

// Sample reads the source once and caches the result. It blocks for as long
// as the source does.
func (s *Sampler) Sample() bool {
	v, ok := s.src.Temperature()
	s.mu.Lock()
	s.celsius, s.ok = v, ok
	s.mu.Unlock()
	return ok
}

// Run samples every period until ctx is done. A source that stops answering
// is logged once.
func (s *Sampler) Run(ctx context.Context, period time.Duration, log zerolog.Logger) {
	t := time.NewTicker(period)
	defer t.Stop()
	failing := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if s.Sample() {
				failing = false
				continue
			}
			if !failing {
				log.Warn().Msg("temperature sensor unavailable")
			}
			failing = true
		}
	}
}

// DefaultBMEAddr is the BME280 address with SDO tied low.
const DefaultBMEAddr = 0x76

// BME reads a Bosch BMx280 on an I²C bus.
type BME struct {
	dev *bmxx80.Dev
	bus i2c.BusCloser
}

// OpenBME initializes the host and opens the named I²C bus ("" picks the
// first one available).
func OpenBME(bus string, addr uint16) (*BME, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	b, err := i2creg.Open(bus)
	if err != nil {
		return nil, fmt.Errorf("open i2c %q: %w", bus, err)
	}
	d, err := bmxx80.NewI2C(b, addr, &bmxx80.DefaultOpts)
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("bmxx80 at %#x: %w", addr, err)
	}
	return &BME{dev: d, bus: b}, nil
}

// Temperature runs a forced measurement and sleeps until it completes. Wrap
// it in a Sampler before handing it to anything on the tick.
func (b *BME) Temperature() (int, bool) {
	var e physic.Env
	if err := b.dev.Sense(&e); err != nil {
		return 0, false
	}
	return celsius(e.Temperature), true
}

func (b *BME) Close() error {
	err := b.dev.Halt()
	if cerr := b.bus.Close(); err == nil {
		err = cerr
	}
	return err
}

// celsius truncates toward zero, like the sensor's integer register.
func celsius(t physic.Temperature) int {
	return int((t - physic.ZeroCelsius) / physic.Celsius)
}
