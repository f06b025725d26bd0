package brightness

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	Samples      = 50
	SamplePeriod = 10 * time.Millisecond
)

type LuxReader interface {
	ReadLux() (int, error)
}

// Constant is a reader for boards without a light sensor.
type Constant int

func (c Constant) ReadLux() (int, error) { return int(c), nil }

// IIO reads an illuminance value exposed by a Linux IIO light sensor, e.g.
// /sys/bus/iio/devices/iio:device0/in_illuminance_input.
type IIO struct {
	Path string
}

func (s IIO) ReadLux() (int, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return 0, fmt.Errorf("read lux: %w", err)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse lux %q: %w", s.Path, err)
	}
	return int(v), nil
}

// Averager keeps a rolling mean of the last Samples readings. It is filled
// from its own goroutine and read from the engine's.
type Averager struct {
	mu      sync.Mutex
	samples [Samples]int
	next    int
	sum     int
}

// NewAverager starts with every slot set to initial so the mean is usable
// before the window fills.
func NewAverager(initial int) *Averager {
	a := &Averager{}
	for i := range a.samples {
		a.samples[i] = initial
	}
	a.sum = initial * Samples
	return a
}

func (a *Averager) Add(v int) {
	a.mu.Lock()
	a.sum += v - a.samples[a.next]
	a.samples[a.next] = v
	a.next = (a.next + 1) % Samples
	a.mu.Unlock()
}

func (a *Averager) AvgLux() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	v := a.sum / Samples
	if v < 0 {
		return 0
	}
	return v
}

// Run samples r every SamplePeriod until ctx is done. Read errors are logged
// once and then skipped until the reader recovers.
func (a *Averager) Run(ctx context.Context, r LuxReader, log zerolog.Logger) {
	t := time.NewTicker(SamplePeriod)
	defer t.Stop()
	failing := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			v, err := r.ReadLux()
			if err != nil {
				if !failing {
					log.Warn().Err(err).Msg("lux sensor")
				}
				failing = true
				continue
			}
			failing = false
			a.Add(v)
		}
	}
}
