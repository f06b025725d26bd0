package led

import (
	"fmt"
	"io"
	"time"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

const (
	RefreshRate physic.Frequency = 800
	// DefaultFreq is the NRZ bit clock used when none is configured.
	DefaultFreq = ((RefreshRate * 3) + 100) * physic.KiloHertz
	// DefaultLatch is the WS2812 reset time the line must stay low between
	// two frames.
	DefaultLatch = 300 * time.Microsecond
)

// NRZ drives a WS281x chain through an SPI port using periph's nrzled
// encoder.
type NRZ struct {
	Buffer
	Latch time.Duration

	freq   physic.Frequency
	dev    *nrzled.Dev
	closer io.Closer
	last   time.Time
	now    func() time.Time
}

// OpenNRZ initializes the host and opens the named SPI port ("" picks the
// first one available). freq <= 0 selects DefaultFreq.
func OpenNRZ(port string, count int, freq physic.Frequency) (*NRZ, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	p, err := spireg.Open(port)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", port, err)
	}
	n, err := NewNRZ(p, count, freq)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	n.closer = p
	return n, nil
}

// NewNRZ wraps an already opened SPI port.
func NewNRZ(p spi.Port, count int, freq physic.Frequency) (*NRZ, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", count)
	}
	if freq <= 0 {
		freq = DefaultFreq
	}
	d, err := nrzled.NewSPI(p, &nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		Freq:      freq,
	})
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return &NRZ{
		Buffer: NewBuffer(count),
		Latch:  DefaultLatch,
		freq:   freq,
		dev:    d,
		now:    time.Now,
	}, nil
}

func (n *NRZ) String() string { return n.dev.String() }

// Freq is the bit clock handed to the encoder.
func (n *NRZ) Freq() physic.Frequency { return n.freq }

func (n *NRZ) CanShow() bool {
	if n.dev == nil {
		return false
	}
	return n.last.IsZero() || n.now().Sub(n.last) >= n.Latch
}

func (n *NRZ) Show() error {
	if !n.CanShow() {
		return ErrNotReady
	}
	if _, err := n.dev.Write(n.RGB()); err != nil {
		return fmt.Errorf("nrz write: %w", err)
	}
	n.last = n.now()
	return nil
}

func (n *NRZ) Close() error {
	if n.dev == nil {
		return nil
	}
	err := n.dev.Halt()
	n.dev = nil
	if n.closer != nil {
		if cerr := n.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
