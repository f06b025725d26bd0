package led

import "github.com/coreman2200/textime/internal/model"

// Strip abstracts the physical LED chain. It is polled synchronously; a
// driver that is still latching the previous frame reports !CanShow.
type Strip interface {
	CanShow() bool
	ClearTo(c model.Color)
	SetPixelColor(i int, c model.Color)
	Show() error
	Brightness() uint8
	SetBrightness(b uint8)
	PixelCount() int
	// RGB returns the frame as it would be transmitted, 3 bytes per LED.
	RGB() []byte
}

// Buffer holds the per-LED colors and global gain shared by every driver.
type Buffer struct {
	pixels     []model.Color
	brightness uint8

	// WhiteCap limits r+g+b of a single LED to WhiteCap*3*255 at transmit
	// time. Zero or >= 1 disables it.
	WhiteCap float64
	// LimitMA scales the whole frame down when its estimated draw exceeds
	// this many milliamps. Zero disables it.
	LimitMA float64
}

// ChannelMA is the draw of one WS2812 color channel at full scale.
const ChannelMA = 20.0

func NewBuffer(count int) Buffer {
	if count < 0 {
		count = 0
	}
	return Buffer{
		pixels:     make([]model.Color, count),
		brightness: 255,
	}
}

func (b *Buffer) PixelCount() int { return len(b.pixels) }

func (b *Buffer) ClearTo(c model.Color) {
	for i := range b.pixels {
		b.pixels[i] = c
	}
}

func (b *Buffer) SetPixelColor(i int, c model.Color) {
	if i < 0 || i >= len(b.pixels) {
		return
	}
	b.pixels[i] = c
}

func (b *Buffer) PixelColor(i int) model.Color {
	if i < 0 || i >= len(b.pixels) {
		return model.Black
	}
	return b.pixels[i]
}

func (b *Buffer) Brightness() uint8 { return b.brightness }

func (b *Buffer) SetBrightness(v uint8) { b.brightness = v }

func (b *Buffer) RGB() []byte {
	out := make([]byte, len(b.pixels)*3)
	for i, c := range b.pixels {
		c = c.Scale(b.brightness)
		out[i*3+0] = c.R
		out[i*3+1] = c.G
		out[i*3+2] = c.B
	}
	applyWhiteCap(out, b.WhiteCap)
	applyBudget(out, b.LimitMA)
	return out
}

// EstimateMA returns the estimated current of an rgb frame in milliamps.
func EstimateMA(rgb []byte) float64 {
	var sum float64
	for _, v := range rgb {
		sum += float64(v)
	}
	return sum / 255.0 * ChannelMA
}

// applyBudget scales every channel so the frame stays within limitMA.
func applyBudget(rgb []byte, limitMA float64) {
	if limitMA <= 0 {
		return
	}
	total := EstimateMA(rgb)
	if total <= limitMA {
		return
	}
	scale := limitMA / total
	for i := range rgb {
		rgb[i] = byte(float64(rgb[i]) * scale)
	}
}

// applyWhiteCap clamps per-LED RGB so r+g+b <= whiteCap*3*255
func applyWhiteCap(rgb []byte, whiteCap float64) {
	if whiteCap <= 0 || whiteCap >= 1 {
		return
	}
	limit := whiteCap * 3.0 * 255.0
	for i := 0; i+2 < len(rgb); i += 3 {
		s := float64(rgb[i]) + float64(rgb[i+1]) + float64(rgb[i+2])
		if s > limit && s > 0 {
			scale := limit / s
			rgb[i] = byte(float64(rgb[i]) * scale)
			rgb[i+1] = byte(float64(rgb[i+1]) * scale)
			rgb[i+2] = byte(float64(rgb[i+2]) * scale)
		}
	}
}

// Observed calls OnShow with every frame the wrapped strip transmitted.
type Observed struct {
	Strip
	OnShow func(rgb []byte)
}

func (o *Observed) Show() error {
	if err := o.Strip.Show(); err != nil {
		return err
	}
	if o.OnShow != nil {
		o.OnShow(o.Strip.RGB())
	}
	return nil
}
