package led

import (
	"bytes"
	"fmt"
	"io"
)

// Console prints the strip as a row of 24-bit ANSI color cells. It is used
// when no SPI port can be found.
type Console struct {
	Buffer
	w io.Writer
}

func NewConsole(w io.Writer, count int) *Console {
	return &Console{Buffer: NewBuffer(count), w: w}
}

func (c *Console) CanShow() bool { return true }

func (c *Console) Show() error {
	rgb := c.RGB()
	var buf bytes.Buffer
	buf.WriteString("\r")
	for i := 0; i+2 < len(rgb); i += 3 {
		fmt.Fprintf(&buf, "\x1b[48;2;%d;%d;%dm ", rgb[i], rgb[i+1], rgb[i+2])
	}
	buf.WriteString("\x1b[0m")
	_, err := c.w.Write(buf.Bytes())
	return err
}

func (c *Console) Close() error {
	_, err := io.WriteString(c.w, "\n")
	return err
}
