package model

// Grid geometry shared by every stage of the pipeline.
const (
	Rows  = 10
	Cols  = 12
	Edges = 4
)

// Pixel is one logical position. Display=false means the position is absent
// from the frame, which is not the same as black.
type Pixel struct {
	Color   Color
	Display bool
}

// Blank is the absent pixel.
var Blank = Pixel{}

func On(c Color) Pixel {
	return Pixel{Color: c, Display: true}
}

type Grid [Rows][Cols]Pixel

func (g *Grid) Fill(p Pixel) {
	for r := range g {
		for c := range g[r] {
			g[r][c] = p
		}
	}
}

func (g *Grid) Set(p Pixel, row, col int) {
	if !InGrid(row, col) {
		return
	}
	g[row][col] = p
}

func (g *Grid) Get(row, col int) Pixel {
	if !InGrid(row, col) {
		return Blank
	}
	return g[row][col]
}

// Buffer is the unit exchanged between mode, animation and flush. Dirty is
// set by whoever writes new content and cleared by whoever consumes it.
type Buffer struct {
	Grid  Grid
	Edge  [Edges]Pixel
	Dirty bool
}

func (b *Buffer) Fill(p Pixel) {
	b.Grid.Fill(p)
	for i := range b.Edge {
		b.Edge[i] = p
	}
}

func (b *Buffer) Clear() {
	b.Fill(Blank)
}

func (b *Buffer) SetPixel(p Pixel, row, col int) {
	b.Grid.Set(p, row, col)
}

func (b *Buffer) Pixel(row, col int) Pixel {
	return b.Grid.Get(row, col)
}

func (b *Buffer) SetEdge(p Pixel, i int) {
	if i < 0 || i >= Edges {
		return
	}
	b.Edge[i] = p
}

func (b *Buffer) EdgePixel(i int) Pixel {
	if i < 0 || i >= Edges {
		return Blank
	}
	return b.Edge[i]
}

// Lit counts displayed positions in the grid and edges.
func (b *Buffer) Lit() int {
	n := 0
	for r := range b.Grid {
		for c := range b.Grid[r] {
			if b.Grid[r][c].Display {
				n++
			}
		}
	}
	for _, p := range b.Edge {
		if p.Display {
			n++
		}
	}
	return n
}

func InGrid(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}
