package layout

import "github.com/coreman2200/textime/internal/model"

// Serpentine describes how one physical build snakes its strip through the
// grid. Even and odd rows may start from opposite ends and step by more than
// one LED when the strip carries spacer LEDs between cells.
type Serpentine struct {
	Offset    int // first LED of row 0
	RowLEDs   int // LEDs consumed per row, including spacers
	Cols      int // physically wired columns; the rest map to nothing
	EvenStart int
	EvenStep  int
	OddStart  int
	OddStep   int
	PerCell   int // consecutive LEDs lighting one cell
}

// Index maps row,col -> first physical LED of that cell.
func (s Serpentine) Index(row, col int) int {
	base := s.Offset + row*s.RowLEDs
	if row%2 == 1 {
		return base + s.OddStart + col*s.OddStep
	}
	return base + s.EvenStart + col*s.EvenStep
}

// Configuration is the immutable logical-to-physical map of one build.
type Configuration struct {
	name    string
	count   int
	perCell int
	perEdge int
	matrix  [model.Rows][model.Cols][]int
	edges   [model.Edges][]int
}

// New bakes a configuration table from a serpentine description and the
// physical indices of the edge LEDs.
func New(name string, count int, s Serpentine, edges [model.Edges]int) *Configuration {
	per := s.PerCell
	if per <= 0 {
		per = 1
	}
	c := &Configuration{
		name:    name,
		count:   count,
		perCell: per,
		perEdge: 1,
	}
	for r := 0; r < model.Rows; r++ {
		for col := 0; col < model.Cols && col < s.Cols; col++ {
			first := s.Index(r, col)
			ids := make([]int, per)
			for i := range ids {
				ids[i] = first + i
			}
			c.matrix[r][col] = ids
		}
	}
	for i, e := range edges {
		c.edges[i] = []int{e}
	}
	return c
}

func (c *Configuration) Name() string { return c.name }
func (c *Configuration) Count() int { return c.count }
func (c *Configuration) LedsPerCell() int { return c.perCell }
func (c *Configuration) LedsPerEdge() int { return c.perEdge }

// Matrix returns the physical LEDs of a grid cell, or nil when the cell is
// out of range or not wired on this build.
func (c *Configuration) Matrix(row, col int) []int {
	if !model.InGrid(row, col) {
		return nil
	}
	return c.matrix[row][col]
}

// Edge returns the physical LEDs of an edge slot, or nil.
func (c *Configuration) Edge(i int) []int {
	if i < 0 || i >= model.Edges {
		return nil
	}
	return c.edges[i]
}
