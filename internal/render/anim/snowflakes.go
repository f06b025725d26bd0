package anim

import (
	"math/rand"

	"github.com/coreman2200/textime/internal/model"
	"github.com/coreman2200/textime/internal/render"
)

const (
	MaxFlakes   = 30
	FlakeLife   = 50
	flakeFade   = 5
	spawnChance = 4
)

type flake struct {
	row, col int
	life     int
	color    model.Color
}

// Snowflakes spawns white flakes on random cells that fade out behind the
// content.
type Snowflakes struct {
	rnd    *rand.Rand
	frame  render.Frame
	flakes [MaxFlakes]flake
}

func NewSnowflakes(rnd *rand.Rand) *Snowflakes { return &Snowflakes{rnd: rnd} }

func (*Snowflakes) Name() string { return "Snowflakes" }

func (s *Snowflakes) Begin(in, out *model.Buffer) {
	s.frame.Init(SnowflakePeriod)
	s.flakes = [MaxFlakes]flake{}
}

// Live counts flakes that are still visible.
func (s *Snowflakes) Live() int {
	n := 0
	for _, f := range s.flakes {
		if f.life > 0 {
			n++
		}
	}
	return n
}

func (s *Snowflakes) occupied(row, col int) bool {
	for _, f := range s.flakes {
		if f.life > 0 && f.row == row && f.col == col {
			return true
		}
	}
	return false
}

func (s *Snowflakes) spawn() {
	if s.rnd.Intn(spawnChance) != 0 {
		return
	}
	row, col := s.rnd.Intn(model.Rows), s.rnd.Intn(model.Cols)
	if s.occupied(row, col) {
		return
	}
	for i := range s.flakes {
		if s.flakes[i].life <= 0 {
			s.flakes[i] = flake{row: row, col: col, life: FlakeLife, color: model.White}
			return
		}
	}
}

func (s *Snowflakes) Handle(in, out *model.Buffer) {
	if !s.frame.Next() {
		return
	}
	out.Clear()
	s.spawn()
	for i := range s.flakes {
		f := &s.flakes[i]
		if f.life <= 0 {
			continue
		}
		out.SetPixel(model.On(f.color), f.row, f.col)
		f.life--
		f.color = f.color.Darken(flakeFade)
	}
	overlay(in, out)
	out.Dirty = true
}
