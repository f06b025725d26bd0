package anim

import (
	"math/rand"

	"github.com/coreman2200/textime/internal/model"
	"github.com/coreman2200/textime/internal/render"
)

const (
	// Trail is the length of a falling drop, head included.
	Trail = 9
	// trailFade is how much each trail cell darkens relative to the one
	// below it.
	trailFade = 30
	// dropChance is the 1-in-N chance per frame that an idle column starts
	// a drop.
	dropChance = 30
)

// Matrix rains green drops down the columns behind the content.
type Matrix struct {
	rnd   *rand.Rand
	frame render.Frame
	// head row per column, -1 when idle
	heads [model.Cols]int
}

func NewMatrix(rnd *rand.Rand) *Matrix {
	m := &Matrix{rnd: rnd}
	m.idle()
	return m
}

func (*Matrix) Name() string { return "Matrix" }

func (m *Matrix) idle() {
	for c := range m.heads {
		m.heads[c] = -1
	}
}

func (m *Matrix) Begin(in, out *model.Buffer) {
	m.frame.Init(MatrixPeriod)
	m.idle()
}

func (m *Matrix) Handle(in, out *model.Buffer) {
	if !m.frame.Next() {
		return
	}
	out.Clear()
	for c := range m.heads {
		if m.heads[c] < 0 {
			if m.rnd.Intn(dropChance) != 0 {
				continue
			}
			m.heads[c] = 0
		}
		green := model.Green
		for r := m.heads[c]; r > m.heads[c]-Trail; r-- {
			out.SetPixel(model.On(green), r, c)
			green = green.Darken(trailFade)
		}
		m.heads[c]++
		if m.heads[c] > model.Rows+Trail {
			m.heads[c] = -1
		}
	}
	overlay(in, out)
	out.Dirty = true
}
