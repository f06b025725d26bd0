package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/textime/internal/model"
)

var TestCellsMapToPhysicalLeds = []struct {
	Build    *Configuration
	Row, Col int
	Expect   []int
}{
	{Panel40(), 0, 0, []int{12}},
	{Panel40(), 0, 11, []int{23}},
	{Panel40(), 1, 0, []int{35}},
	{Panel40(), 7, 3, []int{104}},
	{Panel40(), 9, 11, []int{120}},
	{Panel100Single(), 0, 0, []int{21}},
	{Panel100Single(), 0, 10, []int{1}},
	{Panel100Single(), 1, 0, []int{24}},
	{Panel100Single(), 4, 7, []int{99}},
	{Panel100Single(), 9, 10, []int{228}},
	{Panel100Double(), 0, 0, []int{21, 22}},
	{Panel100Double(), 3, 0, []int{73, 74}},
	{Panel100Double(), 8, 10, []int{193, 194}},
	{Panel100Double(), 9, 10, []int{237, 238}},
}

func TestMatrixLookup(t *testing.T) {
	for _, v := range TestCellsMapToPhysicalLeds {
		t.Run(v.Build.Name(), func(t *testing.T) {
			assert.Equal(t, v.Expect, v.Build.Matrix(v.Row, v.Col))
		})
	}
}

func TestEdgesAndCounts(t *testing.T) {
	p := Panel40()
	assert.Equal(t, 144, p.Count())
	assert.Equal(t, []int{11}, p.Edge(0))
	assert.Equal(t, []int{143}, p.Edge(3))

	s := Panel100Single()
	assert.Equal(t, 234, s.Count())
	assert.Equal(t, []int{230}, s.Edge(2))
	assert.Equal(t, 1, s.LedsPerCell())

	d := Panel100Double()
	assert.Equal(t, 244, d.Count())
	assert.Equal(t, 2, d.LedsPerCell())
	assert.Equal(t, 1, d.LedsPerEdge())
	assert.Equal(t, []int{243}, d.Edge(3))
}

func TestLookupOutOfRangeIsNone(t *testing.T) {
	for _, b := range Builds() {
		assert.Nil(t, b.Matrix(-1, 0), b.Name())
		assert.Nil(t, b.Matrix(0, model.Cols), b.Name())
		assert.Nil(t, b.Matrix(model.Rows, 0), b.Name())
		assert.Nil(t, b.Edge(-1), b.Name())
		assert.Nil(t, b.Edge(model.Edges), b.Name())
	}
	// the 100x100 builds only wire 11 columns
	assert.Nil(t, Panel100Single().Matrix(0, 11))
	assert.Nil(t, Panel100Double().Matrix(5, 11))
	assert.NotNil(t, Panel40().Matrix(5, 11))
}

func TestEveryIndexFitsTheStrip(t *testing.T) {
	for _, b := range Builds() {
		seen := map[int]bool{}
		for r := 0; r < model.Rows; r++ {
			for c := 0; c < model.Cols; c++ {
				for _, i := range b.Matrix(r, c) {
					assert.True(t, i >= 0 && i < b.Count(), "%s: %d out of strip", b.Name(), i)
					assert.False(t, seen[i], "%s: %d mapped twice", b.Name(), i)
					seen[i] = true
				}
			}
		}
		for e := 0; e < model.Edges; e++ {
			for _, i := range b.Edge(e) {
				assert.True(t, i >= 0 && i < b.Count())
				assert.False(t, seen[i], "%s: edge %d collides", b.Name(), i)
				seen[i] = true
			}
		}
	}
}

func TestFind(t *testing.T) {
	bs := Builds()
	assert.Equal(t, 0, Find(bs, "40x40@1"))
	assert.Equal(t, 2, Find(bs, "100x100@2"))
	assert.Equal(t, -1, Find(bs, "nope"))
}
