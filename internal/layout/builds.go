package layout

import "github.com/coreman2200/textime/internal/model"

// Builds returns every known physical build, in selection order.
func Builds() []*Configuration {
	return []*Configuration{
		Panel40(),
		Panel100Single(),
		Panel100Double(),
	}
}

// Panel40 is the 40x40cm build: one LED per cell, the strip entering at
// row 0 after the first 12 LEDs and running a plain serpentine.
func Panel40() *Configuration {
	return New("40x40@1", 144, Serpentine{
		Offset:    model.Cols,
		RowLEDs:   model.Cols,
		Cols:      model.Cols,
		EvenStart: 0,
		EvenStep:  1,
		OddStart:  model.Cols - 1,
		OddStep:   -1,
		PerCell:   1,
	}, [model.Edges]int{11, 0, 132, 143})
}

// Panel100Single is the 100x100cm build with one LED per cell and a spacer
// LED between cells. Only 11 columns are wired.
func Panel100Single() *Configuration {
	return New("100x100@1", model.Rows*23+model.Edges, Serpentine{
		RowLEDs:   23,
		Cols:      11,
		EvenStart: 21,
		EvenStep:  -2,
		OddStart:  1,
		OddStep:   2,
		PerCell:   1,
	}, [model.Edges]int{232, 231, 230, 233})
}

// Panel100Double is the 100x100cm build with two LEDs per cell.
func Panel100Double() *Configuration {
	return New("100x100@2", model.Rows*24+model.Edges, Serpentine{
		RowLEDs:   24,
		Cols:      11,
		EvenStart: 21,
		EvenStep:  -2,
		OddStart:  1,
		OddStep:   2,
		PerCell:   2,
	}, [model.Edges]int{242, 241, 240, 243})
}

// Find returns the index of the build with the given name, or -1.
func Find(builds []*Configuration, name string) int {
	for i, b := range builds {
		if b.Name() == name {
			return i
		}
	}
	return -1
}
