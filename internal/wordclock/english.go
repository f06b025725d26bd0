// Package wordclock decomposes a time of day into the words of a letter
// grid.
package wordclock

import (
	"github.com/coreman2200/textime/internal/model"
	"github.com/coreman2200/textime/internal/render/mode"
)

// EnglishFace is the letter plate the English layout is wired for. Filler
// letters are never lit.
var EnglishFace = [model.Rows]string{
	"ITLISBFAMPMX",
	"ACQUARTERDCX",
	"TWENTYFIVEXW",
	"HALFSTENFTOX",
	"PASTERUNINEX",
	"ONESIXTHREEX",
	"FOURFIVETWOX",
	"EIGHTELEVENX",
	"SEVENTWELVEX",
	"TENSEOCLOCKX",
}

type word struct {
	row, col, n int
}

func (w word) cells() []mode.Cell {
	out := make([]mode.Cell, w.n)
	for i := range out {
		out[i] = mode.Cell{Row: w.row, Col: w.col + i}
	}
	return out
}

var (
	wIt      = word{0, 0, 2}
	wIs      = word{0, 3, 2}
	wA       = word{1, 0, 1}
	wQuarter = word{1, 2, 7}
	wTwenty  = word{2, 0, 6}
	wFive    = word{2, 6, 4}
	wHalf    = word{3, 0, 4}
	wTen     = word{3, 5, 3}
	wTo      = word{3, 9, 2}
	wPast    = word{4, 0, 4}
	wOClock  = word{9, 5, 6}
)

// hours is indexed by hour % 12.
var hours = [12]word{
	{8, 5, 6}, // twelve
	{5, 0, 3}, // one
	{6, 8, 3}, // two
	{5, 6, 5}, // three
	{6, 0, 4}, // four
	{6, 4, 4}, // five
	{5, 3, 3}, // six
	{8, 0, 5}, // seven
	{7, 0, 5}, // eight
	{4, 7, 4}, // nine
	{9, 0, 3}, // ten
	{7, 5, 6}, // eleven
}

// minutes holds the words for each five-minute step and whether the phrase
// counts towards the next hour.
var minutes = [12]struct {
	words []word
	to    bool
}{
	{[]word{}, false},
	{[]word{wFive, wPast}, false},
	{[]word{wTen, wPast}, false},
	{[]word{wA, wQuarter, wPast}, false},
	{[]word{wTwenty, wPast}, false},
	{[]word{wTwenty, wFive, wPast}, false},
	{[]word{wHalf, wPast}, false},
	{[]word{wTwenty, wFive, wTo}, true},
	{[]word{wTwenty, wTo}, true},
	{[]word{wA, wQuarter, wTo}, true},
	{[]word{wTen, wTo}, true},
	{[]word{wFive, wTo}, true},
}

// English reads the time as "IT IS TWENTY FIVE TO SIX", rounding down to
// five minutes.
type English struct{}

func (English) Words(hour, minute int) [][]mode.Cell {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return nil
	}
	step := minutes[minute/5]
	if step.to {
		hour++
	}
	ws := []word{wIt, wIs}
	ws = append(ws, step.words...)
	ws = append(ws, hours[hour%12])
	if minute < 5 {
		ws = append(ws, wOClock)
	}
	out := make([][]mode.Cell, len(ws))
	for i, w := range ws {
		out[i] = w.cells()
	}
	return out
}

// Text spells out the letters under each word.
func Text(words [][]mode.Cell) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		b := make([]byte, 0, len(w))
		for _, c := range w {
			b = append(b, EnglishFace[c.Row][c.Col])
		}
		out = append(out, string(b))
	}
	return out
}
