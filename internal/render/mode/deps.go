package mode

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/coreman2200/textime/internal/clock"
	"github.com/coreman2200/textime/internal/led"
)

// Deps are the collaborators the generators read from.
type Deps struct {
	Clock       clock.Clock
	Words       WordSource
	Thermometer clock.Thermometer
	Strip       led.Strip
	Rand        *rand.Rand
	Log         zerolog.Logger

	// TestColorsHold is how many ticks each test color stays up.
	TestColorsHold int
}
