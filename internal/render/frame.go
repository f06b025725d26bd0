package render

// Frame paces an effect independently of how often the engine ticks. Effects
// call Next once per tick; it reports true once every period calls, so the
// period is a count of engine ticks, not wall-clock time.
type Frame struct {
	period int
	count  int
}

func (f *Frame) Init(period int) {
	if period < 1 {
		period = 1
	}
	f.period = period
	f.count = 0
}

func (f *Frame) Next() bool {
	f.count++
	if f.count < f.period {
		return false
	}
	f.count = 0
	return true
}
