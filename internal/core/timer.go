package core

import "time"

// FixedStep paces simulation ticks independently of the frame rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	maxBurst    int

	now func() time.Time
}

// NewFixedStep returns a pacer targeting tps ticks per second. At most
// maxBurst ticks are released per call so a stalled frame cannot snowball.
func NewFixedStep(tps, maxBurst int) *FixedStep {
	if maxBurst <= 0 {
		maxBurst = 1
	}
	fs := &FixedStep{maxBurst: maxBurst, now: time.Now}
	fs.SetTPS(tps)
	return fs
}

// SetTPS changes the tick rate. Non-positive values fall back to 60.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// TPS reports the current tick rate.
func (f *FixedStep) TPS() int {
	return int(time.Second / f.step)
}

// Due returns how many ticks should run now.
func (f *FixedStep) Due() int {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
		return 1
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	n := int(f.accumulator / f.step)
	if n > f.maxBurst {
		n = f.maxBurst
		f.accumulator = 0
		return n
	}
	f.accumulator -= time.Duration(n) * f.step
	return n
}
