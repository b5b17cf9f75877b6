package core

// Size describes the pixel dimensions of a simulation's top-down view.
type Size struct {
	W int
	H int
}

// Sim is the contract between a simulation and the viewer shell.
type Sim interface {
	Name() string
	Size() Size
	// Reset rebuilds the initial state from seed. Zero selects the
	// simulation's configured seed.
	Reset(seed int64)
	// Step advances the simulation by one tick.
	Step()
	// Cells exposes a Size().W*Size().H buffer of palette indices.
	Cells() []uint8
}

// Factory constructs a Sim from optional key/value overrides.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}
