package acoustics

import (
	"math"
	"testing"

	"quelea/pkg/core"
	"quelea/pkg/environment"

	"github.com/go-gl/mathgl/mgl64"
)

func TestStepSkipsDeadParticles(t *testing.T) {
	dead := NewParticle(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, 0}, 440, 5)
	dead.Intensity = 0
	expired := NewParticle(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, 0}, 440, 5)
	expired.Lifespan = 0
	live := NewParticle(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0.1, 0, 0}, 440, 5)

	sim := NewSimulation(nil, []Receiver{NewReceiver(mgl64.Vec3{0, 0, 0}, 1, 2)})
	res := sim.Step([]*Particle{dead, expired, live})

	if len(res.Paths) != 1 {
		t.Fatalf("only the live particle should produce a path, got %d", len(res.Paths))
	}
	if res.Paths[0].Start != (mgl64.Vec3{0, 0, 1}) || !res.Paths[0].End.ApproxEqual(mgl64.Vec3{0.1, 0, 1}) {
		t.Fatalf("unexpected path %v", res.Paths[0])
	}
	if res.TickTotal != 1 || res.TickHits[0] != 1 {
		t.Fatalf("expected one hit, got total=%d hits=%v", res.TickTotal, res.TickHits)
	}
	if len(res.Survivors) != 1 || res.Survivors[0] != live {
		t.Fatalf("expected only the live particle to survive")
	}
	if dead.Lifespan != InitialLifespan || expired.Intensity != InitialIntensity {
		t.Fatal("dead particles must not be advanced")
	}
}

func TestStepCountsOverlappingReceivers(t *testing.T) {
	receivers := []Receiver{
		NewReceiver(mgl64.Vec3{0, 0, 0}, 1, 2),
		NewReceiver(mgl64.Vec3{0.5, 0, 0}, 1, 2),
		NewReceiver(mgl64.Vec3{10, 0, 0}, 1, 2),
	}
	p := NewParticle(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0.2, 0, 0}, 440, 5)
	res := NewSimulation(nil, receivers).Step([]*Particle{p})
	if res.TickHits[0] != 1 || res.TickHits[1] != 1 || res.TickHits[2] != 0 {
		t.Fatalf("unexpected per-receiver hits %v", res.TickHits)
	}
	if res.TickTotal != 2 || res.Total != 2 {
		t.Fatalf("expected total 2, got tick=%d total=%d", res.TickTotal, res.Total)
	}
}

func TestPerTickPolicyResets(t *testing.T) {
	sim := NewSimulation(nil, []Receiver{NewReceiver(mgl64.Vec3{0, 0, 0}, 5, 5)})
	particles := []*Particle{NewParticle(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0.1, 0, 0}, 440, 5)}
	for tick := 0; tick < 3; tick++ {
		res := sim.Step(particles)
		if res.Total != 1 || res.Hits[0] != 1 {
			t.Fatalf("tick %d: per-tick counts should not accumulate, got %v", tick, res.Hits)
		}
		particles = res.Survivors
	}
}

func TestCumulativePolicyAccumulates(t *testing.T) {
	sim := NewSimulation(nil, []Receiver{NewReceiver(mgl64.Vec3{0, 0, 0}, 5, 5)})
	sim.Policy = Cumulative
	particles := []*Particle{
		NewParticle(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0.1, 0, 0}, 440, 5),
		NewParticle(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{-0.1, 0, 0}, 440, 5),
	}
	var last TickResult
	for tick := 0; tick < 4; tick++ {
		last = sim.Step(particles)
		particles = last.Survivors
		if last.TickTotal != 2 {
			t.Fatalf("tick %d: expected 2 hits this tick, got %d", tick, last.TickTotal)
		}
	}
	if last.Total != 8 || last.Hits[0] != 8 {
		t.Fatalf("expected 8 cumulative hits, got %d (%v)", last.Total, last.Hits)
	}
	sim.ResetHits()
	if res := sim.Step(particles); res.Total != 2 {
		t.Fatalf("ResetHits should restart the running total, got %d", res.Total)
	}
}

func TestMaxBounceParticleLeavesPopulation(t *testing.T) {
	room := environment.NewRoom(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 10, 10})
	p := NewParticle(mgl64.Vec3{5, 5, 1.2}, mgl64.Vec3{0, 0, -1}, 440, 1)
	sim := NewSimulation(room, nil)

	res := sim.Step([]*Particle{p})
	if p.Intensity != 0 {
		t.Fatalf("intensity should be zero after the capped bounce, got %f", p.Intensity)
	}
	if len(res.Paths) != 1 {
		t.Fatal("the dying particle still travelled this tick")
	}
	if len(res.Survivors) != 0 {
		t.Fatal("capped particle should be dropped from the population")
	}
	if next := sim.Step([]*Particle{p}); len(next.Paths) != 0 {
		t.Fatal("dead particle must not move on the next tick")
	}
}

func TestIsotropicPopulationDecaysUniformly(t *testing.T) {
	e := DefaultEmitter()
	particles := e.Emit(core.NewRNG(9))
	sim := NewSimulation(nil, nil)

	for _, ticks := range []int{1, 17, 120} {
		pop := append([]*Particle(nil), particles...)
		for _, p := range pop {
			p.Position, p.Intensity, p.Lifespan = e.Origin, InitialIntensity, InitialLifespan
		}
		pop, done := sim.Run(pop, ticks, nil)
		if done != ticks {
			t.Fatalf("expected %d ticks, ran %d", ticks, done)
		}
		if len(pop) != e.Count {
			t.Fatalf("all %d particles should survive %d ticks, got %d", e.Count, ticks, len(pop))
		}
		for _, p := range pop {
			if p.Lifespan != InitialLifespan-ticks {
				t.Fatalf("lifespan %d after %d ticks", p.Lifespan, ticks)
			}
			if want := 1.0 - 0.005*float64(ticks); math.Abs(p.Intensity-want) > 1e-9 {
				t.Fatalf("intensity %f after %d ticks, want %f", p.Intensity, ticks, want)
			}
		}
	}
}

func TestRunStopsWhenPopulationDies(t *testing.T) {
	e := DefaultEmitter()
	e.Count = 10
	sim := NewSimulation(nil, nil)
	calls := 0
	pop, done := sim.Run(e.Emit(core.NewRNG(1)), 1000, func(tick int, res TickResult) {
		calls++
		if tick != calls {
			t.Fatalf("tick numbering out of order: %d vs %d", tick, calls)
		}
	})
	if len(pop) != 0 {
		t.Fatalf("population should be exhausted, %d left", len(pop))
	}
	if done != InitialLifespan || calls != done {
		t.Fatalf("expected %d ticks, ran %d with %d callbacks", InitialLifespan, done, calls)
	}
}

func TestParallelStepMatchesSequential(t *testing.T) {
	room := environment.NewOpenRoom(mgl64.Vec3{-6, -6, 0}, mgl64.Vec3{6, 6, 5})
	receivers := []Receiver{
		NewReceiver(mgl64.Vec3{2, 2, 0}, 1.5, 3),
		NewReceiver(mgl64.Vec3{-3, 1, 0}, 1, 2),
	}
	e := DefaultEmitter()
	e.Origin = mgl64.Vec3{0, 0, 2}
	e.Count = 257

	seq := NewSimulation(room, receivers)
	seq.Policy = Cumulative
	par := NewSimulation(room, receivers)
	par.Policy = Cumulative
	par.Workers = 4

	a := e.Emit(core.NewRNG(21))
	b := e.Emit(core.NewRNG(21))
	for tick := 0; tick < 60; tick++ {
		ra := seq.Step(a)
		rb := par.Step(b)
		if len(ra.Paths) != len(rb.Paths) || len(ra.Survivors) != len(rb.Survivors) {
			t.Fatalf("tick %d: population sizes differ", tick)
		}
		for i := range ra.Paths {
			if ra.Paths[i] != rb.Paths[i] {
				t.Fatalf("tick %d: path %d differs", tick, i)
			}
		}
		for i := range ra.Hits {
			if ra.Hits[i] != rb.Hits[i] {
				t.Fatalf("tick %d: receiver %d hits %d vs %d", tick, i, ra.Hits[i], rb.Hits[i])
			}
		}
		a, b = ra.Survivors, rb.Survivors
	}
}
