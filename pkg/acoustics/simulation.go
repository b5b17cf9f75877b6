package acoustics

import (
	"quelea/pkg/environment"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
)

// HitPolicy controls whether receiver counters survive across ticks.
type HitPolicy int

const (
	// PerTick resets every receiver counter at the start of each tick.
	PerTick HitPolicy = iota
	// Cumulative keeps running totals for the whole run.
	Cumulative
)

// String returns the config name of the policy.
func (p HitPolicy) String() string {
	switch p {
	case PerTick:
		return "tick"
	case Cumulative:
		return "run"
	default:
		return "unknown"
	}
}

// Segment is the path a particle travelled during one tick.
type Segment struct {
	Start, End mgl64.Vec3
}

// TickResult collects everything produced by one Step.
type TickResult struct {
	Paths     []Segment
	Survivors []*Particle

	// TickHits and TickTotal always cover only this tick.
	TickHits  []int
	TickTotal int

	// Hits and Total follow the simulation's HitPolicy.
	Hits  []int
	Total int
}

// Simulation advances particle populations through an environment and tallies
// receiver hits. Env may be nil for free flight.
type Simulation struct {
	Env       environment.Environment
	Receivers []Receiver
	Policy    HitPolicy

	// Workers > 1 splits each tick into that many contiguous chunks.
	Workers int

	runHits  []int
	runTotal int
}

// NewSimulation returns a sequential per-tick simulation.
func NewSimulation(env environment.Environment, receivers []Receiver) *Simulation {
	return &Simulation{Env: env, Receivers: receivers}
}

// ResetHits clears the cumulative counters.
func (s *Simulation) ResetHits() {
	s.runHits = nil
	s.runTotal = 0
}

type chunkResult struct {
	paths     []Segment
	survivors []*Particle
	hits      []int
	total     int
}

// Step advances every alive particle once. Particles that are dead on entry
// are skipped; particles that die during the move are dropped from Survivors
// but their hits for this tick still count.
func (s *Simulation) Step(particles []*Particle) TickResult {
	workers := s.Workers
	if workers > len(particles) {
		workers = len(particles)
	}
	var chunks []chunkResult
	if workers <= 1 {
		chunks = []chunkResult{s.stepChunk(particles)}
	} else {
		chunks = make([]chunkResult, workers)
		size := (len(particles) + workers - 1) / workers
		var g errgroup.Group
		for i := 0; i < workers; i++ {
			lo := i * size
			hi := min(lo+size, len(particles))
			if lo >= hi {
				continue
			}
			g.Go(func() error {
				chunks[i] = s.stepChunk(particles[lo:hi])
				return nil
			})
		}
		_ = g.Wait()
	}
	return s.reduce(chunks)
}

func (s *Simulation) stepChunk(particles []*Particle) chunkResult {
	res := chunkResult{
		paths:     make([]Segment, 0, len(particles)),
		survivors: make([]*Particle, 0, len(particles)),
		hits:      make([]int, len(s.Receivers)),
	}
	for _, p := range particles {
		if p == nil || !p.IsAlive() {
			continue
		}
		start := p.Position
		p.Move(s.Env)
		res.paths = append(res.paths, Segment{Start: start, End: p.Position})
		if p.IsAlive() {
			res.survivors = append(res.survivors, p)
		}
		for i, r := range s.Receivers {
			if r.IsParticleInside(p.Position) {
				res.hits[i]++
				res.total++
			}
		}
	}
	return res
}

func (s *Simulation) reduce(chunks []chunkResult) TickResult {
	out := TickResult{TickHits: make([]int, len(s.Receivers))}
	for _, c := range chunks {
		out.Paths = append(out.Paths, c.paths...)
		out.Survivors = append(out.Survivors, c.survivors...)
		for i, h := range c.hits {
			out.TickHits[i] += h
		}
		out.TickTotal += c.total
	}

	switch s.Policy {
	case Cumulative:
		if len(s.runHits) != len(s.Receivers) {
			s.runHits = make([]int, len(s.Receivers))
			s.runTotal = 0
		}
		for i, h := range out.TickHits {
			s.runHits[i] += h
		}
		s.runTotal += out.TickTotal
		out.Hits = append([]int(nil), s.runHits...)
		out.Total = s.runTotal
	default:
		out.Hits = append([]int(nil), out.TickHits...)
		out.Total = out.TickTotal
	}
	return out
}

// Run steps the population up to ticks times, stopping early once no particle
// survives. fn, when non-nil, observes each tick. Run returns the final
// population and the number of ticks executed.
func (s *Simulation) Run(particles []*Particle, ticks int, fn func(tick int, res TickResult)) ([]*Particle, int) {
	done := 0
	for done < ticks && len(particles) > 0 {
		res := s.Step(particles)
		done++
		if fn != nil {
			fn(done, res)
		}
		particles = res.Survivors
	}
	return particles, done
}
