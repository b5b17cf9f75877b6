package acoustic

import (
	"math"
	"slices"
	"testing"

	"quelea/internal/core"
)

func positions(w *World) []float64 {
	var out []float64
	for _, p := range w.Particles() {
		out = append(out, p.Position.X(), p.Position.Y(), p.Position.Z())
	}
	return out
}

func TestResetIsDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.Count = 50
	a := NewWithConfig(cfg)
	b := NewWithConfig(cfg)
	a.Reset(7)
	b.Reset(7)
	for i := 0; i < 20; i++ {
		a.Step()
		b.Step()
	}
	if !slices.Equal(positions(a), positions(b)) {
		t.Fatal("expected identical populations for the same seed")
	}
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("expected identical footprints for the same seed")
	}

	c := NewWithConfig(cfg)
	c.Reset(8)
	for i := 0; i < 20; i++ {
		c.Step()
	}
	if slices.Equal(positions(a), positions(c)) {
		t.Fatal("expected different seeds to diverge")
	}
}

func TestResetEmitsConfiguredCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.Count = 25
	w := NewWithConfig(cfg)
	w.Reset(0)
	if len(w.Particles()) != 25 {
		t.Fatalf("expected 25 particles, got %d", len(w.Particles()))
	}
	if w.Tick() != 0 {
		t.Fatalf("expected tick 0 after reset, got %d", w.Tick())
	}
	if len(w.Receivers()) != cfg.Params.Receivers {
		t.Fatalf("expected %d receivers, got %d", cfg.Params.Receivers, len(w.Receivers()))
	}
}

func TestFootprintFades(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.Count = 10
	cfg.Params.Loop = false
	cfg.Params.MaxBounces = 1
	w := NewWithConfig(cfg)
	w.Reset(3)
	w.Step()

	var lit int
	for _, c := range w.Cells() {
		if c > 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("expected the footprint to record particles")
	}

	w.particles = nil
	for i := 0; i < 255/cfg.Params.Fade+1; i++ {
		w.Step()
	}
	for i, c := range w.Cells() {
		if c != 0 {
			t.Fatalf("expected cell %d to fade out, got %d", i, c)
		}
	}
}

func TestLoopReemitsExtinctPopulation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.Count = 5
	w := NewWithConfig(cfg)
	w.Reset(1)
	w.particles = nil
	w.Step()
	if w.emissions != 2 {
		t.Fatalf("expected a second emission, got %d", w.emissions)
	}
	if len(w.Particles()) == 0 {
		t.Fatal("expected the re-emitted population to be alive")
	}
}

func TestReceiverRingPlacement(t *testing.T) {
	p := DefaultConfig().Params
	p.Receivers = 4
	ring := receiverRing(p)
	if len(ring) != 4 {
		t.Fatalf("expected 4 receivers, got %d", len(ring))
	}
	want := p.ReceiverRing * p.RoomWidth / 2
	for i, r := range ring {
		d := math.Hypot(r.BaseCenter.X(), r.BaseCenter.Y())
		if math.Abs(d-want) > 1e-9 || r.BaseCenter.Z() != 0 {
			t.Fatalf("receiver %d at %v, expected distance %f on the floor", i, r.BaseCenter, want)
		}
	}
}

func TestHitsAccumulateAcrossTicks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.Count = 300
	w := NewWithConfig(cfg)
	w.Reset(11)

	sum := 0
	for i := 0; i < 60; i++ {
		w.Step()
		sum += w.LastResult().TickTotal
	}
	total := 0
	for _, h := range w.RunHits() {
		total += h
	}
	if total != sum {
		t.Fatalf("expected run hits %d to equal summed tick hits %d", total, sum)
	}
}

func TestSetIntParameterClampsAndRebuilds(t *testing.T) {
	w := NewWithConfig(DefaultConfig())
	w.Reset(0)
	if !w.SetIntParameter("receivers", 20) {
		t.Fatal("expected receivers to be adjustable")
	}
	if w.cfg.Params.Receivers != 8 || len(w.Receivers()) != 8 {
		t.Fatalf("expected receivers clamped to 8, got %d", len(w.Receivers()))
	}
	if len(w.RunHits()) != 8 {
		t.Fatalf("expected hit slots to follow receivers, got %d", len(w.RunHits()))
	}
	if w.SetIntParameter("speed", 3) {
		t.Fatal("expected float key to be rejected by the int setter")
	}
	if w.SetIntParameter("unknown", 1) {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestSetFloatParameterClamps(t *testing.T) {
	w := NewWithConfig(DefaultConfig())
	if !w.SetFloatParameter("cone_angle", 500) {
		t.Fatal("expected cone angle to be adjustable")
	}
	if got := w.cfg.Params.ConeAngle; math.Abs(got-180) > 1e-9 {
		t.Fatalf("expected cone angle to clamp to 180, got %f", got)
	}
	if !w.SetFloatParameter("speed", 0) {
		t.Fatal("expected speed to be adjustable")
	}
	if got := w.emitter.Speed; math.Abs(got-0.25) > 1e-9 {
		t.Fatalf("expected emitter speed 0.25, got %f", got)
	}
}

func TestParametersExposeHits(t *testing.T) {
	w := NewWithConfig(DefaultConfig())
	w.Reset(0)
	w.hits[1] = 7
	snap := w.Parameters()
	p, ok := snap.Lookup("hits_r2")
	if !ok || p.Value != "7" {
		t.Fatalf("expected hits_r2=7, got %+v (found=%v)", p, ok)
	}
	if _, ok := snap.Lookup("alive"); !ok {
		t.Fatal("expected alive readout")
	}
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":            "64",
		"count":        "12",
		"cone":         "true",
		"open_ceiling": "1",
		"speed":        "-1",
		"room_height":  "4",
	})
	if cfg.Width != 64 || cfg.Params.Count != 12 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if !cfg.Params.Cone || !cfg.Params.OpenCeiling {
		t.Fatal("expected boolean flags to parse")
	}
	if cfg.Params.Speed != DefaultConfig().Params.Speed {
		t.Fatal("expected negative speed to be ignored")
	}
	if cfg.Params.EmitterHeight != 2 {
		t.Fatalf("expected emitter height to stay inside the room, got %f", cfg.Params.EmitterHeight)
	}
}

func TestRegistered(t *testing.T) {
	f, ok := core.Sims()["acoustic"]
	if !ok {
		t.Fatal("expected acoustic sim to be registered")
	}
	sim := f(map[string]string{"w": "32", "h": "16"})
	if sim.Size() != (core.Size{W: 32, H: 16}) {
		t.Fatalf("unexpected size %+v", sim.Size())
	}
	if len(sim.Cells()) != 32*16 {
		t.Fatalf("unexpected cell count %d", len(sim.Cells()))
	}
}
