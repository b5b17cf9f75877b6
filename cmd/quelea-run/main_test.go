package main

import (
	"bytes"
	"encoding/csv"
	"testing"

	"quelea/internal/report"
	"quelea/internal/scenario"
)

func smallScenario(t *testing.T) scenario.Scenario {
	t.Helper()
	sc := scenario.Default()
	if err := sc.ApplyOverrides([]string{"count=64", "ticks=40", "max_bounces=1000"}); err != nil {
		t.Fatal(err)
	}
	return sc
}

func TestSimulateIsDeterministic(t *testing.T) {
	sc := smallScenario(t)
	a, err := simulate(sc, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := simulate(sc, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if a.Total() != b.Total() || a.Ticks() != b.Ticks() {
		t.Fatalf("runs differ: %d/%d vs %d/%d", a.Total(), a.Ticks(), b.Total(), b.Ticks())
	}
	if a.Ticks() != 40 {
		t.Fatalf("expected 40 ticks, got %d", a.Ticks())
	}
}

func TestSimulateWritesCSV(t *testing.T) {
	sc := smallScenario(t)
	var buf bytes.Buffer
	tl, err := report.NewTickLog(&buf, []string{"r1"})
	if err != nil {
		t.Fatal(err)
	}
	sum, err := simulate(sc, tl, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := tl.Flush(); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != sum.Ticks()+1 {
		t.Fatalf("expected %d rows, got %d", sum.Ticks()+1, len(rows))
	}
}

func TestSweepGridAndRanking(t *testing.T) {
	sets := sweepGrid([]int{1, 4}, []float64{10, 45, 90})
	if len(sets) != 6 {
		t.Fatalf("expected 6 sets, got %d", len(sets))
	}
	all := sweep(smallScenario(t), sets, 3)
	if len(all) != len(sets) {
		t.Fatalf("expected %d results, got %d", len(sets), len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].err != nil {
			t.Fatal(all[i].err)
		}
		if all[i].total > all[i-1].total {
			t.Fatalf("results not ranked: %d after %d", all[i].total, all[i-1].total)
		}
	}
}

func TestSweepMatchesSingleRun(t *testing.T) {
	sc := smallScenario(t)
	p := sweepParams{maxBounces: 3, coneAngle: 30}
	first := runSweepScenario(sc, p)
	again := sweep(sc, []sweepParams{p}, 2)
	if first.total != again[0].total {
		t.Fatalf("pool result %d differs from direct run %d", again[0].total, first.total)
	}
}

func TestLoadScenarioOverrides(t *testing.T) {
	sc, err := loadScenario("", []string{"ticks=7", "mode=cone"})
	if err != nil {
		t.Fatal(err)
	}
	if sc.Ticks != 7 || sc.Emitter.Mode != "cone" {
		t.Fatalf("overrides not applied: %+v", sc)
	}
	if _, err := loadScenario("", []string{"mode=laser"}); err == nil {
		t.Fatal("expected an error for an unknown mode")
	}
}
