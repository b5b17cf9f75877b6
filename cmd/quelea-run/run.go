package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"quelea/internal/report"
	"quelea/internal/scenario"
	"quelea/pkg/acoustics"
	"quelea/pkg/core"
)

type runCmd struct {
	Scenario string   `arg:"" optional:"" type:"path" help:"Scenario TOML file. Built-in defaults when omitted."`
	Ticks    int      `help:"Override the tick budget."`
	Seed     string   `help:"Override the emission seed."`
	Workers  int      `help:"Override the number of step workers."`
	CSV      string   `name:"csv" type:"path" help:"Write per-tick receiver counts to this CSV file."`
	Set      []string `short:"s" sep:"none" help:"key=value override, repeatable."`
	Quiet    bool     `short:"q" help:"Suppress progress logging."`
}

func (r *runCmd) Run() error {
	sc, err := loadScenario(r.Scenario, r.Set)
	if err != nil {
		return err
	}
	if r.Ticks > 0 {
		sc.Ticks = r.Ticks
	}
	if r.Workers > 0 {
		sc.Workers = r.Workers
	}
	if r.Seed != "" {
		seed, err := strconv.ParseInt(r.Seed, 10, 64)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		sc.Seed = seed
	}

	var tl *report.TickLog
	if r.CSV != "" {
		f, err := os.Create(r.CSV)
		if err != nil {
			return err
		}
		defer f.Close()
		setup, err := sc.Build()
		if err != nil {
			return err
		}
		if tl, err = report.NewTickLog(f, setup.Names); err != nil {
			return err
		}
	}

	every := sc.Ticks / 10
	if r.Quiet || every == 0 {
		every = -1
	}
	start := time.Now()
	sum, err := simulate(sc, tl, func(tick int, res acoustics.TickResult) {
		if every > 0 && tick%every == 0 {
			log.Printf("tick %d/%d alive=%d hits=%d", tick, sc.Ticks, len(res.Survivors), res.TickTotal)
		}
	})
	if err != nil {
		return err
	}
	if tl != nil {
		if err := tl.Flush(); err != nil {
			return fmt.Errorf("write %s: %w", r.CSV, err)
		}
	}
	if !r.Quiet {
		log.Printf("finished %d ticks in %s", sum.Ticks(), time.Since(start).Round(time.Millisecond))
	}
	return sum.Print(os.Stdout)
}

func loadScenario(path string, overrides []string) (scenario.Scenario, error) {
	sc := scenario.Default()
	if path != "" {
		var err error
		if sc, err = scenario.Load(path); err != nil {
			return sc, err
		}
	}
	if err := sc.ApplyOverrides(overrides); err != nil {
		return sc, err
	}
	return sc, sc.Validate()
}

// simulate emits the scenario's population once and steps it until the tick
// budget runs out or every particle has died. tl and fn may be nil.
func simulate(sc scenario.Scenario, tl *report.TickLog, fn func(int, acoustics.TickResult)) (*report.Summary, error) {
	setup, err := sc.Build()
	if err != nil {
		return nil, err
	}
	sum := report.NewSummary(setup.Names)
	sim := setup.Simulation(sc.Workers)
	particles := setup.Emitter.Emit(core.NewRNG(sc.Seed))

	var werr error
	sim.Run(particles, sc.Ticks, func(tick int, res acoustics.TickResult) {
		sum.Add(res)
		if tl != nil && werr == nil {
			werr = tl.Record(tick, res)
		}
		if fn != nil {
			fn(tick, res)
		}
	})
	return sum, werr
}
