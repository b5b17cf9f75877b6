package main

import (
	"fmt"
	"log"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"time"

	"quelea/internal/scenario"
)

type sweepCmd struct {
	Scenario string    `arg:"" optional:"" type:"path" help:"Scenario TOML file. Built-in defaults when omitted."`
	Bounces  []int     `default:"2,5,10" help:"Max bounce values to try."`
	Cone     []float64 `default:"15,30,60" help:"Cone half-angles in degrees to try. Forces cone emission."`
	Workers  int       `help:"Number of scenarios run concurrently." default:"0"`
	Top      int       `default:"5" help:"Number of ranked results to print."`
	Set      []string  `short:"s" sep:"none" help:"key=value override applied to every run, repeatable."`
}

type sweepParams struct {
	maxBounces int
	coneAngle  float64
}

func (p sweepParams) String() string {
	return fmt.Sprintf("max_bounces=%d cone=%.1f", p.maxBounces, p.coneAngle)
}

type sweepResult struct {
	params    sweepParams
	total     int
	perRecv   []int
	peakTick  int
	peakHits  int
	ticks     int
	meanAlive float64
	err       error
}

func sweepGrid(bounces []int, cones []float64) []sweepParams {
	var sets []sweepParams
	for _, b := range bounces {
		for _, c := range cones {
			sets = append(sets, sweepParams{maxBounces: b, coneAngle: c})
		}
	}
	return sets
}

func runSweepScenario(base scenario.Scenario, p sweepParams) sweepResult {
	sc := base
	sc.Receivers = append([]scenario.Receiver(nil), base.Receivers...)
	sc.Emitter.MaxBounces = p.maxBounces
	sc.Emitter.ConeAngle = p.coneAngle
	sc.Emitter.Mode = "cone"
	sc.Workers = 1

	res := sweepResult{params: p}
	sum, err := simulate(sc, nil, nil)
	if err != nil {
		res.err = err
		return res
	}
	res.total = sum.Total()
	res.perRecv = sum.ReceiverTotals()
	res.peakTick, res.peakHits = sum.Peak()
	res.ticks = sum.Ticks()
	res.meanAlive = sum.MeanAlive()
	return res
}

// sweep runs every parameter set through a fixed pool of workers and returns
// the results ranked by total hits.
func sweep(base scenario.Scenario, sets []sweepParams, workers int) []sweepResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	jobs := make(chan sweepParams)
	results := make(chan sweepResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				results <- runSweepScenario(base, p)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, p := range sets {
			jobs <- p
		}
		close(jobs)
	}()

	var all []sweepResult
	for res := range results {
		all = append(all, res)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].total != all[j].total {
			return all[i].total > all[j].total
		}
		if all[i].params.maxBounces != all[j].params.maxBounces {
			return all[i].params.maxBounces < all[j].params.maxBounces
		}
		return all[i].params.coneAngle < all[j].params.coneAngle
	})
	return all
}

func (s *sweepCmd) Run() error {
	base, err := loadScenario(s.Scenario, s.Set)
	if err != nil {
		return err
	}
	sets := sweepGrid(s.Bounces, s.Cone)
	if len(sets) == 0 {
		return fmt.Errorf("empty sweep: need at least one bounce and one cone value")
	}
	log.Printf("sweeping %d parameter sets (%d ticks each)", len(sets), base.Ticks)

	start := time.Now()
	all := sweep(base, sets, s.Workers)
	for _, res := range all {
		if res.err != nil {
			return fmt.Errorf("%s: %w", res.params, res.err)
		}
	}
	log.Printf("sweep finished in %s", time.Since(start).Round(time.Millisecond))

	top := s.Top
	if top <= 0 || top > len(all) {
		top = len(all)
	}
	fmt.Printf("Top %d by total hits:\n", top)
	for i, res := range all[:top] {
		fmt.Printf("%2d. %s total=%d peak=%d@%d ticks=%d mean_alive=%.1f per_receiver=%s\n",
			i+1, res.params, res.total, res.peakHits, res.peakTick, res.ticks, res.meanAlive, formatInts(res.perRecv))
	}
	return nil
}

func formatInts(v []int) string {
	out := "["
	for i, n := range v {
		if i > 0 {
			out += " "
		}
		out += strconv.Itoa(n)
	}
	return out + "]"
}
