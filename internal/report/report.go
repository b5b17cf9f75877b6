// Package report records per-tick receiver counts and summarises a run.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"quelea/pkg/acoustics"

	"gonum.org/v1/gonum/floats"
)

// TickLog writes one CSV row per tick.
type TickLog struct {
	w     *csv.Writer
	names []string
}

// NewTickLog writes the header row for the named receivers.
func NewTickLog(w io.Writer, names []string) (*TickLog, error) {
	l := &TickLog{w: csv.NewWriter(w), names: names}
	header := append([]string{"tick", "alive", "moved", "tick_total", "total"}, names...)
	if err := l.w.Write(header); err != nil {
		return nil, err
	}
	return l, nil
}

// Record appends a row. Receiver columns follow the simulation's hit policy.
func (l *TickLog) Record(tick int, res acoustics.TickResult) error {
	row := []string{
		strconv.Itoa(tick),
		strconv.Itoa(len(res.Survivors)),
		strconv.Itoa(len(res.Paths)),
		strconv.Itoa(res.TickTotal),
		strconv.Itoa(res.Total),
	}
	for i := range l.names {
		h := 0
		if i < len(res.Hits) {
			h = res.Hits[i]
		}
		row = append(row, strconv.Itoa(h))
	}
	return l.w.Write(row)
}

// Flush flushes buffered rows and reports any write error.
func (l *TickLog) Flush() error {
	l.w.Flush()
	return l.w.Error()
}

// Summary accumulates per-tick series for a run.
type Summary struct {
	Names []string

	alive  []float64
	totals []float64
	hits   [][]float64
}

// NewSummary returns an empty summary for the named receivers.
func NewSummary(names []string) *Summary {
	return &Summary{Names: names, hits: make([][]float64, len(names))}
}

// Add records one tick using its per-tick counts.
func (s *Summary) Add(res acoustics.TickResult) {
	s.alive = append(s.alive, float64(len(res.Survivors)))
	s.totals = append(s.totals, float64(res.TickTotal))
	for i := range s.hits {
		h := 0
		if i < len(res.TickHits) {
			h = res.TickHits[i]
		}
		s.hits[i] = append(s.hits[i], float64(h))
	}
}

// Ticks returns the number of recorded ticks.
func (s *Summary) Ticks() int { return len(s.totals) }

// Total returns the number of hits over the whole run.
func (s *Summary) Total() int { return int(floats.Sum(s.totals)) }

// ReceiverTotals returns the run hits per receiver.
func (s *Summary) ReceiverTotals() []int {
	out := make([]int, len(s.hits))
	for i, series := range s.hits {
		out[i] = int(floats.Sum(series))
	}
	return out
}

// Peak returns the 1-based tick with the most hits and its count. It returns
// zeros for an empty run.
func (s *Summary) Peak() (tick, hits int) {
	if len(s.totals) == 0 {
		return 0, 0
	}
	i := floats.MaxIdx(s.totals)
	return i + 1, int(s.totals[i])
}

// MeanAlive returns the average surviving population per tick.
func (s *Summary) MeanAlive() float64 {
	if len(s.alive) == 0 {
		return 0
	}
	return floats.Sum(s.alive) / float64(len(s.alive))
}

// FirstArrival returns the first 1-based tick at which receiver i was hit, or
// zero when it never was.
func (s *Summary) FirstArrival(i int) int {
	if i < 0 || i >= len(s.hits) {
		return 0
	}
	for t, h := range s.hits[i] {
		if h > 0 {
			return t + 1
		}
	}
	return 0
}

// Print writes a human-readable table.
func (s *Summary) Print(w io.Writer) error {
	tick, peak := s.Peak()
	if _, err := fmt.Fprintf(w, "ticks=%d total=%d peak=%d@%d mean_alive=%.1f\n",
		s.Ticks(), s.Total(), peak, tick, s.MeanAlive()); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "receiver\thits\tfirst")
	for i, total := range s.ReceiverTotals() {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", s.Names[i], total, s.FirstArrival(i))
	}
	return tw.Flush()
}
