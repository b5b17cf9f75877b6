package app

import (
	"flag"
	"fmt"
	"strings"
)

// Config holds the viewer command-line options.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	Seed     int64
	HUDWidth int
	Params   Params
}

// Params collects repeatable key=value flags passed to the sim factory.
type Params map[string]string

func (p Params) String() string {
	parts := make([]string, 0, len(p))
	for k, v := range p {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

// Set parses one key=value pair.
func (p Params) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	p[strings.TrimSpace(key)] = strings.TrimSpace(val)
	return nil
}

// NewConfig returns the default viewer options.
func NewConfig() *Config {
	return &Config{
		Sim:      "acoustic",
		Scale:    4,
		TPS:      30,
		Seed:     1,
		HUDWidth: 280,
		Params:   Params{},
	}
}

// Bind registers the options on fs.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per footprint cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "emission seed")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
	fs.Var(c.Params, "set", "sim parameter in key=value form (repeatable)")
}
