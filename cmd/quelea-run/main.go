// Command quelea-run runs acoustic particle scenarios headlessly.
package main

import (
	"github.com/alecthomas/kong"
)

type cli struct {
	Run   runCmd   `cmd:"" help:"Run a scenario once and print a summary."`
	Sweep sweepCmd `cmd:"" help:"Run a scenario over a grid of max bounces and cone angles."`
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("quelea-run"),
		kong.Description("Headless runner for particle-based room acoustics scenarios."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
