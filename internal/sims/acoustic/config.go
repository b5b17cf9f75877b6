package acoustic

import (
	"strconv"

	"quelea/pkg/acoustics"
)

// Params holds the tunable room, source and receiver settings.
type Params struct {
	RoomWidth   float64
	RoomDepth   float64
	RoomHeight  float64
	OpenCeiling bool

	EmitterHeight float64
	Frequency     float64
	Count         int
	MaxBounces    int
	Cone          bool
	ConeAngle     float64 // degrees
	RotationX     float64 // degrees
	RotationY     float64 // degrees
	Speed         float64

	Receivers      int
	ReceiverRing   float64 // fraction of the half-width
	ReceiverRadius float64
	ReceiverHeight float64

	Loop    bool
	Fade    int
	Splat   int
	Workers int
}

// Config controls the footprint dimensions and the initial seed.
type Config struct {
	Width  int
	Height int

	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  160,
		Height: 160,
		Seed:   1,
		Params: Params{
			RoomWidth:      20,
			RoomDepth:      20,
			RoomHeight:     10,
			EmitterHeight:  2,
			Frequency:      440,
			Count:          400,
			MaxBounces:     10,
			ConeAngle:      30,
			Speed:          acoustics.DefaultSpeed,
			Receivers:      3,
			ReceiverRing:   0.5,
			ReceiverRadius: 1,
			ReceiverHeight: 2,
			Loop:           true,
			Fade:           6,
			Splat:          48,
			Workers:        1,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	positive := func(key string, dst *float64) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
				*dst = parsed
			}
		}
	}
	positive("room_width", &c.Params.RoomWidth)
	positive("room_depth", &c.Params.RoomDepth)
	positive("room_height", &c.Params.RoomHeight)
	positive("frequency", &c.Params.Frequency)
	positive("cone_angle", &c.Params.ConeAngle)
	positive("speed", &c.Params.Speed)
	positive("receiver_ring", &c.Params.ReceiverRing)
	positive("receiver_radius", &c.Params.ReceiverRadius)
	positive("receiver_height", &c.Params.ReceiverHeight)
	if v, ok := cfg["emitter_height"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.EmitterHeight = parsed
		}
	}
	if v, ok := cfg["rotation_x"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.RotationX = parsed
		}
	}
	if v, ok := cfg["rotation_y"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.RotationY = parsed
		}
	}
	nonNegative := func(key string, dst *int) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
				*dst = parsed
			}
		}
	}
	nonNegative("count", &c.Params.Count)
	nonNegative("max_bounces", &c.Params.MaxBounces)
	nonNegative("receivers", &c.Params.Receivers)
	nonNegative("fade", &c.Params.Fade)
	nonNegative("splat", &c.Params.Splat)
	nonNegative("workers", &c.Params.Workers)
	flag := func(key string, dst *bool) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseBool(v); err == nil {
				*dst = parsed
			}
		}
	}
	flag("open_ceiling", &c.Params.OpenCeiling)
	flag("cone", &c.Params.Cone)
	flag("loop", &c.Params.Loop)
	if c.Params.EmitterHeight > c.Params.RoomHeight {
		c.Params.EmitterHeight = c.Params.RoomHeight / 2
	}
	return c
}
