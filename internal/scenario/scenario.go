// Package scenario loads acoustic simulation setups from TOML files.
//
// A scenario file only needs the keys it changes; everything else keeps the
// values from Default.
//
//	seed = 7
//	ticks = 300
//	accumulate = "run"
//
//	[room]
//	kind = "open"
//	min = [-10.0, -10.0, 0.0]
//	max = [10.0, 10.0, 8.0]
//
//	[emitter]
//	origin = [0.0, 0.0, 2.0]
//	mode = "cone"
//	cone_angle = 25.0
//
//	[[receiver]]
//	name = "stage"
//	base = [4.0, 0.0, 0.0]
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quelea/pkg/acoustics"
	"quelea/pkg/environment"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl64"
)

// Room kinds.
const (
	RoomClosed = "closed"
	RoomOpen   = "open"
	RoomPlane  = "plane"
	RoomMesh   = "mesh"
	RoomNone   = "none"
)

// Hit accumulation policies.
const (
	AccumulateTick = "tick"
	AccumulateRun  = "run"
)

// Room selects the environment geometry.
type Room struct {
	Kind string     `toml:"kind"`
	Min  [3]float64 `toml:"min"`
	Max  [3]float64 `toml:"max"`
	// Size is the side length of a plane room, centered between Min and Max.
	Size float64 `toml:"size"`
	// Path is an OBJ file, relative to the scenario file.
	Path string `toml:"path"`
}

// Emitter mirrors acoustics.Emitter with angles in degrees.
type Emitter struct {
	Origin     [3]float64 `toml:"origin"`
	Frequency  float64    `toml:"frequency"`
	Count      int        `toml:"count"`
	MaxBounces int        `toml:"max_bounces"`
	Mode       string     `toml:"mode"`
	ConeAngle  float64    `toml:"cone_angle"`
	RotationX  float64    `toml:"rotation_x"`
	RotationY  float64    `toml:"rotation_y"`
	Speed      float64    `toml:"speed"`
}

// Receiver is one detection cylinder.
type Receiver struct {
	Name   string     `toml:"name"`
	Base   [3]float64 `toml:"base"`
	Radius float64    `toml:"radius"`
	Height float64    `toml:"height"`
}

const (
	defaultReceiverRadius = 1.0
	defaultReceiverHeight = 2.0
)

// Scenario is a complete run description.
type Scenario struct {
	Name       string     `toml:"name"`
	Seed       int64      `toml:"seed"`
	Ticks      int        `toml:"ticks"`
	Workers    int        `toml:"workers"`
	Accumulate string     `toml:"accumulate"`
	Room       Room       `toml:"room"`
	Emitter    Emitter    `toml:"emitter"`
	Receivers  []Receiver `toml:"receiver"`

	dir string
}

// Default returns a closed 20x20x10 room with a centered isotropic source and
// one receiver.
func Default() Scenario {
	return Scenario{
		Name:       "default",
		Seed:       1,
		Ticks:      acoustics.InitialLifespan,
		Workers:    1,
		Accumulate: AccumulateTick,
		Room: Room{
			Kind: RoomClosed,
			Min:  [3]float64{-10, -10, 0},
			Max:  [3]float64{10, 10, 10},
			Size: 20,
		},
		Emitter: Emitter{
			Origin:     [3]float64{0, 0, 2},
			Frequency:  440,
			Count:      100,
			MaxBounces: 10,
			Mode:       acoustics.Isotropic.String(),
			ConeAngle:  30,
			Speed:      acoustics.DefaultSpeed,
		},
		Receivers: []Receiver{
			{Name: "r1", Base: [3]float64{5, 0, 0}, Radius: defaultReceiverRadius, Height: defaultReceiverHeight},
		},
	}
}

// Load decodes the TOML file at path over Default and validates the result.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, err
	}
	s, err := decode(string(data), true)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// Decode parses TOML text over Default. Unknown keys are ignored and relative
// mesh paths resolve against the working directory.
func Decode(data string) (Scenario, error) {
	return decode(data, false)
}

func decode(data string, strict bool) (Scenario, error) {
	s := Default()
	defaults := s.Receivers
	s.Receivers = nil
	md, err := toml.Decode(data, &s)
	if err != nil {
		return Scenario{}, err
	}
	if undecoded := md.Undecoded(); strict && len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Scenario{}, fmt.Errorf("unknown keys %s", strings.Join(keys, ", "))
	}
	if !md.IsDefined("receiver") {
		s.Receivers = defaults
	}
	for i := range s.Receivers {
		r := &s.Receivers[i]
		if r.Radius == 0 && r.Height == 0 {
			r.Radius, r.Height = defaultReceiverRadius, defaultReceiverHeight
		}
	}
	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

var (
	ErrUnknownRoom       = errors.New("unknown room kind")
	ErrUnknownMode       = errors.New("unknown emission mode")
	ErrUnknownAccumulate = errors.New("unknown accumulate policy")
)

// Validate checks enumerations and run length. Receiver and emitter ranges are
// passed through unchecked.
func (s Scenario) Validate() error {
	switch s.Room.Kind {
	case RoomClosed, RoomOpen, RoomPlane, RoomNone:
	case RoomMesh:
		if s.Room.Path == "" {
			return errors.New("mesh room needs a path")
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownRoom, s.Room.Kind)
	}
	if _, err := parseMode(s.Emitter.Mode); err != nil {
		return err
	}
	if _, err := parsePolicy(s.Accumulate); err != nil {
		return err
	}
	if s.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", s.Ticks)
	}
	return nil
}

func parseMode(v string) (acoustics.EmissionMode, error) {
	switch strings.ToLower(v) {
	case "", acoustics.Isotropic.String():
		return acoustics.Isotropic, nil
	case acoustics.Cone.String():
		return acoustics.Cone, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrUnknownMode, v)
	}
}

func parsePolicy(v string) (acoustics.HitPolicy, error) {
	switch strings.ToLower(v) {
	case "", AccumulateTick:
		return acoustics.PerTick, nil
	case AccumulateRun:
		return acoustics.Cumulative, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrUnknownAccumulate, v)
	}
}

// Setup is a scenario turned into engine values.
type Setup struct {
	Env       environment.Environment
	Receivers []acoustics.Receiver
	Names     []string
	Emitter   acoustics.Emitter
	Policy    acoustics.HitPolicy
}

// Simulation returns a driver configured from the setup.
func (st Setup) Simulation(workers int) *acoustics.Simulation {
	sim := acoustics.NewSimulation(st.Env, st.Receivers)
	sim.Policy = st.Policy
	sim.Workers = workers
	return sim
}

// Build resolves geometry and converts units. A "none" room yields a nil
// environment.
func (s Scenario) Build() (Setup, error) {
	var st Setup
	mode, err := parseMode(s.Emitter.Mode)
	if err != nil {
		return st, err
	}
	policy, err := parsePolicy(s.Accumulate)
	if err != nil {
		return st, err
	}
	env, err := s.buildRoom()
	if err != nil {
		return st, err
	}
	if env != nil {
		st.Env = env
	}
	st.Policy = policy
	st.Emitter = acoustics.Emitter{
		Origin:     mgl64.Vec3(s.Emitter.Origin),
		Frequency:  s.Emitter.Frequency,
		Count:      s.Emitter.Count,
		MaxBounces: s.Emitter.MaxBounces,
		Mode:       mode,
		ConeAngle:  mgl64.DegToRad(s.Emitter.ConeAngle),
		RotationX:  mgl64.DegToRad(s.Emitter.RotationX),
		RotationY:  mgl64.DegToRad(s.Emitter.RotationY),
		Speed:      s.Emitter.Speed,
	}
	for i, r := range s.Receivers {
		st.Receivers = append(st.Receivers, acoustics.NewReceiver(mgl64.Vec3(r.Base), r.Radius, r.Height))
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("r%d", i+1)
		}
		st.Names = append(st.Names, name)
	}
	return st, nil
}

func (s Scenario) buildRoom() (*environment.Mesh, error) {
	lo, hi := mgl64.Vec3(s.Room.Min), mgl64.Vec3(s.Room.Max)
	switch s.Room.Kind {
	case RoomClosed:
		return environment.NewRoom(lo, hi), nil
	case RoomOpen:
		return environment.NewOpenRoom(lo, hi), nil
	case RoomPlane:
		center := lo.Add(hi).Mul(0.5)
		center[2] = lo.Z()
		return environment.NewPlane(center, s.Room.Size), nil
	case RoomMesh:
		path := s.Room.Path
		if !filepath.IsAbs(path) && s.dir != "" {
			path = filepath.Join(s.dir, path)
		}
		return environment.Load(path)
	case RoomNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownRoom, s.Room.Kind)
	}
}
