package scenario

import (
	"fmt"
	"strconv"
	"strings"
)

// Set applies a single key=value override using the TOML key names, with
// dotted section prefixes optional for emitter keys ("count" or
// "emitter.count").
func (s *Scenario) Set(key, value string) error {
	key = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(key)), "emitter.")
	value = strings.TrimSpace(value)
	var err error
	switch key {
	case "seed":
		s.Seed, err = strconv.ParseInt(value, 10, 64)
	case "ticks":
		s.Ticks, err = strconv.Atoi(value)
	case "workers":
		s.Workers, err = strconv.Atoi(value)
	case "accumulate":
		_, err = parsePolicy(value)
		s.Accumulate = value
	case "room", "room.kind":
		s.Room.Kind = value
	case "room.path":
		s.Room.Path = value
	case "frequency":
		s.Emitter.Frequency, err = strconv.ParseFloat(value, 64)
	case "count":
		s.Emitter.Count, err = strconv.Atoi(value)
	case "max_bounces":
		s.Emitter.MaxBounces, err = strconv.Atoi(value)
	case "mode":
		_, err = parseMode(value)
		s.Emitter.Mode = value
	case "cone_angle":
		s.Emitter.ConeAngle, err = strconv.ParseFloat(value, 64)
	case "rotation_x":
		s.Emitter.RotationX, err = strconv.ParseFloat(value, 64)
	case "rotation_y":
		s.Emitter.RotationY, err = strconv.ParseFloat(value, 64)
	case "speed":
		s.Emitter.Speed, err = strconv.ParseFloat(value, 64)
	default:
		return fmt.Errorf("unknown override %q", key)
	}
	if err != nil {
		return fmt.Errorf("override %s=%s: %w", key, value, err)
	}
	return nil
}

// ApplyOverrides applies "key=value" pairs in order.
func (s *Scenario) ApplyOverrides(pairs []string) error {
	for _, kv := range pairs {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("override %q: expected key=value", kv)
		}
		if err := s.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}
