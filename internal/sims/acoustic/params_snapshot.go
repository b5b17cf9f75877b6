package acoustic

import (
	"fmt"
	"strconv"

	"quelea/internal/core"
)

func (w *World) Parameters() core.ParameterSnapshot {
	p := w.cfg.Params
	hits := make([]core.Parameter, 0, len(w.receivers)+1)
	hits = append(hits, intParam("tick_hits", "Hits this tick", w.last.TickTotal))
	for i := range w.receivers {
		n := 0
		if i < len(w.hits) {
			n = w.hits[i]
		}
		hits = append(hits, intParam(fmt.Sprintf("hits_r%d", i+1), fmt.Sprintf("Receiver %d", i+1), n))
	}
	groups := []core.ParameterGroup{
		{
			Name: "Run",
			Params: []core.Parameter{
				intParam("tick", "Tick", w.tick),
				intParam("alive", "Alive", len(w.particles)),
				intParam("emissions", "Emissions", w.emissions),
				int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{Name: "Hits", Params: hits},
		{
			Name: "Room",
			Params: []core.Parameter{
				floatParam("room_width", "Room width", p.RoomWidth),
				floatParam("room_depth", "Room depth", p.RoomDepth),
				floatParam("room_height", "Room height", p.RoomHeight),
				boolParam("open_ceiling", "Open ceiling", p.OpenCeiling),
			},
		},
		{
			Name: "Emitter",
			Params: []core.Parameter{
				intParam("count", "Particles", p.Count),
				intParam("max_bounces", "Max bounces", p.MaxBounces),
				boolParam("cone", "Cone emission", p.Cone),
				floatParam("cone_angle", "Cone angle", p.ConeAngle),
				floatParam("rotation_x", "Rotation X", p.RotationX),
				floatParam("rotation_y", "Rotation Y", p.RotationY),
				floatParam("speed", "Speed", p.Speed),
				floatParam("emitter_height", "Emitter height", p.EmitterHeight),
			},
		},
		{
			Name: "Receivers",
			Params: []core.Parameter{
				intParam("receivers", "Receivers", p.Receivers),
				floatParam("receiver_ring", "Ring", p.ReceiverRing),
				floatParam("receiver_radius", "Radius", p.ReceiverRadius),
				floatParam("receiver_height", "Height", p.ReceiverHeight),
			},
		},
		{
			Name: "Display",
			Params: []core.Parameter{
				intParam("fade", "Footprint fade", p.Fade),
				boolParam("loop", "Loop emission", p.Loop),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable settings.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "count", Label: "Particles", Type: core.ParamTypeInt, Step: 50, Min: 1, Max: 5000, HasMin: true, HasMax: true},
		{Key: "max_bounces", Label: "Max bounces", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 100, HasMin: true, HasMax: true},
		{Key: "cone_angle", Label: "Cone angle", Type: core.ParamTypeFloat, Step: 5, Min: 5, Max: 180, HasMin: true, HasMax: true},
		{Key: "rotation_x", Label: "Rotation X", Type: core.ParamTypeFloat, Step: 15, Min: -180, Max: 180, HasMin: true, HasMax: true},
		{Key: "rotation_y", Label: "Rotation Y", Type: core.ParamTypeFloat, Step: 15, Min: -180, Max: 180, HasMin: true, HasMax: true},
		{Key: "speed", Label: "Speed", Type: core.ParamTypeFloat, Step: 0.25, Min: 0.25, Max: 5, HasMin: true, HasMax: true},
		{Key: "receivers", Label: "Receivers", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 8, HasMin: true, HasMax: true},
		{Key: "receiver_radius", Label: "Receiver radius", Type: core.ParamTypeFloat, Step: 0.25, Min: 0.25, Max: 5, HasMin: true, HasMax: true},
		{Key: "fade", Label: "Footprint fade", Type: core.ParamTypeInt, Step: 2, Min: 0, Max: 64, HasMin: true, HasMax: true},
	}
}

func (w *World) control(key string) (core.ParameterControl, bool) {
	for _, c := range w.ParameterControls() {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// SetIntParameter updates an integer setting, clamped to its control bounds.
// Geometry changes apply immediately; emitter changes take effect on the next
// emission.
func (w *World) SetIntParameter(key string, value int) bool {
	ctrl, ok := w.control(key)
	if !ok || ctrl.Type != core.ParamTypeInt {
		return false
	}
	v := int(ctrl.Clamp(float64(value)))
	p := &w.cfg.Params
	switch key {
	case "count":
		p.Count = v
	case "max_bounces":
		p.MaxBounces = v
	case "receivers":
		p.Receivers = v
	case "fade":
		p.Fade = v
	default:
		return false
	}
	w.rebuild()
	return true
}

// SetFloatParameter updates a float setting, clamped to its control bounds.
func (w *World) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := w.control(key)
	if !ok || ctrl.Type != core.ParamTypeFloat {
		return false
	}
	v := ctrl.Clamp(value)
	p := &w.cfg.Params
	switch key {
	case "cone_angle":
		p.ConeAngle = v
	case "rotation_x":
		p.RotationX = v
	case "rotation_y":
		p.RotationY = v
	case "speed":
		p.Speed = v
	case "receiver_radius":
		p.ReceiverRadius = v
	default:
		return false
	}
	w.rebuild()
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}
