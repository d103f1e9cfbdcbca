package race

import "derby/internal/core"

// Tuning holds the constants the race pacing was tuned against.
type Tuning struct {
	TrackScale   float64 // track length as a multiple of viewport width
	FinishMargin float64 // distance between finish line and track end

	BoostStep      float64
	MaxSpeed       float64
	PlayerDecay    float64
	PlayerMinSpeed float64

	AIChance   float64 // per-tick probability of resampling AI speed
	AIMinSpeed float64
	AIMaxSpeed float64

	FrameMs float64 // reference frame duration speeds are expressed against
}

// DefaultTuning returns the standard race constants.
func DefaultTuning() Tuning {
	return Tuning{
		TrackScale:     4,
		FinishMargin:   200,
		BoostStep:      1.7,
		MaxSpeed:       11,
		PlayerDecay:    0.99,
		PlayerMinSpeed: 2,
		AIChance:       0.015,
		AIMinSpeed:     3,
		AIMaxSpeed:     6,
		FrameMs:        16,
	}
}

// Parameters exposes the tuning as a displayable snapshot.
func (t Tuning) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Track",
			Params: []core.Parameter{
				core.IntParam("horses", "Horses", AgentCount),
				core.FloatParam("track_scale", "Track scale", t.TrackScale),
				core.FloatParam("finish_margin", "Finish margin", t.FinishMargin),
				core.FloatParam("frame_ms", "Reference frame (ms)", t.FrameMs),
			},
		},
		{
			Name: "Player",
			Params: []core.Parameter{
				core.FloatParam("boost_step", "Boost step", t.BoostStep),
				core.FloatParam("max_speed", "Max speed", t.MaxSpeed),
				core.FloatParam("player_decay", "Decay per tick", t.PlayerDecay),
				core.FloatParam("player_min_speed", "Min speed", t.PlayerMinSpeed),
			},
		},
		{
			Name: "AI",
			Params: []core.Parameter{
				core.FloatParam("ai_chance", "Resample chance", t.AIChance),
				core.FloatParam("ai_min_speed", "Min speed", t.AIMinSpeed),
				core.FloatParam("ai_max_speed", "Max speed", t.AIMaxSpeed),
			},
		},
	}}
}

func (t Tuning) withDefaults() Tuning {
	d := DefaultTuning()
	if t == (Tuning{}) {
		return d
	}
	if t.TrackScale <= 0 {
		t.TrackScale = d.TrackScale
	}
	if t.FinishMargin < 0 {
		t.FinishMargin = d.FinishMargin
	}
	if t.BoostStep <= 0 {
		t.BoostStep = d.BoostStep
	}
	if t.MaxSpeed <= 0 {
		t.MaxSpeed = d.MaxSpeed
	}
	if t.PlayerDecay <= 0 || t.PlayerDecay > 1 {
		t.PlayerDecay = d.PlayerDecay
	}
	if t.PlayerMinSpeed <= 0 {
		t.PlayerMinSpeed = d.PlayerMinSpeed
	}
	if t.PlayerMinSpeed > t.MaxSpeed {
		t.PlayerMinSpeed = t.MaxSpeed
	}
	if t.AIChance < 0 {
		t.AIChance = 0
	}
	if t.AIMaxSpeed <= 0 {
		t.AIMaxSpeed = d.AIMaxSpeed
	}
	if t.AIMinSpeed < 0 || t.AIMinSpeed > t.AIMaxSpeed {
		t.AIMinSpeed = d.AIMinSpeed
		if t.AIMinSpeed > t.AIMaxSpeed {
			t.AIMinSpeed = t.AIMaxSpeed
		}
	}
	if t.FrameMs <= 0 {
		t.FrameMs = d.FrameMs
	}
	return t
}
