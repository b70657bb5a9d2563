package dynamics

// SpeedMode selects an attack/release preset.
type SpeedMode int

const (
	// SpeedFast reacts in 5 ms and recovers in 80 ms.
	SpeedFast SpeedMode = iota
	// SpeedSlow reacts in 20 ms and recovers in 200 ms.
	SpeedSlow
)

// Times returns the preset attack and release in milliseconds.
func (m SpeedMode) Times() (attackMs, releaseMs float64) {
	switch m {
	case SpeedSlow:
		return 20, 200
	default:
		return 5, 80
	}
}

func (m SpeedMode) String() string {
	switch m {
	case SpeedSlow:
		return "slow"
	default:
		return "fast"
	}
}

// ParseSpeedMode maps "fast"/"slow" to a SpeedMode.
func ParseSpeedMode(s string) (SpeedMode, bool) {
	switch s {
	case "fast":
		return SpeedFast, true
	case "slow":
		return SpeedSlow, true
	}
	return SpeedFast, false
}
