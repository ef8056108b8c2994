package report

// State is a step of one report attempt.
type State int

const (
	Idle State = iota
	FurnitureDrawn
	Capturing
	Composing
	Exported
	Failed
)

var stateNames = [...]string{
	Idle:           "idle",
	FurnitureDrawn: "furniture_drawn",
	Capturing:      "capturing",
	Composing:      "composing",
	Exported:       "exported",
	Failed:         "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Exported || s == Failed
}

var transitions = map[State][]State{
	Idle:           {FurnitureDrawn},
	FurnitureDrawn: {Capturing},
	Capturing:      {Composing, Failed},
	Composing:      {Exported, Failed},
}

// CanTransition reports whether to directly follows s.
func (s State) CanTransition(to State) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
