package domain

// Layer selects which key-map row a button index resolves against.
type Layer int

const (
	LayerBase Layer = iota
	LayerShifted
)

func (l Layer) Toggle() Layer {
	if l == LayerBase {
		return LayerShifted
	}
	return LayerBase
}

type ActionKind string

const (
	ActionToggleDefault ActionKind = "toggle_default"
	ActionStartSession  ActionKind = "start_session"
	ActionShowSummary   ActionKind = "show_summary"
	ActionShiftLayer    ActionKind = "shift_layer"
	ActionToggleSleep   ActionKind = "toggle_sleep_prevention"
)

// Action is what a resolved button press asks the tracker to do. Label,
// Color and LED carry the start_session payload and are zero otherwise.
type Action struct {
	Kind  ActionKind
	Label string
	Color Color
	LED   int
}
