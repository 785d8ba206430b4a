package core

// Action represents a discrete, one-shot command, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUse            // Place / consume / attack with the active slot
	ActionDash           // Dash toward the aim point (dash-capable gear only)
	ActionCharge         // Bull charge; held like movement
	ActionShop           // Open or close the gear shop panel
	ActionUp             // Panel cursor up
	ActionDown           // Panel cursor down
	ActionConfirm        // Confirm selection in a panel
	ActionBack           // Close the open panel
	ActionRestart        // Start a new session after death
	ActionQuit           // Exit the session
	ActionPause          // Pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUse:
		return "Use"
	case ActionDash:
		return "Dash"
	case ActionCharge:
		return "Charge"
	case ActionShop:
		return "Shop"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// SlotCount is the number of toolbar slots.
const SlotCount = 8

// Intent is the input sampled once per tick and handed to the simulation.
type Intent struct {
	// MoveX and MoveY are each in {-1, 0, 1}.
	MoveX, MoveY int

	// Aim is the aim target in world coordinates.
	Aim Vec2

	// ActionHeld is the continuous "fire" state used for auto-fire.
	ActionHeld bool

	// Slot selects the active toolbar slot (1..SlotCount); 0 leaves it unchanged.
	Slot int

	// Actions holds the one-shot triggers for this tick.
	Actions map[Action]bool
}

// NewIntent creates an empty intent.
func NewIntent() Intent {
	return Intent{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this tick.
func (in *Intent) Set(a Action) {
	if in.Actions == nil {
		in.Actions = make(map[Action]bool)
	}
	in.Actions[a] = true
}

// Has returns true if the given action was triggered this tick.
func (in Intent) Has(a Action) bool {
	if in.Actions == nil {
		return false
	}
	return in.Actions[a]
}

// Move returns the movement axis as a vector (not normalized).
func (in Intent) Move() Vec2 {
	return Vec2{X: float64(clampAxis(in.MoveX)), Y: float64(clampAxis(in.MoveY))}
}

// Clear resets the one-shot triggers and slot selection for the next tick.
// Movement, aim and the held flag are left alone; the platform owns their lifetime.
func (in *Intent) Clear() {
	for k := range in.Actions {
		delete(in.Actions, k)
	}
	in.Slot = 0
}

// Clone creates a copy of this intent.
func (in Intent) Clone() Intent {
	clone := in
	clone.Actions = make(map[Action]bool, len(in.Actions))
	for k, v := range in.Actions {
		clone.Actions[k] = v
	}
	return clone
}

func clampAxis(v int) int {
	return Clamp(v, -1, 1)
}
