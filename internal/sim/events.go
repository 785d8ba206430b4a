package sim

import "github.com/vovakirdan/moofield/internal/core"

// EventKind classifies a notification emitted during a tick.
type EventKind uint8

const (
	EventDamage   EventKind = iota // Amount dealt at Pos
	EventHeal                      // Amount restored at Pos
	EventGold                      // Gold gained
	EventXP                        // XP gained
	EventResource                  // Material gathered; Text holds the material
	EventAnnounce                  // Notable message
	EventKillFeed                  // Ordinary kill line
	EventNotice                    // Rejected action
	EventAgeUp                     // Amount holds the new age
	EventUnlock                    // Text holds the unlocked id
	EventDeath                     // Terminal
)

func (k EventKind) String() string {
	switch k {
	case EventDamage:
		return "damage"
	case EventHeal:
		return "heal"
	case EventGold:
		return "gold"
	case EventXP:
		return "xp"
	case EventResource:
		return "resource"
	case EventAnnounce:
		return "announce"
	case EventKillFeed:
		return "killfeed"
	case EventNotice:
		return "notice"
	case EventAgeUp:
		return "ageup"
	case EventUnlock:
		return "unlock"
	case EventDeath:
		return "death"
	default:
		return "unknown"
	}
}

// Event is a (kind, payload) notification. Display lifetime belongs to the UI.
type Event struct {
	Kind   EventKind
	Pos    core.Vec2
	Amount float64
	Text   string
	Target EntityID
}

func (w *World) emit(e Event) {
	w.events = append(w.events, e)
}

func (w *World) notice(text string) {
	w.emit(Event{Kind: EventNotice, Pos: w.player.Pos, Text: text})
	w.log.Debug("action rejected", "reason", text)
}

func (w *World) announce(text string) {
	w.emit(Event{Kind: EventAnnounce, Text: text})
}

// DrainEvents returns the events accumulated since the last call and clears the buffer.
func (w *World) DrainEvents() []Event {
	out := w.events
	w.events = nil
	return out
}
