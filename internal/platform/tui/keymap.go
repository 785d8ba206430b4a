package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/moofield/internal/core"
)

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Use        key.Binding
	Dash       key.Binding
	Charge     key.Binding
	Slot       key.Binding
	Shop       key.Binding
	Confirm    key.Binding
	Back       key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Use, k.Slot, k.Shop, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Use, k.Dash, k.Charge, k.Slot},
		{k.Shop, k.Confirm, k.Back, k.Pause},
		{k.Restart, k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("w/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/↓", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/←", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/→", "move right"),
		),
		Use: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space/click", "use"),
		),
		Dash: key.NewBinding(
			key.WithKeys("f", "shift+up", "shift+down", "shift+left", "shift+right"),
			key.WithHelp("f", "dash"),
		),
		Charge: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "charge"),
		),
		Slot: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"),
			key.WithHelp("1-8", "slot"),
		),
		Shop: key.NewBinding(
			key.WithKeys("e", "tab"),
			key.WithHelp("e", "shop"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyEvent is what a single key press means to the session.
type KeyEvent struct {
	Action core.Action // One-shot trigger, ActionNone if the key is a movement key
	MoveX  int         // Movement axis pressed, -1/0/1
	MoveY  int
	Slot   int  // 1..8 when a slot key was pressed
	Held   bool // Key counts as holding the use action
	Quit   bool
	Shot   bool // Screenshot request
	Help   bool // Toggle full help
}

// Translate maps a key message to a KeyEvent.
// Up and down also drive panel cursors, so they emit both a move and an action.
func (k KeyMap) Translate(msg tea.KeyMsg) KeyEvent {
	switch {
	case key.Matches(msg, k.Quit):
		return KeyEvent{Action: core.ActionQuit, Quit: true}
	case key.Matches(msg, k.Screenshot):
		return KeyEvent{Shot: true}
	case key.Matches(msg, k.Help):
		return KeyEvent{Help: true}
	case key.Matches(msg, k.Dash):
		ev := KeyEvent{Action: core.ActionDash}
		switch msg.String() {
		case "shift+up":
			ev.MoveY = -1
		case "shift+down":
			ev.MoveY = 1
		case "shift+left":
			ev.MoveX = -1
		case "shift+right":
			ev.MoveX = 1
		}
		return ev
	case key.Matches(msg, k.Up):
		return KeyEvent{Action: core.ActionUp, MoveY: -1}
	case key.Matches(msg, k.Down):
		return KeyEvent{Action: core.ActionDown, MoveY: 1}
	case key.Matches(msg, k.Left):
		return KeyEvent{MoveX: -1}
	case key.Matches(msg, k.Right):
		return KeyEvent{MoveX: 1}
	case key.Matches(msg, k.Use):
		return KeyEvent{Action: core.ActionUse, Held: true}
	case key.Matches(msg, k.Charge):
		return KeyEvent{Action: core.ActionCharge}
	case key.Matches(msg, k.Slot):
		return KeyEvent{Slot: int(msg.String()[0] - '0')}
	case key.Matches(msg, k.Shop):
		return KeyEvent{Action: core.ActionShop}
	case key.Matches(msg, k.Confirm):
		return KeyEvent{Action: core.ActionConfirm}
	case key.Matches(msg, k.Back):
		return KeyEvent{Action: core.ActionBack}
	case key.Matches(msg, k.Pause):
		return KeyEvent{Action: core.ActionPause}
	case key.Matches(msg, k.Restart):
		return KeyEvent{Action: core.ActionRestart}
	}
	return KeyEvent{}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionHistory
	MenuActionQuit
)

// MapKeyToMenuAction translates a key message to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionHistory
	}
	return MenuActionNone
}
