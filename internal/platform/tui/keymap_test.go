package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/moofield/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestTranslate(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want KeyEvent
	}{
		{"w moves up", runeKey('w'), KeyEvent{Action: core.ActionUp, MoveY: -1}},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, KeyEvent{Action: core.ActionDown, MoveY: 1}},
		{"a moves left", runeKey('a'), KeyEvent{MoveX: -1}},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, KeyEvent{MoveX: 1}},
		{"space uses", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, KeyEvent{Action: core.ActionUse, Held: true}},
		{"f dashes", runeKey('f'), KeyEvent{Action: core.ActionDash}},
		{"shift arrow dashes with heading", tea.KeyMsg{Type: tea.KeyShiftLeft}, KeyEvent{Action: core.ActionDash, MoveX: -1}},
		{"c charges", runeKey('c'), KeyEvent{Action: core.ActionCharge}},
		{"slot 3", runeKey('3'), KeyEvent{Slot: 3}},
		{"slot 8", runeKey('8'), KeyEvent{Slot: 8}},
		{"e opens shop", runeKey('e'), KeyEvent{Action: core.ActionShop}},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, KeyEvent{Action: core.ActionConfirm}},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, KeyEvent{Action: core.ActionBack}},
		{"p pauses", runeKey('p'), KeyEvent{Action: core.ActionPause}},
		{"r restarts", runeKey('r'), KeyEvent{Action: core.ActionRestart}},
		{"q quits", runeKey('q'), KeyEvent{Action: core.ActionQuit, Quit: true}},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, KeyEvent{Action: core.ActionQuit, Quit: true}},
		{"ctrl+s screenshot", tea.KeyMsg{Type: tea.KeyCtrlS}, KeyEvent{Shot: true}},
		{"? help", runeKey('?'), KeyEvent{Help: true}},
		{"unbound", runeKey('z'), KeyEvent{}},
		{"slot 9 unbound", runeKey('9'), KeyEvent{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.Translate(tt.msg); got != tt.want {
				t.Errorf("Translate(%q) = %+v, want %+v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionHistory},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}
	for _, tt := range tests {
		if got := MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestFullHelpCoversBindings(t *testing.T) {
	km := DefaultKeyMap()
	n := 0
	for _, col := range km.FullHelp() {
		n += len(col)
	}
	if n != 16 {
		t.Errorf("FullHelp lists %d bindings, want 16", n)
	}
}
