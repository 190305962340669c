package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ringside-tui/ringside/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestSoloKeyMap(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"w", runeKey('w'), core.ActionUp},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"s", runeKey('s'), core.ActionDown},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"d", runeKey('d'), core.ActionRight},
		{"punch", runeKey('f'), core.ActionPunch},
		{"kick", runeKey('v'), core.ActionKick},
		{"block", runeKey('b'), core.ActionBlock},
		{"pause", runeKey('p'), core.ActionPause},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"restart", runeKey('r'), core.ActionRestart},
		{"unbound", runeKey('z'), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player, action, quit := km.MapKey(tt.msg)
			if quit {
				t.Fatal("unexpected quit")
			}
			if action != tt.want {
				t.Errorf("action = %v, want %v", action, tt.want)
			}
			if player != core.Player1 {
				t.Errorf("player = %v, want P1", player)
			}
		})
	}
}

func TestDuelKeyMapSplitsPlayers(t *testing.T) {
	km := NewDuelKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		player core.PlayerID
		action core.Action
	}{
		{runeKey('a'), core.Player1, core.ActionLeft},
		{runeKey('f'), core.Player1, core.ActionPunch},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.Player2, core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyDown}, core.Player2, core.ActionDown},
		{runeKey('k'), core.Player2, core.ActionPunch},
		{runeKey('l'), core.Player2, core.ActionKick},
		{runeKey('j'), core.Player2, core.ActionBlock},
	}

	for _, tt := range tests {
		player, action, _ := km.MapKey(tt.msg)
		if player != tt.player || action != tt.action {
			t.Errorf("%q -> %v %v, want %v %v", tt.msg.String(), player, action, tt.player, tt.action)
		}
	}
}

func TestKeyMapperQuit(t *testing.T) {
	km := NewKeyMapper()
	for _, msg := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyCtrlC}} {
		if _, _, quit := km.MapKey(msg); !quit {
			t.Errorf("%q should quit", msg.String())
		}
	}
}

func TestMapKeyToMultiFrame(t *testing.T) {
	km := NewDuelKeyMapper()
	frame := core.NewMultiInputFrame()

	km.MapKeyToMultiFrame(runeKey('f'), &frame)
	km.MapKeyToMultiFrame(runeKey('j'), &frame)

	if !frame.Player1().Has(core.ActionPunch) {
		t.Error("P1 should have punched")
	}
	if !frame.Player2().Has(core.ActionBlock) {
		t.Error("P2 should be blocking")
	}
	if frame.Player1().Has(core.ActionBlock) {
		t.Error("J belongs to P2")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyRight}, MenuActionRight},
		{runeKey('h'), MenuActionLeft},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("%q -> %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestKeyMapHelp(t *testing.T) {
	if got := len(SoloKeyMap().FullHelp()); got != 2 {
		t.Errorf("solo help groups = %d, want 2", got)
	}
	if got := len(DuelKeyMap().FullHelp()); got != 3 {
		t.Errorf("duel help groups = %d, want 3", got)
	}
}
