package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ringside-tui/ringside/internal/core"
)

// CornerKeys are the fighting keys of one player.
type CornerKeys struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Punch key.Binding
	Kick  key.Binding
	Block key.Binding
}

// KeyMap holds every in-bout binding.
type KeyMap struct {
	P1 CornerKeys
	P2 CornerKeys // unbound in the solo layout

	Pause      key.Binding
	Restart    key.Binding
	Back       key.Binding
	Quit       key.Binding
	Screenshot key.Binding
}

// SoloKeyMap lets one player fight with either WASD or the arrow keys.
func SoloKeyMap() KeyMap {
	km := sharedKeys()
	km.P1 = CornerKeys{
		Up:    key.NewBinding(key.WithKeys("w", "up"), key.WithHelp("w/↑", "back")),
		Down:  key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("s/↓", "front")),
		Left:  key.NewBinding(key.WithKeys("a", "left"), key.WithHelp("a/←", "left")),
		Right: key.NewBinding(key.WithKeys("d", "right"), key.WithHelp("d/→", "right")),
		Punch: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "punch")),
		Kick:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "kick")),
		Block: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "block")),
	}
	return km
}

// DuelKeyMap splits the keyboard: WASD/F/V/B on the left, arrows/K/L/J on the right.
func DuelKeyMap() KeyMap {
	km := sharedKeys()
	km.P1 = CornerKeys{
		Up:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "P1 back")),
		Down:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "P1 front")),
		Left:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "P1 left")),
		Right: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "P1 right")),
		Punch: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "P1 punch")),
		Kick:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "P1 kick")),
		Block: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "P1 block")),
	}
	km.P2 = CornerKeys{
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "P2 back")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "P2 front")),
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "P2 left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "P2 right")),
		Punch: key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "P2 punch")),
		Kick:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "P2 kick")),
		Block: key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "P2 block")),
	}
	return km
}

func sharedKeys() KeyMap {
	return KeyMap{
		Pause:      key.NewBinding(key.WithKeys("p", "esc"), key.WithHelp("p/esc", "pause")),
		Restart:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rematch")),
		Back:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "menu")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Screenshot: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.P1.Punch, k.P1.Kick, k.P1.Block, k.Pause, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	groups := [][]key.Binding{cornerHelp(k.P1)}
	if k.P2.Punch.Enabled() {
		groups = append(groups, cornerHelp(k.P2))
	}
	return append(groups, []key.Binding{k.Pause, k.Restart, k.Back, k.Quit})
}

func cornerHelp(c CornerKeys) []key.Binding {
	return []key.Binding{c.Up, c.Down, c.Left, c.Right, c.Punch, c.Kick, c.Block}
}

type boundAction struct {
	player  core.PlayerID
	action  core.Action
	binding key.Binding
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	keys  KeyMap
	order []boundAction
}

// NewKeyMapper creates a key mapper with the solo layout.
func NewKeyMapper() *KeyMapper {
	return NewKeyMapperWith(SoloKeyMap())
}

// NewDuelKeyMapper creates a key mapper with the two-player layout.
func NewDuelKeyMapper() *KeyMapper {
	return NewKeyMapperWith(DuelKeyMap())
}

// NewKeyMapperWith creates a key mapper for a custom layout.
func NewKeyMapperWith(keys KeyMap) *KeyMapper {
	km := &KeyMapper{keys: keys}
	km.order = append(km.order, cornerActions(core.Player1, keys.P1)...)
	km.order = append(km.order, cornerActions(core.Player2, keys.P2)...)
	km.order = append(km.order,
		boundAction{core.Player1, core.ActionPause, keys.Pause},
		boundAction{core.Player1, core.ActionRestart, keys.Restart},
	)
	return km
}

func cornerActions(p core.PlayerID, c CornerKeys) []boundAction {
	return []boundAction{
		{p, core.ActionUp, c.Up},
		{p, core.ActionDown, c.Down},
		{p, core.ActionLeft, c.Left},
		{p, core.ActionRight, c.Right},
		{p, core.ActionPunch, c.Punch},
		{p, core.ActionKick, c.Kick},
		{p, core.ActionBlock, c.Block},
	}
}

// Keys returns the layout in use.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an action and the player who pressed it.
// Returns ActionNone for unbound keys and isQuit for a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (player core.PlayerID, action core.Action, isQuit bool) {
	if key.Matches(msg, km.keys.Quit) {
		return core.Player1, core.ActionQuit, true
	}
	for _, b := range km.order {
		if key.Matches(msg, b.binding) {
			return b.player, b.action, false
		}
	}
	return core.Player1, core.ActionNone, false
}

// IsBack reports whether the key asks to leave the bout. Only honoured while
// paused or after the final bell, since B also blocks.
func (km *KeyMapper) IsBack(msg tea.KeyMsg) bool {
	return key.Matches(msg, km.keys.Back)
}

// IsScreenshot reports whether the key asks for a screen dump.
func (km *KeyMapper) IsScreenshot(msg tea.KeyMsg) bool {
	return key.Matches(msg, km.keys.Screenshot)
}

// MapKeyToMultiFrame adds the key's action to the frame of whoever pressed it.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToMultiFrame(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	player, action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Add(player, action)
	}
	return isQuit
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
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
