package core

// Action is a semantic input, abstracted from physical keys.
//
// Terminals only report key presses, so held inputs (movement and block)
// come in begin/release pairs. The platform synthesises the release actions.
type Action int

const (
	ActionNone Action = iota

	ActionUp    // W, Up arrow - step toward the back of the ring
	ActionDown  // S, Down arrow - step toward the front of the ring
	ActionLeft  // A, Left arrow
	ActionRight // D, Right arrow
	ActionBlock // B - raise guard

	ActionReleaseUp
	ActionReleaseDown
	ActionReleaseLeft
	ActionReleaseRight
	ActionReleaseBlock

	ActionPunch // F
	ActionKick  // V

	ActionConfirm // Enter - confirm selection in menu
	ActionBack    // Esc - go back to menu
	ActionRestart // R key - restart after game over
	ActionQuit    // Q, Ctrl+C - exit game/session
	ActionPause   // P, Escape - pause/unpause game
)

var actionNames = map[Action]string{
	ActionNone:         "None",
	ActionUp:           "Up",
	ActionDown:         "Down",
	ActionLeft:         "Left",
	ActionRight:        "Right",
	ActionBlock:        "Block",
	ActionReleaseUp:    "ReleaseUp",
	ActionReleaseDown:  "ReleaseDown",
	ActionReleaseLeft:  "ReleaseLeft",
	ActionReleaseRight: "ReleaseRight",
	ActionReleaseBlock: "ReleaseBlock",
	ActionPunch:        "Punch",
	ActionKick:         "Kick",
	ActionConfirm:      "Confirm",
	ActionBack:         "Back",
	ActionRestart:      "Restart",
	ActionQuit:         "Quit",
	ActionPause:        "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// Held reports whether the action starts an input that stays down until released.
func (a Action) Held() bool {
	_, ok := a.Release()
	return ok
}

// Release returns the action that ends a held action.
func (a Action) Release() (Action, bool) {
	switch a {
	case ActionUp:
		return ActionReleaseUp, true
	case ActionDown:
		return ActionReleaseDown, true
	case ActionLeft:
		return ActionReleaseLeft, true
	case ActionRight:
		return ActionReleaseRight, true
	case ActionBlock:
		return ActionReleaseBlock, true
	}
	return ActionNone, false
}

// InputFrame holds the actions a player triggered during one tick.
// Actions keep their arrival order because a release followed by a press
// is not the same as a press followed by a release.
type InputFrame struct {
	// Actions allows order-independent lookups.
	Actions map[Action]bool

	order []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set records an action for this frame. Repeats are kept in the ordered view.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
	f.order = append(f.order, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Ordered returns the actions in the order they arrived.
func (f InputFrame) Ordered() []Action {
	return f.order
}

// Empty reports whether nothing was triggered.
func (f InputFrame) Empty() bool {
	return len(f.order) == 0 && len(f.Actions) == 0
}

// Merge appends the actions of other, keeping their order.
func (f *InputFrame) Merge(other InputFrame) {
	for _, a := range other.order {
		f.Set(a)
	}
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.order = f.order[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.order = append([]Action(nil), f.order...)
	return clone
}

// PlayerID identifies a side of a two-player game.
// Player1 is the left corner, Player2 the right corner (CPU or remote).
type PlayerID int

const (
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// String returns "P1" or "P2".
func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	default:
		return "none"
	}
}

// MultiInputFrame carries every player's input for one tick.
type MultiInputFrame struct {
	ByPlayer map[PlayerID]InputFrame
}

// NewMultiInputFrame creates an empty multi-input frame.
func NewMultiInputFrame() MultiInputFrame {
	return MultiInputFrame{
		ByPlayer: make(map[PlayerID]InputFrame),
	}
}

// Player returns the input frame for a specific player, empty if none.
func (m MultiInputFrame) Player(id PlayerID) InputFrame {
	if frame, ok := m.ByPlayer[id]; ok {
		return frame
	}
	return NewInputFrame()
}

// SetPlayer sets the input frame for a specific player.
func (m *MultiInputFrame) SetPlayer(id PlayerID, frame InputFrame) {
	if m.ByPlayer == nil {
		m.ByPlayer = make(map[PlayerID]InputFrame)
	}
	m.ByPlayer[id] = frame
}

// Add records one action for a player.
func (m *MultiInputFrame) Add(id PlayerID, a Action) {
	frame := m.Player(id)
	frame.Set(a)
	m.SetPlayer(id, frame)
}

// Player1 returns the input frame for Player 1.
func (m MultiInputFrame) Player1() InputFrame {
	return m.Player(Player1)
}

// Player2 returns the input frame for Player 2.
func (m MultiInputFrame) Player2() InputFrame {
	return m.Player(Player2)
}

// Clear resets all player inputs for the next frame.
func (m *MultiInputFrame) Clear() {
	for id := range m.ByPlayer {
		frame := m.ByPlayer[id]
		frame.Clear()
		m.ByPlayer[id] = frame
	}
}

// Clone creates a deep copy of this multi-input frame.
func (m MultiInputFrame) Clone() MultiInputFrame {
	clone := NewMultiInputFrame()
	for id, frame := range m.ByPlayer {
		clone.ByPlayer[id] = frame.Clone()
	}
	return clone
}
