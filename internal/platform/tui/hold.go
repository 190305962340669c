package tui

import (
	"time"

	"github.com/ringside-tui/ringside/internal/core"
)

// DefaultHoldWindow covers a terminal's initial auto-repeat delay.
const DefaultHoldWindow = 600 * time.Millisecond

// Release is a synthesised key-up.
type Release struct {
	Player core.PlayerID
	Action core.Action // one of the ActionRelease* actions
}

type holdKey struct {
	player core.PlayerID
	action core.Action
}

// HoldTracker turns key presses into press/release pairs. Terminals only
// send presses, repeated while a key is down, so a held action counts as
// released once no repeat has arrived for the hold window.
type HoldTracker struct {
	window time.Duration
	held   map[holdKey]time.Time
}

// NewHoldTracker creates a tracker. A non-positive window uses DefaultHoldWindow.
func NewHoldTracker(window time.Duration) *HoldTracker {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HoldTracker{window: window, held: make(map[holdKey]time.Time)}
}

// Press records a press of a held action (movement or block) and reports
// whether it starts a new hold rather than repeating one. Pressing a
// direction drops the opposite one.
func (h *HoldTracker) Press(p core.PlayerID, a core.Action, now time.Time) bool {
	if !a.Held() {
		return false
	}
	if opp, ok := opposite(a); ok {
		delete(h.held, holdKey{p, opp})
	}
	k := holdKey{p, a}
	_, repeat := h.held[k]
	h.held[k] = now
	return !repeat
}

// Expire returns releases for holds whose last press is older than the window.
func (h *HoldTracker) Expire(now time.Time) []Release {
	var out []Release
	for k, last := range h.held {
		if now.Sub(last) < h.window {
			continue
		}
		out = append(out, release(k))
		delete(h.held, k)
	}
	return out
}

// ReleaseAll ends every hold.
func (h *HoldTracker) ReleaseAll() []Release {
	out := make([]Release, 0, len(h.held))
	for k := range h.held {
		out = append(out, release(k))
	}
	clear(h.held)
	return out
}

// Held reports whether an action is currently held.
func (h *HoldTracker) Held(p core.PlayerID, a core.Action) bool {
	_, ok := h.held[holdKey{p, a}]
	return ok
}

func release(k holdKey) Release {
	r, _ := k.action.Release()
	return Release{Player: k.player, Action: r}
}

func opposite(a core.Action) (core.Action, bool) {
	switch a {
	case core.ActionLeft:
		return core.ActionRight, true
	case core.ActionRight:
		return core.ActionLeft, true
	case core.ActionUp:
		return core.ActionDown, true
	case core.ActionDown:
		return core.ActionUp, true
	}
	return core.ActionNone, false
}
