package tui

import (
	"testing"
	"time"

	"github.com/ringside-tui/ringside/internal/core"
)

func TestHoldTrackerRepeatsExtendHold(t *testing.T) {
	h := NewHoldTracker(600 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	if !h.Press(core.Player1, core.ActionRight, t0) {
		t.Fatal("first press should start a hold")
	}
	if h.Press(core.Player1, core.ActionRight, t0.Add(500*time.Millisecond)) {
		t.Fatal("auto-repeat should not start a new hold")
	}
	if got := h.Expire(t0.Add(900 * time.Millisecond)); len(got) != 0 {
		t.Fatalf("repeat at 500ms should keep the hold until 1100ms, got %v", got)
	}

	got := h.Expire(t0.Add(1100 * time.Millisecond))
	want := Release{Player: core.Player1, Action: core.ActionReleaseRight}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("Expire = %v, want [%v]", got, want)
	}
	if h.Held(core.Player1, core.ActionRight) {
		t.Error("hold should be gone after release")
	}
}

func TestHoldTrackerIgnoresOneShots(t *testing.T) {
	h := NewHoldTracker(0)
	now := time.Unix(0, 0)

	for _, a := range []core.Action{core.ActionPunch, core.ActionKick, core.ActionPause} {
		if h.Press(core.Player1, a, now) {
			t.Errorf("%v should not be held", a)
		}
	}
	if got := h.Expire(now.Add(time.Hour)); len(got) != 0 {
		t.Errorf("Expire = %v, want none", got)
	}
}

func TestHoldTrackerOppositeDirection(t *testing.T) {
	h := NewHoldTracker(DefaultHoldWindow)
	now := time.Unix(0, 0)

	h.Press(core.Player1, core.ActionLeft, now)
	h.Press(core.Player1, core.ActionRight, now.Add(100*time.Millisecond))

	if h.Held(core.Player1, core.ActionLeft) {
		t.Error("pressing right should drop left")
	}
	if !h.Held(core.Player1, core.ActionRight) {
		t.Error("right should be held")
	}
}

func TestHoldTrackerPlayersAreSeparate(t *testing.T) {
	h := NewHoldTracker(DefaultHoldWindow)
	now := time.Unix(0, 0)

	h.Press(core.Player1, core.ActionBlock, now)
	if !h.Press(core.Player2, core.ActionBlock, now) {
		t.Error("player 2 block should start its own hold")
	}

	got := h.ReleaseAll()
	if len(got) != 2 {
		t.Fatalf("ReleaseAll returned %d releases, want 2", len(got))
	}
	for _, r := range got {
		if r.Action != core.ActionReleaseBlock {
			t.Errorf("release action = %v, want ReleaseBlock", r.Action)
		}
	}
	if h.Held(core.Player1, core.ActionBlock) || h.Held(core.Player2, core.ActionBlock) {
		t.Error("ReleaseAll should clear every hold")
	}
}
