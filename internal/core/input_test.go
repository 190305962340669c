package core

import "testing"

func TestInputFrameKeepsOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionReleaseLeft)
	f.Set(ActionLeft)
	f.Set(ActionPunch)

	got := f.Ordered()
	want := []Action{ActionReleaseLeft, ActionLeft, ActionPunch}
	if len(got) != len(want) {
		t.Fatalf("Ordered() len = %d, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ordered()[%d] = %v, expected %v", i, got[i], want[i])
		}
	}
	if !f.Has(ActionLeft) || f.Has(ActionKick) {
		t.Error("Has() disagrees with the recorded actions")
	}
}

func TestInputFrameCloneIsIndependent(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionBlock)
	clone := f.Clone()

	f.Clear()
	f.Set(ActionKick)

	if !clone.Has(ActionBlock) || clone.Has(ActionKick) {
		t.Error("clone changed after the original was reused")
	}
	if len(clone.Ordered()) != 1 || clone.Ordered()[0] != ActionBlock {
		t.Errorf("clone order = %v", clone.Ordered())
	}
	if f.Has(ActionBlock) {
		t.Error("Clear() should drop earlier actions")
	}
}

func TestInputFrameMerge(t *testing.T) {
	a := NewInputFrame()
	a.Set(ActionUp)
	b := NewInputFrame()
	b.Set(ActionReleaseUp)
	b.Set(ActionKick)

	a.Merge(b)

	got := a.Ordered()
	if len(got) != 3 || got[1] != ActionReleaseUp || got[2] != ActionKick {
		t.Errorf("merged order = %v", got)
	}
}

func TestActionRelease(t *testing.T) {
	tests := []struct {
		action  Action
		release Action
		held    bool
	}{
		{ActionUp, ActionReleaseUp, true},
		{ActionDown, ActionReleaseDown, true},
		{ActionLeft, ActionReleaseLeft, true},
		{ActionRight, ActionReleaseRight, true},
		{ActionBlock, ActionReleaseBlock, true},
		{ActionPunch, ActionNone, false},
		{ActionKick, ActionNone, false},
		{ActionPause, ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.action.String(), func(t *testing.T) {
			rel, ok := tc.action.Release()
			if ok != tc.held || rel != tc.release {
				t.Errorf("Release() = (%v, %v), expected (%v, %v)", rel, ok, tc.release, tc.held)
			}
			if tc.action.Held() != tc.held {
				t.Errorf("Held() = %v, expected %v", tc.action.Held(), tc.held)
			}
		})
	}
}

func TestMultiInputFrame(t *testing.T) {
	m := NewMultiInputFrame()
	m.Add(Player2, ActionPunch)
	m.Add(Player2, ActionKick)

	if m.Player1().Has(ActionPunch) {
		t.Error("Player1 should have no input")
	}
	if got := m.Player2().Ordered(); len(got) != 2 || got[0] != ActionPunch {
		t.Errorf("Player2 order = %v", got)
	}

	m.Clear()
	if !m.Player2().Empty() {
		t.Error("Clear() should empty every player frame")
	}
	if Player1.String() != "P1" || Player2.String() != "P2" {
		t.Error("unexpected PlayerID names")
	}
}
