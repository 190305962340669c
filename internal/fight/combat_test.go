package fight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringside-tui/ringside/internal/core"
)

func pair(a, b core.Vec2) *[2]Fighter {
	tuning := DefaultRules().Fighter
	fs := [2]Fighter{newFighter("a", tuning), newFighter("b", tuning)}
	fs[SidePlayer].ready(a)
	fs[SideOpponent].ready(b)
	return &fs
}

// swing puts the fighter in the middle of its active window.
func swing(f *Fighter, move Intent) {
	f.apply(move)
	f.stateTime = 0.5 * f.tuning.Animations.Duration(f.state)
}

func TestReachContact(t *testing.T) {
	r := DefaultRules().Reach
	tests := []struct {
		name string
		a, b core.Vec2
		want bool
	}{
		{"same spot", core.V(30, 10), core.V(30, 10), true},
		{"edge of reach", core.V(30, 10), core.V(37.5, 11.5), true},
		{"too far", core.V(30, 10), core.V(37.6, 10), false},
		{"different depth", core.V(30, 10), core.V(32, 11.6), false},
		{"behind", core.V(37, 10), core.V(30, 10), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.InContact(tt.a, tt.b))
			assert.Equal(t, tt.want, r.InContact(tt.b, tt.a))
		})
	}
}

func TestResolveSingleHit(t *testing.T) {
	res := Resolver{Reach: DefaultRules().Reach, Strength: 5}
	fs := pair(core.V(30, 15), core.V(35, 15))
	swing(&fs[SidePlayer], ThrowPunch)

	hits := res.Resolve(fs)
	require.Len(t, hits, 1)
	assert.Equal(t, SidePlayer, hits[0].Attacker)
	assert.Equal(t, Punch, hits[0].Move)
	assert.InDelta(t, 5, hits[0].Damage, 1e-9)
	assert.Equal(t, Hurt, fs[SideOpponent].state)

	// same activation never lands twice
	assert.Empty(t, res.Resolve(fs))
	assert.InDelta(t, 95, fs[SideOpponent].life, 1e-9)
}

func TestResolveOutOfReach(t *testing.T) {
	res := Resolver{Reach: DefaultRules().Reach, Strength: 5}
	fs := pair(core.V(20, 15), core.V(40, 15))
	swing(&fs[SidePlayer], ThrowKick)

	assert.Empty(t, res.Resolve(fs))
	assert.False(t, fs[SidePlayer].contact)
}

func TestResolveTrade(t *testing.T) {
	res := Resolver{Reach: DefaultRules().Reach, Strength: 5}
	fs := pair(core.V(30, 15), core.V(35, 15))
	swing(&fs[SidePlayer], ThrowPunch)
	swing(&fs[SideOpponent], ThrowKick)

	hits := res.Resolve(fs)
	require.Len(t, hits, 2)
	assert.Equal(t, Punch, hits[0].Move)
	assert.Equal(t, Kick, hits[1].Move)
	assert.InDelta(t, 95, fs[SidePlayer].life, 1e-9)
	assert.InDelta(t, 95, fs[SideOpponent].life, 1e-9)
}

func TestResolveBlocked(t *testing.T) {
	res := Resolver{Reach: DefaultRules().Reach, Strength: 5}
	fs := pair(core.V(30, 15), core.V(35, 15))
	fs[SideOpponent].apply(BlockBegin)
	swing(&fs[SidePlayer], ThrowPunch)

	hits := res.Resolve(fs)
	require.Len(t, hits, 1)
	assert.True(t, hits[0].Blocked)
	assert.Equal(t, Block, fs[SideOpponent].state)
	assert.InDelta(t, 99, fs[SideOpponent].life, 1e-9)
}

func TestResolveKnockOut(t *testing.T) {
	res := Resolver{Reach: DefaultRules().Reach, Strength: 5}
	fs := pair(core.V(30, 15), core.V(35, 15))
	fs[SideOpponent].life = 4
	swing(&fs[SidePlayer], ThrowPunch)

	hits := res.Resolve(fs)
	require.Len(t, hits, 1)
	assert.True(t, hits[0].KO)
	assert.Equal(t, Lose, fs[SideOpponent].state)
}

func TestRingClamp(t *testing.T) {
	ring := DefaultRing()
	tests := []struct {
		name string
		in   core.Vec2
		want core.Vec2
	}{
		{"inside", core.V(30, 15), core.V(30, 15)},
		{"below front rope", core.V(30, 0), core.V(30, 4)},
		{"past back rope", core.V(30, 40), core.V(30, 22)},
		{"left of front corner", core.V(0, 4), core.V(4/3.16+7, 4)},
		{"right of back corner", core.V(100, 30), core.V(-22/3.16+60, 22)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ring.Clamp(tt.in)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
			assert.True(t, ring.Contains(got))
		})
	}
}

func TestRingClampIdempotent(t *testing.T) {
	ring := DefaultRing()
	rng := testRNG()
	for i := range 2000 {
		p := core.V(rng.Float64()*200-70, rng.Float64()*80-30)
		once := ring.Clamp(p)
		require.Equal(t, once, ring.Clamp(once), "point %d %v", i, p)
		require.True(t, ring.Contains(once), "point %d %v", i, p)
		if ring.Contains(p) {
			require.Equal(t, p, once, "point %d %v", i, p)
		}
	}
}

func TestRingNarrowsTowardBack(t *testing.T) {
	ring := DefaultRing()
	frontLo, frontHi := ring.Bounds(ring.MinY)
	backLo, backHi := ring.Bounds(ring.MaxY)
	assert.Less(t, backHi-backLo, frontHi-frontLo)
}
