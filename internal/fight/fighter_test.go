package fight

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringside-tui/ringside/internal/core"
)

const tick = 1.0 / 60

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

func readyFighter(t *testing.T) *Fighter {
	t.Helper()
	f := newFighter("test", DefaultRules().Fighter)
	f.ready(core.V(16, 15))
	require.Equal(t, Idle, f.state)
	return &f
}

func TestFighterWalksAtSpeed(t *testing.T) {
	f := readyFighter(t)
	f.apply(MoveRight)
	require.Equal(t, Walk, f.state)

	for range 60 {
		f.update(tick)
	}
	assert.InDelta(t, 26, f.pos.X, 1e-6)
	assert.InDelta(t, 15, f.pos.Y, 1e-9)

	f.apply(StopRight)
	assert.Equal(t, Idle, f.state)
}

func TestFighterStopOnlyClearsMatchingAxis(t *testing.T) {
	f := readyFighter(t)
	f.apply(MoveRight)
	f.apply(MoveLeft)
	f.apply(StopRight) // stale release of the earlier press
	assert.Equal(t, -1, f.dx)
	assert.Equal(t, Walk, f.state)

	f.apply(MoveUp)
	f.apply(StopDown)
	assert.Equal(t, 1, f.dy)

	f.apply(StopLeft)
	f.apply(StopUp)
	assert.Equal(t, Idle, f.state)
}

func TestFighterUpMovesTowardBackRope(t *testing.T) {
	f := readyFighter(t)
	f.apply(MoveUp)
	f.update(0.5)
	assert.InDelta(t, 20, f.pos.Y, 1e-9)
}

func TestFighterAttackReturnsToMovement(t *testing.T) {
	anims := DefaultAnimations()
	tests := []struct {
		name   string
		intent Intent
		state  State
		moving bool
		after  State
	}{
		{"punch to idle", ThrowPunch, Punch, false, Idle},
		{"kick to idle", ThrowKick, Kick, false, Idle},
		{"punch to walk", ThrowPunch, Punch, true, Walk},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := readyFighter(t)
			if tt.moving {
				f.apply(MoveLeft)
			}
			f.apply(tt.intent)
			require.Equal(t, tt.state, f.state)
			assert.False(t, f.contact)

			f.update(anims.Duration(tt.state) / 2)
			assert.Equal(t, tt.state, f.state)
			f.update(anims.Duration(tt.state))
			assert.Equal(t, tt.after, f.state)
		})
	}
}

func TestFighterAttackNeedsFreeState(t *testing.T) {
	f := readyFighter(t)
	f.apply(BlockBegin)
	f.apply(ThrowPunch)
	assert.Equal(t, Block, f.state)

	f.apply(BlockEnd)
	f.apply(ThrowKick)
	f.apply(ThrowPunch)
	assert.Equal(t, Kick, f.state)
}

func TestFighterBlockEndPicksWalk(t *testing.T) {
	f := readyFighter(t)
	f.apply(BlockBegin)
	f.apply(MoveRight) // held while blocking
	assert.Equal(t, Block, f.state)

	start := f.pos
	f.update(0.5)
	assert.Equal(t, start, f.pos)

	f.apply(BlockEnd)
	assert.Equal(t, Walk, f.state)
}

func TestFighterActiveWindow(t *testing.T) {
	f := readyFighter(t)
	f.apply(ThrowPunch)
	d := f.tuning.Animations.Duration(Punch)

	tests := []struct {
		at     float64
		active bool
	}{
		{0, false},
		{0.2 * d, false},
		{0.4 * d, true},
		{0.6 * d, true},
		{0.7 * d, false},
	}
	for _, tt := range tests {
		f.stateTime = tt.at
		assert.Equal(t, tt.active, f.attackActive(), "at %.3f", tt.at)
	}

	f.stateTime = 0.5 * d
	f.makeContact()
	assert.False(t, f.attackActive())
}

func TestFighterHit(t *testing.T) {
	t.Run("hurts", func(t *testing.T) {
		f := readyFighter(t)
		dealt, down := f.hit(5)
		assert.InDelta(t, 5, dealt, 1e-9)
		assert.False(t, down)
		assert.Equal(t, Hurt, f.state)
		assert.InDelta(t, 95, f.life, 1e-9)
	})

	t.Run("ignored while hurt", func(t *testing.T) {
		f := readyFighter(t)
		f.hit(5)
		dealt, _ := f.hit(5)
		assert.Zero(t, dealt)
		assert.InDelta(t, 95, f.life, 1e-9)
	})

	t.Run("block absorbs", func(t *testing.T) {
		f := readyFighter(t)
		f.apply(BlockBegin)
		dealt, down := f.hit(5)
		assert.InDelta(t, 1, dealt, 1e-9)
		assert.False(t, down)
		assert.Equal(t, Block, f.state)
		assert.InDelta(t, 99, f.life, 1e-9)
	})

	t.Run("knock down", func(t *testing.T) {
		f := readyFighter(t)
		f.life = 3
		dealt, down := f.hit(5)
		assert.True(t, down)
		assert.InDelta(t, 3, dealt, 1e-9)
		assert.Equal(t, Lose, f.state)
		assert.Zero(t, f.life)
	})

	t.Run("ignored after win", func(t *testing.T) {
		f := readyFighter(t)
		f.win()
		dealt, down := f.hit(5)
		assert.Zero(t, dealt)
		assert.False(t, down)
		assert.Equal(t, Win, f.state)
		assert.InDelta(t, 100, f.life, 1e-9)
	})

	t.Run("ignored after lose", func(t *testing.T) {
		f := readyFighter(t)
		f.lose()
		dealt, down := f.hit(5)
		assert.Zero(t, dealt)
		assert.False(t, down)
		assert.Equal(t, Lose, f.state)
		assert.Zero(t, f.life)
	})
}

func TestFighterLifeStaysInRange(t *testing.T) {
	rng := testRNG()
	maxLife := DefaultRules().Fighter.MaxLife
	for run := range 50 {
		f := readyFighter(t)
		for step := range 400 {
			switch rng.Intn(3) {
			case 0:
				f.apply(Intent(rng.Intn(int(ThrowKick) + 1)))
			case 1:
				f.update(rng.Float64() * 4 * tick)
			default:
				f.hit(rng.Float64() * 40)
			}
			require.GreaterOrEqual(t, f.life, 0.0, "run %d step %d", run, step)
			require.LessOrEqual(t, f.life, maxLife, "run %d step %d", run, step)
			require.True(t, f.state.Valid(), "run %d step %d: state %v", run, step, f.state)
			if f.state == Lose {
				require.Zero(t, f.life, "run %d step %d", run, step)
			}
		}
	}
}

func TestFighterTerminalStates(t *testing.T) {
	f := readyFighter(t)
	f.win()
	f.lose()
	assert.Equal(t, Win, f.state)
	assert.InDelta(t, 100, f.life, 1e-9)

	g := readyFighter(t)
	g.lose()
	assert.Equal(t, Lose, g.state)
	assert.Zero(t, g.life)
	g.win()
	assert.Equal(t, Lose, g.state)

	g.apply(ThrowPunch)
	g.apply(BlockBegin)
	assert.Equal(t, Lose, g.state)
}

func TestFrameAt(t *testing.T) {
	anims := DefaultAnimations()
	idleFrame := anims.Duration(Idle) / Frames

	assert.Equal(t, 0, frameAt(Idle, 0, anims))
	assert.Equal(t, 2, frameAt(Idle, 2.5*idleFrame, anims))
	assert.Equal(t, 0, frameAt(Idle, 6.5*idleFrame, anims))
	assert.Equal(t, Frames-1, frameAt(Punch, 10, anims))
	assert.Equal(t, Frames-1, frameAt(Lose, 10, anims))
}
