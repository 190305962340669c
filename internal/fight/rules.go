package fight

import "github.com/ringside-tui/ringside/internal/core"

// Animations holds how long each state's animation runs, in seconds.
// Punch, Kick and Hurt end when theirs finishes; the rest loop and only
// matter to the renderer.
type Animations [stateCount]float64

// Duration returns the animation length for s.
func (a Animations) Duration(s State) float64 {
	if !s.Valid() {
		return 0
	}
	return a[s]
}

// Frames is the number of frames each fighter animation is drawn with.
const Frames = 6

// DefaultAnimations reproduces six-frame sheets at the classic frame times.
func DefaultAnimations() Animations {
	var a Animations
	frame := map[State]float64{
		Idle:  0.10,
		Walk:  0.08,
		Block: 0.05,
		Punch: 0.05,
		Kick:  0.05,
		Hurt:  0.03,
		Win:   0.05,
		Lose:  0.05,
	}
	for s, d := range frame {
		a[s] = d * Frames
	}
	return a
}

// Tuning is the per-fighter physical model.
type Tuning struct {
	Speed       float64 // world units per second while walking
	MaxLife     float64
	BlockFactor float64 // share of damage taken while blocking
	Animations  Animations
}

// Rules bundles every constant the match depends on.
type Rules struct {
	Fighter Tuning
	Ring    Ring
	Reach   Reach

	HitStrength float64

	MaxRounds    int
	StartDelay   float64 // seconds in Starting before the fight begins
	EndDelay     float64 // seconds in Ending before the next round
	RoundTime    float64 // seconds on the round clock
	CriticalTime float64 // clock value under which the HUD warns

	Starts [2]core.Vec2

	// TieBreak wins a round that ends with equal life.
	TieBreak Side
}

// DefaultRules returns the classic three-round bout.
func DefaultRules() Rules {
	return Rules{
		Fighter: Tuning{
			Speed:       10,
			MaxLife:     100,
			BlockFactor: 0.2,
			Animations:  DefaultAnimations(),
		},
		Ring:         DefaultRing(),
		Reach:        Reach{X: 7.5, Y: 1.5},
		HitStrength:  5,
		MaxRounds:    3,
		StartDelay:   3,
		EndDelay:     3,
		RoundTime:    99.99,
		CriticalTime: 10,
		Starts:       [2]core.Vec2{core.V(16, 15), core.V(51, 15)},
		TieBreak:     SidePlayer,
	}
}

// RoundsToWin is the number of round wins that ends the match.
func (r Rules) RoundsToWin() int {
	return r.MaxRounds/2 + 1
}
