// Package fight is the deterministic boxing core: per-fighter action state
// machines, contact and damage resolution, and the round/match controller
// that owns both fighters and advances them one tick at a time.
//
// Nothing in this package reads the clock, draws, or knows about keys. The
// host feeds intents and a per-tick dt, then reads Snapshot values back.
package fight

// State is a fighter's current action.
type State int

const (
	Idle State = iota
	Walk
	Block
	Punch
	Kick
	Hurt
	Win
	Lose

	stateCount
)

var stateNames = [stateCount]string{"idle", "walk", "block", "punch", "kick", "hurt", "win", "lose"}

func (s State) String() string {
	if s < 0 || s >= stateCount {
		return "unknown"
	}
	return stateNames[s]
}

// Valid reports whether s is one of the eight fighter states.
func (s State) Valid() bool {
	return s >= 0 && s < stateCount
}

// Terminal reports whether the state ends the fighter's round.
func (s State) Terminal() bool {
	return s == Win || s == Lose
}

// Attacking reports whether the state is a punch or a kick.
func (s State) Attacking() bool {
	return s == Punch || s == Kick
}

// Timed reports whether the state ends on its own once its animation finishes.
func (s State) Timed() bool {
	return s == Punch || s == Kick || s == Hurt
}

// Free reports whether the fighter may start a block or an attack.
func (s State) Free() bool {
	return s == Idle || s == Walk
}

// Side indexes the two corners of the ring.
type Side int

const (
	SidePlayer Side = iota
	SideOpponent
)

// Other returns the opposite corner.
func (s Side) Other() Side {
	return 1 - s
}

func (s Side) String() string {
	if s == SidePlayer {
		return "player"
	}
	return "opponent"
}
