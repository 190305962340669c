package fight

import (
	"fmt"

	"github.com/ringside-tui/ringside/internal/core"
)

// FighterSnapshot is a read-only copy of one fighter.
type FighterSnapshot struct {
	Name      string
	State     State
	StateTime float64
	Frame     int // animation frame in [0, Frames)
	Position  core.Vec2
	Facing    int
	Life      float64
	MaxLife   float64
	Blocking  bool
	Active    bool // attack can still land this tick
}

// Snapshot is everything a host needs to draw or reason about a match.
// It holds no references into the match.
type Snapshot struct {
	Fighters [2]FighterSnapshot

	Round     int
	MaxRounds int
	Phase     Phase
	PhaseTime float64
	Clock     float64
	Wins      int
	Losses    int
	Status    Status

	StartDelay   float64
	CriticalTime float64

	Last    RoundResult
	HasLast bool
}

// Banner is the intro caption: the round number during the first half of
// the start delay, then the call to fight.
func (s Snapshot) Banner() string {
	if s.Phase != Starting {
		return ""
	}
	if s.PhaseTime < s.StartDelay/2 {
		return fmt.Sprintf("ROUND %d", s.Round)
	}
	return "FIGHT!"
}

// Critical reports whether the round clock is in its final seconds.
func (s Snapshot) Critical() bool {
	return s.Phase == InProgress && s.Clock < s.CriticalTime
}

// Distance returns the per-axis gap between the fighters.
func (s Snapshot) Distance() core.Vec2 {
	return s.Fighters[SideOpponent].Position.Sub(s.Fighters[SidePlayer].Position)
}
