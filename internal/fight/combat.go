package fight

import (
	"math"

	"github.com/ringside-tui/ringside/internal/core"
)

// Reach is how close two fighters must be, per axis, for a blow to connect.
type Reach struct {
	X, Y float64
}

// InContact reports whether a and b are within reach of each other.
func (r Reach) InContact(a, b core.Vec2) bool {
	return math.Abs(a.X-b.X) <= r.X && math.Abs(a.Y-b.Y) <= r.Y
}

// Hit describes one blow that landed.
type Hit struct {
	Attacker Side
	Move     State // Punch or Kick
	Damage   float64
	Blocked  bool
	KO       bool
}

// Resolver applies blows between the two fighters of a match.
type Resolver struct {
	Reach    Reach
	Strength float64
}

// Resolve checks both attack directions. Which attacks are live is decided
// before any damage is applied, so two blows landing on the same tick trade.
func (r Resolver) Resolve(fighters *[2]Fighter) []Hit {
	if !r.Reach.InContact(fighters[SidePlayer].pos, fighters[SideOpponent].pos) {
		return nil
	}

	var (
		live  [2]bool
		moves [2]State
	)
	for _, side := range []Side{SidePlayer, SideOpponent} {
		live[side] = fighters[side].attackActive()
		moves[side] = fighters[side].state
	}

	var hits []Hit
	for _, side := range []Side{SidePlayer, SideOpponent} {
		if !live[side] {
			continue
		}
		attacker := &fighters[side]
		defender := &fighters[side.Other()]

		blocked := defender.state == Block
		dealt, down := defender.hit(r.Strength)
		attacker.makeContact()

		if dealt > 0 || down {
			hits = append(hits, Hit{
				Attacker: side,
				Move:     moves[side],
				Damage:   dealt,
				Blocked:  blocked,
				KO:       down,
			})
		}
	}
	return hits
}
