package fight

import (
	"math"
	"math/rand"
)

// Skill tunes the computer opponent.
type Skill struct {
	Reaction   float64 // mean seconds between decisions
	Aggression float64 // chance to throw a blow when in reach, 0..1
	Guard      float64 // chance to block an incoming live attack, 0..1
}

// Guard hold range, seconds.
const (
	guardMin = 0.25
	guardMax = 0.6
)

// CPU drives one side of a match from snapshots. It only ever produces
// intents, the same ones a keyboard would.
type CPU struct {
	rng   *rand.Rand
	skill Skill
	reach Reach

	wait   float64
	guard  float64
	dx, dy int
	block  bool
}

// NewCPU creates a computer opponent. The same seed and inputs always
// produce the same intents.
func NewCPU(seed int64, skill Skill, reach Reach) *CPU {
	return &CPU{
		rng:   rand.New(rand.NewSource(seed)),
		skill: skill,
		reach: reach,
	}
}

// SetSkill changes the skill from the next decision on.
func (c *CPU) SetSkill(s Skill) {
	c.skill = s
}

// Skill returns the current skill.
func (c *CPU) Skill() Skill {
	return c.skill
}

// Think returns the intents for side self this tick.
func (c *CPU) Think(s Snapshot, self Side, dt float64) []Intent {
	me := s.Fighters[self]
	foe := s.Fighters[self.Other()]

	if s.Phase != InProgress || me.State.Terminal() {
		out := c.release()
		c.wait = 0
		return out
	}

	var out []Intent
	if c.block {
		c.guard -= dt
		if c.guard <= 0 {
			c.block = false
			out = append(out, BlockEnd)
		} else {
			return out
		}
	}

	c.wait -= dt
	if c.wait > 0 {
		return out
	}
	c.wait = c.skill.Reaction * (0.5 + c.rng.Float64())

	inReach := c.reach.InContact(me.Position, foe.Position)

	if foe.Active && inReach && me.State.Free() && c.rng.Float64() < c.skill.Guard {
		out = append(out, c.steer(0, 0)...)
		c.block = true
		c.guard = guardMin + c.rng.Float64()*(guardMax-guardMin)
		return append(out, BlockBegin)
	}

	if inReach && me.State.Free() && c.rng.Float64() < c.skill.Aggression {
		out = append(out, c.steer(0, 0)...)
		if c.rng.Float64() < 0.6 {
			return append(out, ThrowPunch)
		}
		return append(out, ThrowKick)
	}

	// Line up depth first, then close the distance.
	d := foe.Position.Sub(me.Position)
	wantX, wantY := 0, 0
	if math.Abs(d.Y) > c.reach.Y/2 {
		wantY = sign(d.Y)
	} else if math.Abs(d.X) > c.reach.X*0.8 {
		wantX = sign(d.X)
	}
	return append(out, c.steer(wantX, wantY)...)
}

// steer emits the stop and move intents needed to go from the held
// direction to (x, y).
func (c *CPU) steer(x, y int) []Intent {
	var out []Intent
	if c.dx != x {
		switch c.dx {
		case -1:
			out = append(out, StopLeft)
		case 1:
			out = append(out, StopRight)
		}
		switch x {
		case -1:
			out = append(out, MoveLeft)
		case 1:
			out = append(out, MoveRight)
		}
		c.dx = x
	}
	if c.dy != y {
		switch c.dy {
		case -1:
			out = append(out, StopDown)
		case 1:
			out = append(out, StopUp)
		}
		switch y {
		case -1:
			out = append(out, MoveDown)
		case 1:
			out = append(out, MoveUp)
		}
		c.dy = y
	}
	return out
}

// release lets go of everything held.
func (c *CPU) release() []Intent {
	out := c.steer(0, 0)
	if c.block {
		c.block = false
		c.guard = 0
		out = append(out, BlockEnd)
	}
	return out
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
