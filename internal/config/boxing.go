package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/ringside-tui/ringside/internal/core"
	"github.com/ringside-tui/ringside/internal/fight"
)

// Validate rejects configurations the fight core cannot run with. NaN and
// infinities are rejected everywhere.
func (c BoxingConfig) Validate() error {
	var errs []error
	finite := func(name string, v float64) bool {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%s must be a finite number, got %v", name, v))
			return false
		}
		return true
	}
	positive := func(name string, v float64) {
		if finite(name, v) && v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if finite(name, v) && v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}
	unit := func(name string, v float64) {
		if finite(name, v) && (v < 0 || v > 1) {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", name, v))
		}
	}

	positive("fighter.speed", c.Fighter.Speed)
	positive("fighter.max_life", c.Fighter.MaxLife)
	unit("fighter.block_factor", c.Fighter.BlockFactor)

	if c.Animations.Frames <= 0 {
		errs = append(errs, fmt.Errorf("animations.frames must be positive, got %d", c.Animations.Frames))
	}
	d := c.Animations.FrameDuration
	positive("animations.frame_duration.idle", d.Idle)
	positive("animations.frame_duration.walk", d.Walk)
	positive("animations.frame_duration.block", d.Block)
	positive("animations.frame_duration.punch", d.Punch)
	positive("animations.frame_duration.kick", d.Kick)
	positive("animations.frame_duration.hurt", d.Hurt)
	positive("animations.frame_duration.win", d.Win)
	positive("animations.frame_duration.lose", d.Lose)

	// The ring shape is only checked once every field is a number
	ringOK := finite("ring.min_x", c.Ring.MinX)
	ringOK = finite("ring.max_x", c.Ring.MaxX) && ringOK
	ringOK = finite("ring.min_y", c.Ring.MinY) && ringOK
	ringOK = finite("ring.max_y", c.Ring.MaxY) && ringOK
	ringOK = finite("ring.slope", c.Ring.Slope) && ringOK
	if ringOK {
		if c.Ring.Slope <= 0 {
			errs = append(errs, fmt.Errorf("ring.slope must be positive, got %v", c.Ring.Slope))
		}
		if c.Ring.MinY >= c.Ring.MaxY {
			errs = append(errs, fmt.Errorf("ring.min_y (%v) must be below ring.max_y (%v)", c.Ring.MinY, c.Ring.MaxY))
		}
		if c.Ring.Slope > 0 {
			lo, hi := c.Rules().Ring.Bounds(c.Ring.MaxY)
			if lo > hi {
				errs = append(errs, errors.New("ring is inverted at the back rope"))
			}
		}
	}

	positive("combat.reach_x", c.Combat.ReachX)
	positive("combat.reach_y", c.Combat.ReachY)
	positive("combat.hit_strength", c.Combat.HitStrength)

	if c.Rounds.MaxRounds <= 0 {
		errs = append(errs, fmt.Errorf("rounds.max_rounds must be positive, got %d", c.Rounds.MaxRounds))
	}
	positive("rounds.round_time", c.Rounds.RoundTime)
	nonNegative("rounds.start_delay", c.Rounds.StartDelay)
	nonNegative("rounds.end_delay", c.Rounds.EndDelay)
	nonNegative("rounds.critical_time", c.Rounds.CriticalTime)
	switch c.Rounds.TieBreak {
	case "", "player", "opponent":
	default:
		errs = append(errs, fmt.Errorf("rounds.tie_break must be player or opponent, got %q", c.Rounds.TieBreak))
	}

	finite("corners.player.x", c.Corners.Player.X)
	finite("corners.player.y", c.Corners.Player.Y)
	finite("corners.opponent.x", c.Corners.Opponent.X)
	finite("corners.opponent.y", c.Corners.Opponent.Y)

	for _, s := range []struct {
		name  string
		skill SkillConfig
	}{{"cpu.easy", c.CPU.Easy}, {"cpu.hard", c.CPU.Hard}} {
		positive(s.name+".reaction", s.skill.Reaction)
		unit(s.name+".aggression", s.skill.Aggression)
		unit(s.name+".guard", s.skill.Guard)
	}
	finite("difficulty.initial_level", c.Difficulty.InitialLevel)

	return errors.Join(errs...)
}

// Rules converts the configuration into fight rules.
func (c BoxingConfig) Rules() fight.Rules {
	frame := c.Animations.FrameDuration
	n := float64(c.Animations.Frames)

	var anims fight.Animations
	anims[fight.Idle] = frame.Idle * n
	anims[fight.Walk] = frame.Walk * n
	anims[fight.Block] = frame.Block * n
	anims[fight.Punch] = frame.Punch * n
	anims[fight.Kick] = frame.Kick * n
	anims[fight.Hurt] = frame.Hurt * n
	anims[fight.Win] = frame.Win * n
	anims[fight.Lose] = frame.Lose * n

	tieBreak := fight.SidePlayer
	if c.Rounds.TieBreak == "opponent" {
		tieBreak = fight.SideOpponent
	}

	return fight.Rules{
		Fighter: fight.Tuning{
			Speed:       c.Fighter.Speed,
			MaxLife:     c.Fighter.MaxLife,
			BlockFactor: c.Fighter.BlockFactor,
			Animations:  anims,
		},
		Ring: fight.Ring{
			MinX:  c.Ring.MinX,
			MaxX:  c.Ring.MaxX,
			MinY:  c.Ring.MinY,
			MaxY:  c.Ring.MaxY,
			Slope: c.Ring.Slope,
		},
		Reach:        fight.Reach{X: c.Combat.ReachX, Y: c.Combat.ReachY},
		HitStrength:  c.Combat.HitStrength,
		MaxRounds:    c.Rounds.MaxRounds,
		StartDelay:   c.Rounds.StartDelay,
		EndDelay:     c.Rounds.EndDelay,
		RoundTime:    c.Rounds.RoundTime,
		CriticalTime: c.Rounds.CriticalTime,
		Starts: [2]core.Vec2{
			core.V(c.Corners.Player.X, c.Corners.Player.Y),
			core.V(c.Corners.Opponent.X, c.Corners.Opponent.Y),
		},
		TieBreak: tieBreak,
	}
}

// Skill returns the CPU skill at a difficulty level in [0, 1].
func (c BoxingConfig) Skill(level float64) fight.Skill {
	level = clampF(level, 0, 1)
	lerp := func(a, b float64) float64 { return a + (b-a)*level }
	return fight.Skill{
		Reaction:   lerp(c.CPU.Easy.Reaction, c.CPU.Hard.Reaction),
		Aggression: lerp(c.CPU.Easy.Aggression, c.CPU.Hard.Aggression),
		Guard:      lerp(c.CPU.Easy.Guard, c.CPU.Hard.Guard),
	}
}
