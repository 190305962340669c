package config

import (
	_ "embed"
)

//go:embed defaults/boxing.yaml
var defaultBoxingYAML []byte

// DefaultBoxingConfig returns the default boxing configuration.
func DefaultBoxingConfig() BoxingConfig {
	return BoxingConfig{
		Fighter: FighterConfig{
			Speed:       10,
			MaxLife:     100,
			BlockFactor: 0.2,
		},
		Animations: AnimationConfig{
			Frames: 6,
			FrameDuration: StateDurations{
				Idle:  0.10,
				Walk:  0.08,
				Block: 0.05,
				Punch: 0.05,
				Kick:  0.05,
				Hurt:  0.03,
				Win:   0.05,
				Lose:  0.05,
			},
		},
		Ring: RingConfig{
			MinX:  7,
			MaxX:  60,
			MinY:  4,
			MaxY:  22,
			Slope: 3.16,
		},
		Combat: CombatConfig{
			ReachX:      7.5,
			ReachY:      1.5,
			HitStrength: 5,
		},
		Rounds: RoundsConfig{
			MaxRounds:    3,
			StartDelay:   3,
			EndDelay:     3,
			RoundTime:    99.99,
			CriticalTime: 10,
			TieBreak:     "player",
		},
		Corners: CornersConfig{
			Player:   Point{X: 16, Y: 15},
			Opponent: Point{X: 51, Y: 15},
		},
		CPU: CPUConfig{
			Easy: SkillConfig{Reaction: 0.6, Aggression: 0.25, Guard: 0.1},
			Hard: SkillConfig{Reaction: 0.12, Aggression: 0.8, Guard: 0.7},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.3,
			Progression: ProgressionConfig{
				Type:  "round",
				MaxAt: 2,
			},
		},
		Names: NamesConfig{
			Player:   "PLAYER",
			Opponent: "CPU",
			Player2:  "PLAYER 2",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "boxing", "boxing_duel":
		return defaultBoxingYAML
	default:
		return nil
	}
}
