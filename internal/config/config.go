// Package config provides YAML-based bout configuration, difficulty presets
// and process environment for ringside.
package config

// BoxingConfig contains all configuration for a boxing bout.
type BoxingConfig struct {
	Fighter    FighterConfig    `yaml:"fighter"`
	Animations AnimationConfig  `yaml:"animations"`
	Ring       RingConfig       `yaml:"ring"`
	Combat     CombatConfig     `yaml:"combat"`
	Rounds     RoundsConfig     `yaml:"rounds"`
	Corners    CornersConfig    `yaml:"corners"`
	CPU        CPUConfig        `yaml:"cpu"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Names      NamesConfig      `yaml:"names"`
}

// FighterConfig defines the physical model shared by both fighters.
type FighterConfig struct {
	Speed       float64 `yaml:"speed"` // world units per second
	MaxLife     float64 `yaml:"max_life"`
	BlockFactor float64 `yaml:"block_factor"` // share of damage taken while blocking
}

// AnimationConfig defines how long each state's animation runs.
// Each state plays Frames frames of its own frame duration.
type AnimationConfig struct {
	Frames int `yaml:"frames"`

	FrameDuration StateDurations `yaml:"frame_duration"`
}

// StateDurations holds one value per fighter state, in seconds.
type StateDurations struct {
	Idle  float64 `yaml:"idle"`
	Walk  float64 `yaml:"walk"`
	Block float64 `yaml:"block"`
	Punch float64 `yaml:"punch"`
	Kick  float64 `yaml:"kick"`
	Hurt  float64 `yaml:"hurt"`
	Win   float64 `yaml:"win"`
	Lose  float64 `yaml:"lose"`
}

// RingConfig defines the trapezoid the fighters are kept in.
type RingConfig struct {
	MinX  float64 `yaml:"min_x"`
	MaxX  float64 `yaml:"max_x"`
	MinY  float64 `yaml:"min_y"`
	MaxY  float64 `yaml:"max_y"`
	Slope float64 `yaml:"slope"`
}

// CombatConfig defines reach and damage.
type CombatConfig struct {
	ReachX      float64 `yaml:"reach_x"`
	ReachY      float64 `yaml:"reach_y"`
	HitStrength float64 `yaml:"hit_strength"`
}

// RoundsConfig defines match structure and timing.
type RoundsConfig struct {
	MaxRounds    int     `yaml:"max_rounds"`
	StartDelay   float64 `yaml:"start_delay"`
	EndDelay     float64 `yaml:"end_delay"`
	RoundTime    float64 `yaml:"round_time"`
	CriticalTime float64 `yaml:"critical_time"`
	TieBreak     string  `yaml:"tie_break"` // "player" or "opponent"
}

// Point is a ring position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// CornersConfig defines where fighters stand at the start of each round.
type CornersConfig struct {
	Player   Point `yaml:"player"`
	Opponent Point `yaml:"opponent"`
}

// CPUConfig bounds the computer opponent. Difficulty level 0 plays like
// Easy and level 1 like Hard; levels in between are interpolated.
type CPUConfig struct {
	Easy SkillConfig `yaml:"easy"`
	Hard SkillConfig `yaml:"hard"`
}

// SkillConfig is one end of the CPU skill range.
type SkillConfig struct {
	Reaction   float64 `yaml:"reaction"` // seconds between decisions
	Aggression float64 `yaml:"aggression"`
	Guard      float64 `yaml:"guard"`
}

// NamesConfig defines the names shown on the HUD.
type NamesConfig struct {
	Player   string `yaml:"player"`
	Opponent string `yaml:"opponent"`
	Player2  string `yaml:"player2"` // opponent name in hot-seat bouts
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how difficulty increases over a match.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "round", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Round or ticks at which max difficulty is reached
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	if name == "" {
		return DifficultyNormal, true
	}
	for _, p := range Presets {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Label is the short HUD caption for a preset.
func (p DifficultyPreset) Label() string {
	switch p {
	case DifficultyEasy:
		return "EASY"
	case DifficultyHard:
		return "HARD"
	case DifficultyFixed:
		return "FIXED"
	default:
		return "MEDIUM"
	}
}
