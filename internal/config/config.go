// Package config provides YAML-based engine tuning and difficulty
// management for the handheld arcade.
package config

// EngineConfig holds every tunable constant of the engine.
// Defaults live in DefaultEngineConfig and the embedded engine.yaml.
type EngineConfig struct {
	Display    DisplayConfig    `yaml:"display"`
	Frame      FrameConfig      `yaml:"frame"`
	Input      InputConfig      `yaml:"input"`
	Player     PlayerConfig     `yaml:"player"`
	Enemy      EnemyConfig      `yaml:"enemy"`
	Bullets    BulletConfig     `yaml:"bullets"`
	Collision  CollisionConfig  `yaml:"collision"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Lanes      LanesConfig      `yaml:"lanes"`
	Maze       MazeConfig       `yaml:"maze"`
}

// DisplayConfig describes the panel the engine draws to.
type DisplayConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FrameConfig defines frame pacing and the blocking waits of a session.
type FrameConfig struct {
	BudgetMs     uint32 `yaml:"budget_ms"`     // Frame budget
	GameOverMs   uint32 `yaml:"game_over_ms"`  // Restart/exit window after a loss
	DiagnosticMs uint32 `yaml:"diagnostic_ms"` // How long a configuration error stays on screen
}

// InputConfig defines joystick conditioning and button debouncing.
type InputConfig struct {
	Deadzone      float64 `yaml:"deadzone"`  // Ratio of the half range mapped to zero
	Smoothing     float64 `yaml:"smoothing"` // Weight of the newest sample
	DebounceMs    uint32  `yaml:"debounce_ms"`
	CenterSamples int     `yaml:"center_samples"`
	SampleDelayMs uint32  `yaml:"sample_delay_ms"`
	SweepMs       uint32  `yaml:"sweep_ms"`
	InvertX       bool    `yaml:"invert_x"`
	InvertY       bool    `yaml:"invert_y"`
}

// PlayerConfig defines the player's sprite and movement.
type PlayerConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	BottomMargin   int     `yaml:"bottom_margin"`
	MaxSpeed       float64 `yaml:"max_speed"` // Pixels per frame
	Accel          float64 `yaml:"accel"`     // Max velocity change per frame
	FireCooldownMs uint32  `yaml:"fire_cooldown_ms"`
}

// EnemyConfig defines the enemy pool, descent and fire timing.
type EnemyConfig struct {
	Capacity        int     `yaml:"capacity"`
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	BaseSpeed       float64 `yaml:"base_speed"`
	SpeedJitter     float64 `yaml:"speed_jitter"`     // Max random extra speed
	DifficultyScale float64 `yaml:"difficulty_scale"` // Speed added per difficulty unit
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	FireMinMs       uint32  `yaml:"fire_min_ms"`
	FireMaxMs       uint32  `yaml:"fire_max_ms"`
	SpawnGap        int     `yaml:"spawn_gap"` // Pixels the lead enemy must travel before the next wave
	Stagger         int     `yaml:"stagger"`   // Vertical spacing inside a wave
}

// BulletConfig defines both bullet pools.
type BulletConfig struct {
	PlayerCapacity int     `yaml:"player_capacity"`
	EnemyCapacity  int     `yaml:"enemy_capacity"`
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	PlayerSpeed    float64 `yaml:"player_speed"`
	EnemySpeed     float64 `yaml:"enemy_speed"`
}

// CollisionConfig defines hit tolerance and the explosion flash.
type CollisionConfig struct {
	Margin      int    `yaml:"margin"`
	ExplosionMs uint32 `yaml:"explosion_ms"`
}

// ScoringConfig defines score rewards.
type ScoringConfig struct {
	EnemyReward int `yaml:"enemy_reward"`
}

// DifficultyConfig defines the time-based difficulty scalar.
type DifficultyConfig struct {
	Enabled    bool    `yaml:"enabled"`
	GrowthRate float64 `yaml:"growth_rate"` // Scalar increase per elapsed second
	Initial    float64 `yaml:"initial"`     // Scalar at session start (>= 1)
	Max        float64 `yaml:"max"`         // Cap, 0 = uncapped
}

// LanesConfig defines the lane-dodge road layout.
type LanesConfig struct {
	Count     int `yaml:"count"`
	Width     int `yaml:"width"`
	EdgeWidth int `yaml:"edge_width"`
}

// MazeConfig defines the grid-maze variant.
type MazeConfig struct {
	Cols           int     `yaml:"cols"`
	Rows           int     `yaml:"rows"`
	CellSize       int     `yaml:"cell_size"`
	TankSize       int     `yaml:"tank_size"`
	Braiding       float64 `yaml:"braiding"`
	MoveFrames     int     `yaml:"move_frames"`  // Frames the player needs per cell
	EnemyFrames    int     `yaml:"enemy_frames"` // Frames an enemy needs per cell at difficulty 1
	EnemyCount     int     `yaml:"enemy_count"`
	BulletSpeed    float64 `yaml:"bullet_speed"`
	BulletSize     int     `yaml:"bullet_size"`
	RespawnMs      uint32  `yaml:"respawn_ms"`
	SteerThreshold float64 `yaml:"steer_threshold"` // Signal magnitude needed to steer
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown values return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *EngineConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.GrowthRate *= 0.5
		cfg.Player.FireCooldownMs = cfg.Player.FireCooldownMs * 3 / 4
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.GrowthRate *= 1.5
		cfg.Difficulty.Initial += 0.5
		cfg.Enemy.FireMinMs = cfg.Enemy.FireMinMs * 2 / 3
		cfg.Enemy.FireMaxMs = cfg.Enemy.FireMaxMs * 2 / 3
	case DifficultyNormal:
		cfg.Difficulty.Enabled = true
	}
}
