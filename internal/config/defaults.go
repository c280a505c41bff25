package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// DefaultEngineConfig returns the built-in engine configuration.
// It mirrors defaults/engine.yaml and is used when the embedded YAML
// cannot be parsed.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Display: DisplayConfig{
			Width:  240,
			Height: 135,
		},
		Frame: FrameConfig{
			BudgetMs:     20,
			GameOverMs:   5000,
			DiagnosticMs: 3000,
		},
		Input: InputConfig{
			Deadzone:      0.15,
			Smoothing:     0.4,
			DebounceMs:    200,
			CenterSamples: 16,
			SampleDelayMs: 5,
			SweepMs:       3000,
		},
		Player: PlayerConfig{
			Width:          22,
			Height:         14,
			BottomMargin:   3,
			MaxSpeed:       4.0,
			Accel:          0.6,
			FireCooldownMs: 300,
		},
		Enemy: EnemyConfig{
			Capacity:        4,
			Width:           28,
			Height:          20,
			BaseSpeed:       0.8,
			SpeedJitter:     0.4,
			DifficultyScale: 0.35,
			SpeedMultiplier: 1.0,
			FireMinMs:       1200,
			FireMaxMs:       2800,
			SpawnGap:        40,
			Stagger:         30,
		},
		Bullets: BulletConfig{
			PlayerCapacity: 6,
			EnemyCapacity:  6,
			Width:          2,
			Height:         6,
			PlayerSpeed:    5.0,
			EnemySpeed:     3.0,
		},
		Collision: CollisionConfig{
			Margin:      3,
			ExplosionMs: 120,
		},
		Scoring: ScoringConfig{
			EnemyReward: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:    true,
			GrowthRate: 0.02,
			Initial:    1.0,
			Max:        4.0,
		},
		Lanes: LanesConfig{
			Count:     4,
			Width:     32,
			EdgeWidth: 2,
		},
		Maze: MazeConfig{
			Cols:           15,
			Rows:           9,
			CellSize:       15,
			TankSize:       11,
			Braiding:       0.3,
			MoveFrames:     5,
			EnemyFrames:    10,
			EnemyCount:     3,
			BulletSpeed:    4.0,
			BulletSize:     3,
			RespawnMs:      2000,
			SteerThreshold: 0.5,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultEngineYAML
}
