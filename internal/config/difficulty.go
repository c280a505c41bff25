package config

// DifficultyManager derives the difficulty scalar from session time.
// The scalar starts at Initial and grows linearly:
//
//	scalar = initial + elapsed_seconds * growth_rate
//
// With the default initial of 1 this is the classic 1 + t*rate curve.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	if cfg.Initial < 1 {
		cfg.Initial = 1
	}
	return &DifficultyManager{cfg: cfg}
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.GrowthRate > 0
}

// Scalar returns the difficulty scalar after elapsedMs of play.
func (d *DifficultyManager) Scalar(elapsedMs uint32) float64 {
	if !d.IsEnabled() {
		return d.cfg.Initial
	}
	s := d.cfg.Initial + float64(elapsedMs)/1000*d.cfg.GrowthRate
	if d.cfg.Max > 0 && s > d.cfg.Max {
		s = max(d.cfg.Max, d.cfg.Initial)
	}
	return s
}
