package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
// A session that receives it must not start.
var ErrInvalid = errors.New("invalid configuration")

// Limits checked by Validate.
const (
	MinLanes      = 2 // One enemy lane plus the guaranteed gap
	MinDebounceMs = 150
	MaxDebounceMs = 250
	MinMazeCells  = 5
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: %w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks the settings shared by every variant.
func (c EngineConfig) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return invalid("display %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Frame.BudgetMs == 0 {
		return invalid("frame budget must be positive")
	}
	if c.Input.Deadzone < 0 || c.Input.Deadzone >= 1 {
		return invalid("deadzone %.2f outside [0, 1)", c.Input.Deadzone)
	}
	if c.Input.Smoothing <= 0 || c.Input.Smoothing > 1 {
		return invalid("smoothing %.2f outside (0, 1]", c.Input.Smoothing)
	}
	if c.Input.DebounceMs < MinDebounceMs || c.Input.DebounceMs > MaxDebounceMs {
		return invalid("debounce %dms outside [%d, %d]", c.Input.DebounceMs, MinDebounceMs, MaxDebounceMs)
	}
	if c.Input.CenterSamples < 1 {
		return invalid("center samples must be positive")
	}
	if c.Bullets.PlayerCapacity < 1 || c.Bullets.EnemyCapacity < 1 {
		return invalid("bullet pools need at least one slot")
	}
	if c.Collision.Margin < 0 {
		return invalid("negative collision margin")
	}
	return nil
}

// ValidateLanes checks the lane-dodge layout.
func (c EngineConfig) ValidateLanes() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Lanes.Count < MinLanes {
		return invalid("lane count %d below minimum %d", c.Lanes.Count, MinLanes)
	}
	if c.Lanes.Width < c.Enemy.Width || c.Lanes.Width < c.Player.Width {
		return invalid("lane width %d narrower than sprites", c.Lanes.Width)
	}
	if road := c.Lanes.Count*c.Lanes.Width + 2*c.Lanes.EdgeWidth; road > c.Display.Width {
		return invalid("road width %d exceeds display", road)
	}
	if c.Enemy.Capacity < 1 {
		return invalid("enemy pool needs at least one slot")
	}
	if c.Enemy.FireMaxMs < c.Enemy.FireMinMs {
		return invalid("enemy fire window [%d, %d] inverted", c.Enemy.FireMinMs, c.Enemy.FireMaxMs)
	}
	if c.Player.MaxSpeed <= 0 || c.Player.Accel <= 0 {
		return invalid("player speed and acceleration must be positive")
	}
	return nil
}

// ValidateMaze checks the grid-maze layout.
func (c EngineConfig) ValidateMaze() error {
	if err := c.Validate(); err != nil {
		return err
	}
	m := c.Maze
	if m.Cols < MinMazeCells || m.Rows < MinMazeCells {
		return invalid("maze %dx%d below %dx%d", m.Cols, m.Rows, MinMazeCells, MinMazeCells)
	}
	if m.Cols*m.CellSize > c.Display.Width || m.Rows*m.CellSize > c.Display.Height {
		return invalid("maze %dx%d cells of %dpx exceeds display", m.Cols, m.Rows, m.CellSize)
	}
	if m.TankSize <= 0 || m.TankSize > m.CellSize {
		return invalid("tank size %d does not fit cell %d", m.TankSize, m.CellSize)
	}
	if m.MoveFrames < 1 || m.EnemyFrames < 1 {
		return invalid("maze move frames must be positive")
	}
	if m.EnemyCount < 1 {
		return invalid("maze needs at least one enemy")
	}
	return nil
}
