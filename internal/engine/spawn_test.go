package engine

import (
	"testing"

	"github.com/vovakirdan/handheld-arcade/internal/config"
)

func testLanes() Lanes {
	return Lanes{Left: 56, Width: 32, Count: 4}
}

func TestSpawnWaveGap(t *testing.T) {
	cfg := config.DefaultEngineConfig().Enemy
	for seed := int64(0); seed < 200; seed++ {
		enemies := NewPool[Enemy](cfg.Capacity)
		d := NewDirector(testLanes(), cfg, newSeededRandom(seed))

		wave := d.SpawnWave(enemies, 1, 0)

		if len(wave.Lanes) != 3 {
			t.Fatalf("seed %d: spawned %d enemies, expected 3", seed, len(wave.Lanes))
		}
		seen := make(map[int]bool)
		for _, lane := range wave.Lanes {
			if lane == wave.Gap {
				t.Fatalf("seed %d: enemy spawned in gap lane %d", seed, lane)
			}
			if seen[lane] {
				t.Fatalf("seed %d: lane %d used twice", seed, lane)
			}
			seen[lane] = true
		}
	}
}

func TestSpawnWaveStaggered(t *testing.T) {
	cfg := config.DefaultEngineConfig().Enemy
	enemies := NewPool[Enemy](cfg.Capacity)
	d := NewDirector(testLanes(), cfg, newSeededRandom(7))
	d.SpawnWave(enemies, 1, 0)

	prev := 0.0
	enemies.Each(func(slot int, e *Enemy) {
		if e.Y >= prev {
			t.Errorf("enemy %d at y=%v, expected above %v", slot, e.Y, prev)
		}
		prev = e.Y
		if e.Rect().Bottom() > 0 {
			t.Errorf("enemy %d visible at spawn: %+v", slot, e.Rect())
		}
	})
}

func TestSpawnWaveRespectsFreeSlots(t *testing.T) {
	cfg := config.DefaultEngineConfig().Enemy
	enemies := NewPool[Enemy](cfg.Capacity)
	d := NewDirector(testLanes(), cfg, newSeededRandom(3))

	d.SpawnWave(enemies, 1, 0)
	if enemies.Count() != 3 {
		t.Fatalf("Count() = %d, expected 3", enemies.Count())
	}

	wave := d.SpawnWave(enemies, 1, 0)
	if len(wave.Lanes) != 1 {
		t.Errorf("second wave spawned %d, expected 1", len(wave.Lanes))
	}
	if enemies.Count() != cfg.Capacity {
		t.Errorf("Count() = %d, expected %d", enemies.Count(), cfg.Capacity)
	}

	wave = d.SpawnWave(enemies, 1, 0)
	if len(wave.Lanes) != 0 {
		t.Errorf("full pool spawned %d", len(wave.Lanes))
	}
}

func TestSpawnWaveQueuesAboveWaitingEnemies(t *testing.T) {
	cfg := config.DefaultEngineConfig().Enemy
	enemies := NewPool[Enemy](8)
	d := NewDirector(testLanes(), cfg, newSeededRandom(11))

	d.SpawnWave(enemies, 1, 0)
	highest := 0.0
	enemies.Each(func(_ int, e *Enemy) { highest = min(highest, e.Y) })

	d.SpawnWave(enemies, 1, 0)
	for slot := 3; slot < 6; slot++ {
		e := enemies.At(slot)
		if e.Y+float64(cfg.Height) > highest {
			t.Errorf("enemy %d at y=%v overlaps queued enemy at %v", slot, e.Y, highest)
		}
	}
}

func TestSpawnSpeedAndFireTime(t *testing.T) {
	cfg := config.DefaultEngineConfig().Enemy
	enemies := NewPool[Enemy](cfg.Capacity)
	d := NewDirector(testLanes(), cfg, newSeededRandom(5))

	const now = 10000
	d.SpawnWave(enemies, 2, now)
	enemies.Each(func(slot int, e *Enemy) {
		lo := cfg.BaseSpeed + 2*cfg.DifficultyScale
		hi := lo + cfg.SpeedJitter
		if e.Speed < lo || e.Speed > hi {
			t.Errorf("enemy %d speed = %v, expected within [%v, %v]", slot, e.Speed, lo, hi)
		}
		if e.NextFireAt < now+cfg.FireMinMs || e.NextFireAt >= now+cfg.FireMaxMs {
			t.Errorf("enemy %d NextFireAt = %d outside window", slot, e.NextFireAt)
		}
		if x := testLanes().LaneX(e.Lane, cfg.Width); e.Rect().X != x {
			t.Errorf("enemy %d x = %d, expected lane x %d", slot, e.Rect().X, x)
		}
	})
}

func TestShouldSpawn(t *testing.T) {
	cfg := config.DefaultEngineConfig().Enemy
	d := NewDirector(testLanes(), cfg, lowRandom{})

	tests := []struct {
		name     string
		ys       []float64
		expected bool
	}{
		{"empty", nil, true},
		{"all queued", []float64{-20, -50}, false},
		{"lead at gap", []float64{40, -10}, false},
		{"lead past gap", []float64{41, -10}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			enemies := NewPool[Enemy](4)
			for _, y := range tc.ys {
				_, e, _ := enemies.Acquire()
				e.Y = y
			}
			if got := d.ShouldSpawn(enemies); got != tc.expected {
				t.Errorf("ShouldSpawn() = %v, expected %v", got, tc.expected)
			}
		})
	}
}
