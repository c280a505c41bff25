package engine

import "testing"

func TestPoolFireBeyondCapacity(t *testing.T) {
	bullets := NewPool[Bullet](6)
	fired := 0
	for i := 0; i < 7; i++ {
		if _, _, ok := bullets.Acquire(); ok {
			fired++
		}
	}
	if fired != 6 {
		t.Errorf("fired = %d, expected 6", fired)
	}
	if bullets.Count() != 6 {
		t.Errorf("Count() = %d, expected 6", bullets.Count())
	}
	if bullets.Free() != 0 {
		t.Errorf("Free() = %d, expected 0", bullets.Free())
	}
}

func TestPoolFullAcquireKeepsActiveSlots(t *testing.T) {
	p := NewPool[Bullet](2)
	_, a, _ := p.Acquire()
	a.Y = 10
	_, b, _ := p.Acquire()
	b.Y = 20

	if _, _, ok := p.Acquire(); ok {
		t.Fatal("Acquire() on full pool succeeded")
	}
	if p.At(0).Y != 10 || p.At(1).Y != 20 {
		t.Errorf("active slots changed: %v, %v", p.At(0).Y, p.At(1).Y)
	}
}

func TestPoolReuseLowestSlot(t *testing.T) {
	p := NewPool[Enemy](4)
	for i := 0; i < 4; i++ {
		p.Acquire()
	}
	p.Release(2)
	p.Release(1)
	p.Release(1) // No-op

	if p.Count() != 2 {
		t.Errorf("Count() = %d, expected 2", p.Count())
	}
	slot, e, ok := p.Acquire()
	if !ok || slot != 1 {
		t.Errorf("Acquire() = %d, %v, expected 1, true", slot, ok)
	}
	if e.Y != 0 {
		t.Errorf("acquired item not zeroed: %+v", e)
	}
}

func TestPoolEachRelease(t *testing.T) {
	p := NewPool[Bullet](5)
	for i := 0; i < 5; i++ {
		_, b, _ := p.Acquire()
		b.Y = float64(i)
	}

	var visited []int
	p.Each(func(slot int, b *Bullet) {
		visited = append(visited, slot)
		if slot%2 == 0 {
			p.Release(slot)
		}
	})

	if len(visited) != 5 {
		t.Errorf("visited %v, expected 5 slots", visited)
	}
	if p.Count() != 2 {
		t.Errorf("Count() = %d, expected 2", p.Count())
	}
	if p.Active(0) || !p.Active(1) || p.Active(4) {
		t.Errorf("unexpected active set after Each")
	}
}

func TestPoolResetAndBounds(t *testing.T) {
	p := NewPool[Bullet](3)
	p.Acquire()
	p.Acquire()
	p.Reset()

	if p.Count() != 0 || p.Free() != 3 {
		t.Errorf("after Reset Count() = %d, Free() = %d", p.Count(), p.Free())
	}
	if p.Active(-1) || p.Active(3) {
		t.Error("Active() out of range reported true")
	}
	p.Release(7) // No panic
}
