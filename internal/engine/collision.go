package engine

import "github.com/vovakirdan/handheld-arcade/internal/core"

// Hit reports whether a, grown by margin on every side, overlaps b.
// The same margin is used for every hit test so thin bullets register
// consistently.
func Hit(a, b core.Rect, margin int) bool {
	return a.Inflate(margin).Intersects(b)
}

// CollideBullets tests every active player bullet against every active
// enemy. On a hit both are released and onHit receives the slots and the
// enemy's rectangle. A bullet destroys at most one enemy.
func CollideBullets(bullets *Pool[Bullet], enemies *Pool[Enemy], margin int, onHit func(bulletSlot, enemySlot int, at core.Rect)) int {
	hits := 0
	bullets.Each(func(bs int, b *Bullet) {
		br := b.Rect()
		for es := 0; es < enemies.Cap(); es++ {
			if !enemies.Active(es) {
				continue
			}
			er := enemies.At(es).Rect()
			if !Hit(er, br, margin) {
				continue
			}
			bullets.Release(bs)
			enemies.Release(es)
			hits++
			if onHit != nil {
				onHit(bs, es, er)
			}
			return
		}
	})
	return hits
}

// CollidePlayer tests every active enemy bullet against the player.
// Hitting bullets are released; the result reports whether any hit.
func CollidePlayer(bullets *Pool[Bullet], player core.Rect, margin int) bool {
	hit := false
	bullets.Each(func(slot int, b *Bullet) {
		if Hit(player, b.Rect(), margin) {
			bullets.Release(slot)
			hit = true
		}
	})
	return hit
}

// CollideBodies reports the first active enemy whose body overlaps the
// player. Bodies are compared without margin.
func CollideBodies(enemies *Pool[Enemy], player core.Rect) (slot int, hit bool) {
	for i := 0; i < enemies.Cap(); i++ {
		if enemies.Active(i) && enemies.At(i).Rect().Intersects(player) {
			return i, true
		}
	}
	return -1, false
}
