package polytris

import "time"

// gravityClock accumulates simulated time and reports when the active piece
// should fall. A clock is bound to one level; it is thrown away and a new
// one created whenever the level changes, the game pauses or the game ends,
// so a discarded clock can never fire.
type gravityClock struct {
	epoch    uint64 // Identifies this clock among all clocks of a game
	level    int
	interval time.Duration
	elapsed  time.Duration
}

func newGravityClock(epoch uint64, level int, interval time.Duration) *gravityClock {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &gravityClock{epoch: epoch, level: level, interval: interval}
}

// advance adds dt and returns how many falls are due.
func (c *gravityClock) advance(dt time.Duration) int {
	c.elapsed += dt
	n := int(c.elapsed / c.interval)
	c.elapsed -= time.Duration(n) * c.interval
	return n
}

// syncGravity brings the clock in line with the current state: no clock
// while paused or over, a fresh clock when there is none or the level moved.
func (g *Game) syncGravity() {
	s := g.state
	if s.Paused || s.GameOver {
		if g.gravity != nil {
			g.logger.Debug("gravity stopped", "epoch", g.gravity.epoch, "paused", s.Paused, "over", s.GameOver)
		}
		g.gravity = nil
		return
	}
	if g.gravity != nil && g.gravity.level == s.Level {
		return
	}

	g.clockEpoch++
	interval := g.cfg.Speed.FallInterval(s.Level)
	g.gravity = newGravityClock(g.clockEpoch, s.Level, interval)
	g.logger.Debug("gravity started", "epoch", g.clockEpoch, "level", s.Level, "interval", interval)
}

// applyGravity runs the falls due this tick. It stops as soon as the clock
// that scheduled them has been replaced.
func (g *Game) applyGravity(dt time.Duration) {
	clock := g.gravity
	if clock == nil {
		return
	}
	for range clock.advance(dt) {
		if g.gravity != clock {
			return
		}
		g.apply(opGravity)
	}
}
