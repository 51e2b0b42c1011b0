package dispcar

import (
	"github.com/elevlab/dispatch/internal/dispconsts"
)

// NextFloor performs one LOOK step: serve the nearest floor in the
// current direction, reverse only when that sweep is exhausted, park
// when nothing is left anywhere. The second return value is false when
// the car has no floor to visit this tick.
//
// The car never reverses while its active-direction queue is
// non-empty. The pop and the floor update happen under one lock, so a
// concurrent admission always tests against the floor being served
// and can never slot a stop behind the sweep.
func (c *Car) NextFloor() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.direction {
	case dispconsts.Up:
		if c.up.Len() > 0 {
			return c.serveUp(), true
		}
		c.flipTo(c.direction.Opposite())
		if c.down.Len() > 0 {
			return c.serveDown(), true
		}
	case dispconsts.Down:
		if c.down.Len() > 0 {
			return c.serveDown(), true
		}
		c.flipTo(c.direction.Opposite())
		if c.up.Len() > 0 {
			return c.serveUp(), true
		}
	case dispconsts.Idle:
		c.reprocessPendingLocked()
		if c.up.Len() > 0 {
			c.direction = dispconsts.Up
			return c.serveUp(), true
		}
		if c.down.Len() > 0 {
			c.direction = dispconsts.Down
			return c.serveDown(), true
		}
	}

	// The flip may have fed the opposite queue through reprocessing.
	if c.up.Len() > 0 {
		c.direction = dispconsts.Up
		return c.serveUp(), true
	}
	if c.down.Len() > 0 {
		c.direction = dispconsts.Down
		return c.serveDown(), true
	}

	// Both sweeps are empty. With no sweep left to protect, pending
	// requests are re-admitted under the Idle rule so they cannot sit
	// here forever.
	if len(c.pending) > 0 {
		c.direction = dispconsts.Idle
		c.reprocessPendingLocked()
		if c.up.Len() > 0 {
			c.direction = dispconsts.Up
			return c.serveUp(), true
		}
		if c.down.Len() > 0 {
			c.direction = dispconsts.Down
			return c.serveDown(), true
		}
	}

	c.direction = dispconsts.Idle
	return 0, false
}

// serveUp pops the next stop of the up sweep and moves the car there.
func (c *Car) serveUp() int {
	floor := c.popUp()
	c.currentFloor = floor
	return floor
}

func (c *Car) serveDown() int {
	floor := c.popDown()
	c.currentFloor = floor
	return floor
}

// flipTo reverses the sweep and gives pending requests a chance to
// join a queue under the new direction.
func (c *Car) flipTo(direction dispconsts.Direction) {
	c.direction = direction
	c.reprocessPendingLocked()
}

// reprocessPendingLocked re-runs the admission test for every pending
// request under the current direction. Compatible ones move into a
// queue, the rest stay pending in arrival order.
func (c *Car) reprocessPendingLocked() {
	if len(c.pending) == 0 {
		return
	}

	remaining := c.pending[:0]
	for _, req := range c.pending {
		if c.direction == dispconsts.Idle {
			switch {
			case req.SourceFloor > c.currentFloor:
				c.pushUp(req.SourceFloor)
			case req.SourceFloor < c.currentFloor:
				c.pushDown(req.SourceFloor)
			case req.Direction == dispconsts.Up:
				c.pushUp(req.SourceFloor)
			default:
				c.pushDown(req.SourceFloor)
			}
			continue
		}

		switch {
		case req.Direction == dispconsts.Up && req.SourceFloor > c.currentFloor:
			c.pushUp(req.SourceFloor)
		case req.Direction == dispconsts.Down && req.SourceFloor < c.currentFloor:
			c.pushDown(req.SourceFloor)
		default:
			remaining = append(remaining, req)
		}
	}
	c.pending = remaining
}

// Direction returns the current travel intent.
func (c *Car) Direction() dispconsts.Direction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.direction
}

// Floor returns the current floor.
func (c *Car) Floor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentFloor
}

// WorkRemaining reports whether any storage structure holds a request.
func (c *Car) WorkRemaining() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up.Len() > 0 || c.down.Len() > 0 || len(c.pending) > 0
}
