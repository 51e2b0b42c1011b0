package dispcar

import (
	"container/heap"
	"errors"
	"sync"

	"github.com/elevlab/dispatch/internal/dispconsts"
	"github.com/elevlab/dispatch/internal/disprequest"
	"github.com/elevlab/dispatch/internal/logger"
)

var Log = logger.GetLogger()

var ErrCarFull = errors.New("car is at capacity")

// Car is one elevator unit. All state behind the mutex; the dispatcher
// touches a Car either through admission or through the tick step, and
// both serialize here. Cars never coordinate with each other.
type Car struct {
	mu sync.Mutex

	id           int
	currentFloor int
	direction    dispconsts.Direction
	capacity     int
	load         int
	available    bool

	up      *floorHeap
	down    *floorHeap
	queued  map[int]bool // floors present in either heap
	pending []disprequest.Request
}

func NewCar(id, startFloor, capacity int) *Car {
	return &Car{
		id:           id,
		currentFloor: startFloor,
		direction:    dispconsts.Idle,
		capacity:     capacity,
		available:    true,
		up:           &floorHeap{},
		down:         &floorHeap{max: true},
		queued:       make(map[int]bool),
	}
}

func (c *Car) ID() int {
	return c.id
}

// AdmitExternal accepts a hall call. Calls that cannot be served on
// the current sweep without reversing early go to the pending queue
// and are re-tested whenever the direction flips.
func (c *Car) AdmitExternal(req disprequest.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.admitExternalLocked(req)
}

func (c *Car) admitExternalLocked(req disprequest.Request) {
	if c.direction == dispconsts.Idle {
		// No sweep to protect, everything is compatible.
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
		return
	}

	switch {
	case req.Direction == dispconsts.Up && req.SourceFloor > c.currentFloor:
		c.pushUp(req.SourceFloor)
	case req.Direction == dispconsts.Down && req.SourceFloor < c.currentFloor:
		c.pushDown(req.SourceFloor)
	default:
		// Behind the sweep or direction mismatch, park it.
		c.pending = append(c.pending, req)
		Log.Debug().Msgf("Car %d parked request %v as pending", c.id, req)
	}
}

// AdmitInternal accepts a cabin call. The rider is inside, so there is
// no pending option; a destination equal to the current floor is a
// no-op.
func (c *Car) AdmitInternal(destinationFloor int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case destinationFloor > c.currentFloor:
		c.pushUp(destinationFloor)
	case destinationFloor < c.currentFloor:
		c.pushDown(destinationFloor)
	}
}

func (c *Car) pushUp(floor int) {
	if c.queued[floor] {
		return
	}
	c.queued[floor] = true
	heap.Push(c.up, floor)
}

func (c *Car) pushDown(floor int) {
	if c.queued[floor] {
		return
	}
	c.queued[floor] = true
	heap.Push(c.down, floor)
}

func (c *Car) popUp() int {
	floor := heap.Pop(c.up).(int)
	delete(c.queued, floor)
	return floor
}

func (c *Car) popDown() int {
	floor := heap.Pop(c.down).(int)
	delete(c.queued, floor)
	return floor
}

// Arrive places the car at floor. NextFloor moves the car itself when
// it serves a stop; this exists for startup positioning and for
// collaborators that model movement outside the tick loop.
func (c *Car) Arrive(floor int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentFloor = floor
}

// Board adds one rider. The dispatcher excludes full cars from
// assignment, so hitting the limit here means the coarse count and
// the physical world disagree.
func (c *Car) Board() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.load >= c.capacity {
		return ErrCarFull
	}
	c.load++
	return nil
}

func (c *Car) Disembark() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.load > 0 {
		c.load--
	}
}

// Fail takes the car out of rotation.
func (c *Car) Fail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.available = false
}

func (c *Car) Available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.available
}

// Drain empties all three storage structures and parks the car. It
// returns the queued sweep floors and the untouched pending requests
// so the dispatcher can hand them to other cars.
func (c *Car) Drain() (upFloors, downFloors []int, pending []disprequest.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for c.up.Len() > 0 {
		upFloors = append(upFloors, c.popUp())
	}
	for c.down.Len() > 0 {
		downFloors = append(downFloors, c.popDown())
	}
	pending = c.pending
	c.pending = nil
	c.direction = dispconsts.Idle
	return upFloors, downFloors, pending
}

// Snapshot is a read-consistent view used for cost scoring.
type Snapshot struct {
	ID        int
	Floor     int
	Direction dispconsts.Direction
	Queued    int
	Load      int
	Capacity  int
	Available bool
}

func (c *Car) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		ID:        c.id,
		Floor:     c.currentFloor,
		Direction: c.direction,
		Queued:    c.up.Len() + c.down.Len() + len(c.pending),
		Load:      c.load,
		Capacity:  c.capacity,
		Available: c.available,
	}
}
