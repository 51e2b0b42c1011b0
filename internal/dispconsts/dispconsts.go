package dispconsts

import "time"

// UnassignedCar is returned when no car currently has spare capacity
// and the request was parked on the dispatcher retry queue.
const UnassignedCar = -1

const (
	DefaultFloors       = 8
	DefaultCapacity     = 8
	DefaultTickInterval = 2 * time.Second
)

type Direction int

const (
	Down Direction = -1
	Idle Direction = 0
	Up   Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Idle:
		return "Idle"
	default:
		return "Undefined"
	}
}

// Opposite returns the reversed travel direction. Idle has no
// opposite and maps to itself.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	default:
		return Idle
	}
}

type RequestKind int

const (
	External RequestKind = iota // hall button, not yet tied to a car
	Internal                    // cabin button, bound to one car
)

func (k RequestKind) String() string {
	switch k {
	case External:
		return "External"
	case Internal:
		return "Internal"
	default:
		return "Undefined"
	}
}
