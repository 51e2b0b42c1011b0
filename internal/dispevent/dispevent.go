package dispevent

import (
	"github.com/elevlab/dispatch/internal/dispconsts"
)

// DispatchEvent wraps one of the event structs below. Golang has no
// union types, so consumers switch on Value.
type DispatchEvent struct {
	Value any
}

// CarArrivalEvent is emitted every time a tick moves a car to a floor.
type CarArrivalEvent struct {
	CarID     int
	Floor     int
	Direction dispconsts.Direction
}

func (e CarArrivalEvent) Wrap() DispatchEvent {
	return DispatchEvent{Value: e}
}

// CarIdleEvent is emitted when a car runs out of work and parks.
type CarIdleEvent struct {
	CarID int
	Floor int
}

func (e CarIdleEvent) Wrap() DispatchEvent {
	return DispatchEvent{Value: e}
}

// CarFaultEvent is emitted when a car is taken out of rotation and its
// work has been handed to the remaining cars.
type CarFaultEvent struct {
	CarID         int
	Redistributed int
}

func (e CarFaultEvent) Wrap() DispatchEvent {
	return DispatchEvent{Value: e}
}

// RequestQueuedEvent is emitted when no car had spare capacity and the
// request was parked for retry on a later tick.
type RequestQueuedEvent struct {
	RequestID   string
	SourceFloor int
}

func (e RequestQueuedEvent) Wrap() DispatchEvent {
	return DispatchEvent{Value: e}
}

func (e *DispatchEvent) EventType() string {
	switch e.Value.(type) {
	case CarArrivalEvent:
		return "CarArrivalEvent"
	case CarIdleEvent:
		return "CarIdleEvent"
	case CarFaultEvent:
		return "CarFaultEvent"
	case RequestQueuedEvent:
		return "RequestQueuedEvent"
	default:
		return "UnknownEvent"
	}
}
