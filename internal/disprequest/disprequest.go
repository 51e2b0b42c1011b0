package disprequest

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/elevlab/dispatch/internal/dispconsts"
)

// NoDestination marks an external request whose destination is not
// known until the rider boards and presses a cabin button.
const NoDestination = -1

var ErrIdleDirection = errors.New("request direction must not be Idle")

// Request is an immutable call description. It is created once at the
// building boundary and never mutated afterwards.
type Request struct {
	ID               string
	SourceFloor      int
	DestinationFloor int
	Direction        dispconsts.Direction
	Kind             dispconsts.RequestKind
}

// NewExternal builds a hall call. The destination stays unknown until
// the rider boards.
func NewExternal(sourceFloor int, direction dispconsts.Direction) (Request, error) {
	if direction == dispconsts.Idle {
		return Request{}, ErrIdleDirection
	}
	return Request{
		ID:               uuid.New().String(),
		SourceFloor:      sourceFloor,
		DestinationFloor: NoDestination,
		Direction:        direction,
		Kind:             dispconsts.External,
	}, nil
}

// NewInternal builds a cabin call. The direction is derived from the
// floor pair; equal floors yield Idle and the caller treats the
// request as a no-op.
func NewInternal(sourceFloor, destinationFloor int) Request {
	direction := dispconsts.Idle
	if destinationFloor > sourceFloor {
		direction = dispconsts.Up
	} else if destinationFloor < sourceFloor {
		direction = dispconsts.Down
	}
	return Request{
		ID:               uuid.New().String(),
		SourceFloor:      sourceFloor,
		DestinationFloor: destinationFloor,
		Direction:        direction,
		Kind:             dispconsts.Internal,
	}
}

func (r Request) String() string {
	if r.Kind == dispconsts.Internal {
		return fmt.Sprintf("%s(%d->%d)", r.Kind, r.SourceFloor, r.DestinationFloor)
	}
	return fmt.Sprintf("%s(%d, %s)", r.Kind, r.SourceFloor, r.Direction)
}
