package dispatcher

import (
	"github.com/elevlab/dispatch/internal/dispconsts"
	"github.com/elevlab/dispatch/internal/dispevent"
	"github.com/elevlab/dispatch/internal/disprequest"
)

// ReportCarFault takes a car out of rotation and hands its queued and
// pending work to the remaining cars. Queued sweep floors are stored
// as bare ints, so they come back as hall calls with the direction of
// the sweep they sat on. The original callers are not notified; their
// requests are re-routed, not dropped.
func (d *Dispatcher) ReportCarFault(carID int) error {
	car, ok := d.carsByID[carID]
	if !ok {
		return ErrUnknownCar
	}
	car.Fail()

	upFloors, downFloors, pending := car.Drain()

	redistributed := 0
	requeue := func(req disprequest.Request) {
		redistributed++
		if _, assigned := d.tryAssign(req); !assigned {
			d.retryMu.Lock()
			d.retry = append(d.retry, req)
			d.retryMu.Unlock()
		}
	}

	for _, floor := range upFloors {
		req, err := disprequest.NewExternal(floor, dispconsts.Up)
		if err != nil {
			continue
		}
		requeue(req)
	}
	for _, floor := range downFloors {
		req, err := disprequest.NewExternal(floor, dispconsts.Down)
		if err != nil {
			continue
		}
		requeue(req)
	}
	for _, req := range pending {
		requeue(req)
	}

	Log.Error().Msgf("Car %d reported a fault, redistributed %d requests", carID, redistributed)
	d.emit(dispevent.CarFaultEvent{CarID: carID, Redistributed: redistributed}.Wrap())
	return nil
}
