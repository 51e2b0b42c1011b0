package building

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/elevlab/dispatch/internal/dispatcher"
	"github.com/elevlab/dispatch/internal/dispconfig"
	"github.com/elevlab/dispatch/internal/dispconsts"
	"github.com/elevlab/dispatch/internal/dispcost"
	"github.com/elevlab/dispatch/internal/dispevent"
	"github.com/elevlab/dispatch/internal/disprequest"
	"github.com/elevlab/dispatch/internal/logger"
)

var Log = logger.GetLogger()

var ErrInvalidFloor = errors.New("floor outside the building")

// ArrivalSink receives a notification each time a tick moves a car to
// a floor. Door control and displays live behind this interface, the
// scheduling core never calls them directly.
type ArrivalSink interface {
	OnArrival(carID, floor int, direction dispconsts.Direction)
}

// Building is the single entry point external callers use. It
// validates floors, turns button presses into requests, and fans
// dispatcher events out to registered sinks.
type Building struct {
	cfg        dispconfig.Config
	dispatcher *dispatcher.Dispatcher

	sinkMu sync.Mutex
	sinks  []ArrivalSink

	initialised bool
	running     bool

	// graceful shutdown, last started is first stopped
	waitGroupArray []*sync.WaitGroup
	cancelArray    []context.CancelFunc
}

func New(cfg dispconfig.Config, strategy dispcost.Strategy) (*Building, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if strategy == nil {
		strategy = dispcost.Weighted{}
	}
	return &Building{
		cfg:         cfg,
		dispatcher:  dispatcher.New(cfg, strategy),
		initialised: true,
	}, nil
}

// RequestElevator handles a hall button press. It returns the id of
// the car the call was assigned to, or UnassignedCar when every car is
// full and the call was parked for retry.
func (b *Building) RequestElevator(floor int, direction dispconsts.Direction) (int, error) {
	if err := b.checkFloor(floor); err != nil {
		return dispconsts.UnassignedCar, err
	}
	req, err := disprequest.NewExternal(floor, direction)
	if err != nil {
		return dispconsts.UnassignedCar, err
	}
	return b.dispatcher.Assign(req), nil
}

// SelectFloor handles a cabin button press inside the named car. A
// destination equal to the car's current floor is silently ignored.
func (b *Building) SelectFloor(carID, destinationFloor int) error {
	if err := b.checkFloor(destinationFloor); err != nil {
		return err
	}
	return b.dispatcher.SelectFloor(carID, destinationFloor)
}

func (b *Building) checkFloor(floor int) error {
	if floor < 0 || floor >= b.cfg.Floors {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidFloor, floor, b.cfg.Floors)
	}
	return nil
}

// Notify registers a sink for arrival notifications. Safe to call
// before or after Start.
func (b *Building) Notify(sink ArrivalSink) {
	b.sinkMu.Lock()
	defer b.sinkMu.Unlock()
	b.sinks = append(b.sinks, sink)
}

func (b *Building) Dispatcher() *dispatcher.Dispatcher {
	return b.dispatcher
}

// Start launches the dispatcher and the event fan-out, one component
// at a time.
func (b *Building) Start() {
	if !b.initialised {
		Log.Error().Msg("Building not initialised")
		return
	}
	if b.running {
		Log.Error().Msg("Building already running")
		return
	}

	ctxFanout, cancelFanout := context.WithCancel(context.Background())
	wgFanout := &sync.WaitGroup{}
	b.waitGroupArray = append(b.waitGroupArray, wgFanout)
	b.cancelArray = append(b.cancelArray, cancelFanout)
	wgFanout.Add(1)
	go func() {
		defer wgFanout.Done()
		b.fanOut(ctxFanout)
	}()

	ctxDispatch, cancelDispatch := context.WithCancel(context.Background())
	wgDispatch := &sync.WaitGroup{}
	b.waitGroupArray = append(b.waitGroupArray, wgDispatch)
	b.cancelArray = append(b.cancelArray, cancelDispatch)
	b.dispatcher.Start(ctxDispatch, wgDispatch)

	b.running = true
}

// Stop shuts the components down in reverse start order.
func (b *Building) Stop() {
	if !b.running {
		Log.Error().Msg("Building not running, so cannot stop it")
		return
	}

	Log.Debug().Msg("Stopping Building")
	for i := len(b.cancelArray) - 1; i >= 0; i-- {
		b.cancelArray[i]()
		b.waitGroupArray[i].Wait()
	}
	b.cancelArray = nil
	b.waitGroupArray = nil
	Log.Debug().Msg("Stopped Building")
	b.running = false
}

func (b *Building) fanOut(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			Log.Warn().Msg("Building fan-out has been signaled to stop")
			return
		case event := <-b.dispatcher.Events():
			b.handleEvent(event)
		}
	}
}

func (b *Building) handleEvent(event dispevent.DispatchEvent) {
	switch evnt := event.Value.(type) {
	case dispevent.CarArrivalEvent:
		b.sinkMu.Lock()
		sinks := make([]ArrivalSink, len(b.sinks))
		copy(sinks, b.sinks)
		b.sinkMu.Unlock()
		for _, sink := range sinks {
			sink.OnArrival(evnt.CarID, evnt.Floor, evnt.Direction)
		}
	case dispevent.CarIdleEvent:
		Log.Debug().Msgf("Car %d parked at floor %d", evnt.CarID, evnt.Floor)
	case dispevent.CarFaultEvent:
		Log.Error().Msgf("Car %d out of rotation, %d requests re-routed", evnt.CarID, evnt.Redistributed)
	case dispevent.RequestQueuedEvent:
		Log.Warn().Msgf("Request %s from floor %d waiting for a free car", evnt.RequestID, evnt.SourceFloor)
	}
}
