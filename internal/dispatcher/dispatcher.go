package dispatcher

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/elevlab/dispatch/internal/dispcar"
	"github.com/elevlab/dispatch/internal/dispconfig"
	"github.com/elevlab/dispatch/internal/dispconsts"
	"github.com/elevlab/dispatch/internal/dispcost"
	"github.com/elevlab/dispatch/internal/dispevent"
	"github.com/elevlab/dispatch/internal/disprequest"
	"github.com/elevlab/dispatch/internal/logger"
)

var Log = logger.GetLogger()

var (
	ErrUnknownCar     = errors.New("no car with that id")
	ErrCarUnavailable = errors.New("car is out of rotation")
)

const EVENT_CHANNEL_SIZE = 64

// Dispatcher owns the fleet and the tick schedule. It is constructed
// explicitly and passed around; independent banks run independent
// dispatchers.
type Dispatcher struct {
	strategy     dispcost.Strategy
	cars         []*dispcar.Car
	carsByID     map[int]*dispcar.Car
	tickInterval time.Duration

	retryMu sync.Mutex
	retry   []disprequest.Request

	events    chan dispevent.DispatchEvent
	tickChans []chan struct{}
}

func New(cfg dispconfig.Config, strategy dispcost.Strategy) *Dispatcher {
	carConfigs := make([]dispconfig.CarConfig, len(cfg.Cars))
	copy(carConfigs, cfg.Cars)
	sort.Slice(carConfigs, func(i, j int) bool {
		return carConfigs[i].ID < carConfigs[j].ID
	})

	d := &Dispatcher{
		strategy:     strategy,
		carsByID:     make(map[int]*dispcar.Car, len(carConfigs)),
		tickInterval: cfg.TickInterval,
		events:       make(chan dispevent.DispatchEvent, EVENT_CHANNEL_SIZE),
	}
	for _, carConfig := range carConfigs {
		car := dispcar.NewCar(carConfig.ID, 0, carConfig.Capacity)
		d.cars = append(d.cars, car)
		d.carsByID[carConfig.ID] = car
		d.tickChans = append(d.tickChans, make(chan struct{}, 1))
	}
	return d
}

// Assign picks the cheapest available car for req and admits it. Cars
// at capacity are not candidates at all. When every car is full the
// request is parked for retry on a later tick and UnassignedCar is
// returned; the caller is not handed an error for that.
func (d *Dispatcher) Assign(req disprequest.Request) int {
	carID, assigned := d.tryAssign(req)
	if !assigned {
		d.retryMu.Lock()
		d.retry = append(d.retry, req)
		d.retryMu.Unlock()

		Log.Warn().Msgf("No car has spare capacity, queued request %v for retry", req)
		d.emit(dispevent.RequestQueuedEvent{RequestID: req.ID, SourceFloor: req.SourceFloor}.Wrap())
		return dispconsts.UnassignedCar
	}
	return carID
}

func (d *Dispatcher) tryAssign(req disprequest.Request) (int, bool) {
	var best *dispcar.Car
	bestScore := 0

	// Cars are kept sorted by id, so a strict less keeps ties on the
	// lowest id and selection stays reproducible.
	for _, car := range d.cars {
		snapshot := car.Snapshot()
		if !snapshot.Available || snapshot.Load >= snapshot.Capacity {
			continue
		}
		score := d.strategy.Score(snapshot, req)
		if best == nil || score < bestScore {
			best = car
			bestScore = score
		}
	}
	if best == nil {
		return dispconsts.UnassignedCar, false
	}

	if req.Kind == dispconsts.Internal {
		best.AdmitInternal(req.DestinationFloor)
	} else {
		best.AdmitExternal(req)
	}
	Log.Debug().Msgf("Assigned request %v to car %d (score %d)", req, best.ID(), bestScore)
	return best.ID(), true
}

// SelectFloor admits a cabin call on the named car. No cost-based
// selection, the rider already chose their car. A car that has been
// taken out of rotation no longer serves its queues, so admitting
// here would swallow the call.
func (d *Dispatcher) SelectFloor(carID, destinationFloor int) error {
	car, ok := d.carsByID[carID]
	if !ok {
		return ErrUnknownCar
	}
	if !car.Available() {
		return ErrCarUnavailable
	}
	car.AdmitInternal(destinationFloor)
	return nil
}

func (d *Dispatcher) Car(carID int) (*dispcar.Car, bool) {
	car, ok := d.carsByID[carID]
	return car, ok
}

func (d *Dispatcher) Cars() []*dispcar.Car {
	return d.cars
}

// Events exposes the notification stream consumed by the building
// layer. Emission never blocks scheduling; a lagging consumer loses
// events and gets a warning in the log.
func (d *Dispatcher) Events() <-chan dispevent.DispatchEvent {
	return d.events
}

func (d *Dispatcher) emit(event dispevent.DispatchEvent) {
	select {
	case d.events <- event:
	default:
		Log.Warn().Msgf("Event channel full, dropping %s", event.EventType())
	}
}

// TickOnce runs one synchronous scheduling pass: retry parked
// requests, then advance every available car by at most one
// floor-decision. Start drives the same logic periodically.
func (d *Dispatcher) TickOnce() {
	d.retryQueued()
	for _, car := range d.cars {
		d.stepCar(car)
	}
}

func (d *Dispatcher) retryQueued() {
	d.retryMu.Lock()
	parked := d.retry
	d.retry = nil
	d.retryMu.Unlock()

	for _, req := range parked {
		if _, assigned := d.tryAssign(req); !assigned {
			d.retryMu.Lock()
			d.retry = append(d.retry, req)
			d.retryMu.Unlock()
		}
	}
}

func (d *Dispatcher) stepCar(car *dispcar.Car) {
	if !car.Available() {
		return
	}
	// NextFloor pops the stop and moves the car in one critical
	// section, so admissions interleaving with the tick always see
	// the floor being served.
	floor, ok := car.NextFloor()
	if !ok {
		return
	}
	d.emit(dispevent.CarArrivalEvent{
		CarID:     car.ID(),
		Floor:     floor,
		Direction: car.Direction(),
	}.Wrap())

	if !car.WorkRemaining() {
		d.emit(dispevent.CarIdleEvent{CarID: car.ID(), Floor: floor}.Wrap())
	}
}

// Start launches one worker goroutine per car plus the periodic
// driver. The driver broadcasts ticks with non-blocking sends; a car
// still busy with the previous tick skips one instead of stalling the
// rest of the bank.
func (d *Dispatcher) Start(ctx context.Context, waitGroup *sync.WaitGroup) {
	for i, car := range d.cars {
		waitGroup.Add(1)
		go func(car *dispcar.Car, tick <-chan struct{}) {
			defer waitGroup.Done()
			for {
				select {
				case <-ctx.Done():
					Log.Warn().Msgf("Car %d worker has been signaled to stop", car.ID())
					return
				case <-tick:
					d.stepCar(car)
				}
			}
		}(car, d.tickChans[i])
	}

	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		ticker := time.NewTicker(d.tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				Log.Warn().Msgf("Dispatcher driver has been signaled to stop")
				return
			case <-ticker.C:
				d.retryQueued()
				for _, tick := range d.tickChans {
					select {
					case tick <- struct{}{}:
					default:
					}
				}
			}
		}
	}()
}
