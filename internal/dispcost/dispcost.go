package dispcost

import (
	"github.com/elevlab/dispatch/internal/dispcar"
	"github.com/elevlab/dispatch/internal/disprequest"
)

// Strategy scores a candidate car for a request. Lower is better. Car
// selection policy is deliberately swappable; the dispatcher only ever
// sees this interface.
type Strategy interface {
	Score(car dispcar.Snapshot, req disprequest.Request) int
}

const (
	loadWeight     = 2
	alignmentBonus = 5
)

// Weighted is the default policy: distance to the call floor, a
// penalty per queued stop, and a bonus when the car already travels in
// the requested direction.
type Weighted struct{}

func (Weighted) Score(car dispcar.Snapshot, req disprequest.Request) int {
	cost := abs(car.Floor-req.SourceFloor) + loadWeight*car.Queued
	if car.Direction == req.Direction {
		cost -= alignmentBonus
	}
	return cost
}

// Nearest ignores load and direction and picks the closest car.
type Nearest struct{}

func (Nearest) Score(car dispcar.Snapshot, req disprequest.Request) int {
	return abs(car.Floor - req.SourceFloor)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
