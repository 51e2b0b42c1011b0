package main

import (
	"github.com/eiannone/keyboard"
	"github.com/rs/zerolog"

	"github.com/elevlab/dispatch/internal/building"
	"github.com/elevlab/dispatch/internal/dispconfig"
	"github.com/elevlab/dispatch/internal/dispconsts"
	"github.com/elevlab/dispatch/internal/logger"
)

var Logger = logger.GetLoggerConfigured(zerolog.InfoLevel)

type printSink struct{}

func (printSink) OnArrival(carID, floor int, direction dispconsts.Direction) {
	Logger.Info().Msgf("Car %d arrived at floor %d heading %s", carID, floor, direction)
}

// Interactive traffic generator. Digit keys press a hall button on
// that floor, u/d choose the hall button direction, c switches the
// next digit to a cabin button on the last assigned car, q quits.
func main() {
	cfg := dispconfig.Default()

	bank, err := building.New(cfg, nil)
	if err != nil {
		Logger.Fatal().Msgf("Failed to construct building: %v", err)
	}
	bank.Notify(printSink{})
	bank.Start()
	defer bank.Stop()

	if err := keyboard.Open(); err != nil {
		Logger.Fatal().Msgf("Failed to open keyboard: %v", err)
	}
	defer keyboard.Close()

	Logger.Info().Msgf("Traffic generator ready: floors 0-%d, %d cars", cfg.Floors-1, len(cfg.Cars))
	Logger.Info().Msg("Keys: [0-9] hall call, [u]/[d] direction, [c] cabin call, [q] quit")

	direction := dispconsts.Up
	cabinMode := false
	lastCar := dispconsts.UnassignedCar

	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			Logger.Error().Msgf("Keyboard read failed: %v", err)
			return
		}
		if key == keyboard.KeyEsc || char == 'q' {
			return
		}

		switch {
		case char == 'u':
			direction = dispconsts.Up
			Logger.Info().Msg("Hall direction set to Up")
		case char == 'd':
			direction = dispconsts.Down
			Logger.Info().Msg("Hall direction set to Down")
		case char == 'c':
			cabinMode = true
			Logger.Info().Msgf("Next digit selects a cabin floor in car %d", lastCar)
		case char >= '0' && char <= '9':
			floor := int(char - '0')
			if cabinMode {
				cabinMode = false
				if lastCar == dispconsts.UnassignedCar {
					Logger.Warn().Msg("No car assigned yet, press a hall call first")
					continue
				}
				if err := bank.SelectFloor(lastCar, floor); err != nil {
					Logger.Error().Msgf("Cabin call failed: %v", err)
					continue
				}
				Logger.Info().Msgf("Cabin call: car %d to floor %d", lastCar, floor)
				continue
			}

			carID, err := bank.RequestElevator(floor, direction)
			if err != nil {
				Logger.Error().Msgf("Hall call failed: %v", err)
				continue
			}
			if carID == dispconsts.UnassignedCar {
				Logger.Warn().Msgf("All cars busy, call at floor %d parked for retry", floor)
				continue
			}
			lastCar = carID
			Logger.Info().Msgf("Hall call: floor %d %s assigned to car %d", floor, direction, carID)
		}
	}
}
