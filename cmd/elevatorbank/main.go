package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/xyproto/randomstring"

	"github.com/elevlab/dispatch/internal/bankmeta"
	"github.com/elevlab/dispatch/internal/building"
	"github.com/elevlab/dispatch/internal/dispconfig"
	"github.com/elevlab/dispatch/internal/dispconsts"
	"github.com/elevlab/dispatch/internal/logger"
)

const IDENTIFIER_DEFAULT_LEN = 10

var Logger = logger.GetLoggerConfigured(zerolog.DebugLevel)

type logSink struct{}

func (logSink) OnArrival(carID, floor int, direction dispconsts.Direction) {
	Logger.Info().Msgf("Car %d arrived at floor %d heading %s", carID, floor, direction)
}

func main() {
	help := flag.Bool("help", false, "Show Help Window")
	identifier := flag.String("id", "", "Set the identifier of the bank. Defaults to random string")
	configPath := flag.String("config", "", "Path to the bank YAML config. Defaults to built-in config")
	flag.Parse()

	if *help {
		fmt.Println("Usage: ./elevatorbank [OPTIONS]")
		fmt.Println("Elevator dispatch core")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *identifier == "" {
		*identifier = randomstring.EnglishFrequencyString(IDENTIFIER_DEFAULT_LEN)
		Logger.Warn().Msgf("No bank identifier provided, generated random identifier \"%v\"", *identifier)
	}

	cfg := dispconfig.Default()
	if *configPath != "" {
		loaded, err := dispconfig.Load(*configPath)
		if err != nil {
			Logger.Fatal().Msgf("Failed to load config from %v: %v", *configPath, err)
		}
		cfg = loaded
	}

	bank, err := building.New(cfg, nil)
	if err != nil {
		Logger.Fatal().Msgf("Failed to construct building: %v", err)
	}
	bank.Notify(logSink{})

	meta := &bankmeta.BankMetaData{
		Identifier:   *identifier,
		Floors:       cfg.Floors,
		Cars:         len(cfg.Cars),
		TickInterval: cfg.TickInterval,
	}

	Logger.Info().Msg("Starting Elevator Bank")
	bank.Start()
	Logger.Info().Msgf("Bank: %v", meta.String())

	select {}
}
