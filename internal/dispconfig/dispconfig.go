package dispconfig

import (
	"fmt"
	"os"
	"time"

	"github.com/go-yaml/yaml"

	"github.com/elevlab/dispatch/internal/dispconsts"
	"github.com/elevlab/dispatch/internal/logger"
)

var Log = logger.GetLogger()

type CarConfig struct {
	ID       int `yaml:"ID"`
	Capacity int `yaml:"Capacity"`
}

type Config struct {
	Floors       int           `yaml:"Floors"`
	TickInterval time.Duration `yaml:"TickInterval"`
	Cars         []CarConfig   `yaml:"Cars"`
}

// The yaml package cannot decode "2s" into a time.Duration on its
// own, so the interval is read as a string and parsed.
type rawConfig struct {
	Floors       int         `yaml:"Floors"`
	TickInterval string      `yaml:"TickInterval"`
	Cars         []CarConfig `yaml:"Cars"`
}

func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	raw := rawConfig{}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	c.Floors = raw.Floors
	c.Cars = raw.Cars
	c.TickInterval = dispconsts.DefaultTickInterval
	if raw.TickInterval != "" {
		interval, err := time.ParseDuration(raw.TickInterval)
		if err != nil {
			return fmt.Errorf("parsing tick interval: %w", err)
		}
		c.TickInterval = interval
	}
	return nil
}

// Default returns a two-car bank matching the lab rig dimensions.
func Default() Config {
	return Config{
		Floors:       dispconsts.DefaultFloors,
		TickInterval: dispconsts.DefaultTickInterval,
		Cars: []CarConfig{
			{ID: 0, Capacity: dispconsts.DefaultCapacity},
			{ID: 1, Capacity: dispconsts.DefaultCapacity},
		},
	}
}

// Load reads a YAML bank description from path and validates it.
func Load(path string) (Config, error) {
	c := Config{}

	file, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("opening config file: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&c); err != nil {
		return c, fmt.Errorf("decoding config file: %w", err)
	}

	if err := c.Validate(); err != nil {
		return c, err
	}
	Log.Debug().Msgf("Loaded bank config from %v: %d floors, %d cars", path, c.Floors, len(c.Cars))
	return c, nil
}

func (c Config) Validate() error {
	if c.Floors < 2 {
		return fmt.Errorf("config needs at least 2 floors, got %d", c.Floors)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %v", c.TickInterval)
	}
	if len(c.Cars) == 0 {
		return fmt.Errorf("config needs at least one car")
	}
	seen := make(map[int]bool, len(c.Cars))
	for _, car := range c.Cars {
		if seen[car.ID] {
			return fmt.Errorf("duplicate car id %d", car.ID)
		}
		seen[car.ID] = true
		if car.Capacity < 1 {
			return fmt.Errorf("car %d capacity must be positive, got %d", car.ID, car.Capacity)
		}
	}
	return nil
}
