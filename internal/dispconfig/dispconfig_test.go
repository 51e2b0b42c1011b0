package dispconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bank.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing temp config failed: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
Floors: 12
TickInterval: 500ms
Cars:
  - ID: 0
    Capacity: 10
  - ID: 1
    Capacity: 6
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Floors != 12 {
		t.Errorf("Floors = %d, expected 12", cfg.Floors)
	}
	if cfg.TickInterval != 500*time.Millisecond {
		t.Errorf("TickInterval = %v, expected 500ms", cfg.TickInterval)
	}
	if len(cfg.Cars) != 2 {
		t.Fatalf("len(Cars) = %d, expected 2", len(cfg.Cars))
	}
	if cfg.Cars[1].ID != 1 || cfg.Cars[1].Capacity != 6 {
		t.Errorf("Cars[1] = %+v, expected ID 1 capacity 6", cfg.Cars[1])
	}
}

func TestLoadDefaultsTickInterval(t *testing.T) {
	path := writeConfig(t, `
Floors: 4
Cars:
  - ID: 0
    Capacity: 8
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.TickInterval != Default().TickInterval {
		t.Errorf("TickInterval = %v, expected the default %v", cfg.TickInterval, Default().TickInterval)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() of a missing file succeeded, expected an error")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"too few floors", Config{Floors: 1, TickInterval: time.Second, Cars: []CarConfig{{ID: 0, Capacity: 4}}}},
		{"no cars", Config{Floors: 4, TickInterval: time.Second}},
		{"duplicate car ids", Config{Floors: 4, TickInterval: time.Second, Cars: []CarConfig{{ID: 0, Capacity: 4}, {ID: 0, Capacity: 4}}}},
		{"zero capacity", Config{Floors: 4, TickInterval: time.Second, Cars: []CarConfig{{ID: 0, Capacity: 0}}}},
		{"bad tick interval", Config{Floors: 4, TickInterval: 0, Cars: []CarConfig{{ID: 0, Capacity: 4}}}},
	}

	for _, c := range cases {
		if err := c.cfg.Validate(); err == nil {
			t.Errorf("%s: Validate() = nil, expected an error", c.name)
		}
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, expected nil", err)
	}
}
