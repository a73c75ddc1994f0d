package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/ringflight/curve"
)

// TestDefaultIsValid verifies the stock configuration passes validation
func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Mode() != curve.Chordal {
		t.Errorf("default mode = %v, want chordal", cfg.Mode())
	}
	if cfg.RingCount != 20 || cfg.DroneCount != 5 || cfg.CruiseHeight != 25 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "world.toml", `
ring_count = 8
curve_mode = "centripetal"
night = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RingCount != 8 || cfg.Mode() != curve.Centripetal || !cfg.Night {
		t.Errorf("TOML not applied: %+v", cfg)
	}
	// Untouched fields keep defaults
	if cfg.TerrainSize != 300 {
		t.Errorf("terrain_size = %v, want default 300", cfg.TerrainSize)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "world.yaml", "drone_count: 2\nspline_tension: 0.5\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DroneCount != 2 || cfg.SplineTension != 0.5 {
		t.Errorf("YAML not applied: %+v", cfg)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := writeFile(t, "world.json", "{}")
	if _, err := Load(path); err == nil {
		t.Error("expected error for .json")
	}
}

func TestApplyLookupOverrides(t *testing.T) {
	env := map[string]string{
		"RINGFLIGHT_RING_COUNT": "12",
		"RINGFLIGHT_NIGHT":      "true",
		"RINGFLIGHT_SEED":       "42",
		"PORT":                  "9090",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	cfg := Default()
	if err := cfg.applyLookup(lookup); err != nil {
		t.Fatal(err)
	}
	if cfg.RingCount != 12 || !cfg.Night || cfg.Seed != 42 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Addr)
	}

	// Explicit address wins over PORT
	env["RINGFLIGHT_ADDR"] = "127.0.0.1:7000"
	cfg = Default()
	if err := cfg.applyLookup(lookup); err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != "127.0.0.1:7000" {
		t.Errorf("addr = %q", cfg.Addr)
	}
}

func TestApplyLookupReportsBadValues(t *testing.T) {
	env := map[string]string{"RINGFLIGHT_SPEED": "fast", "RINGFLIGHT_RING_COUNT": "many"}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	cfg := Default()
	err := cfg.applyLookup(lookup)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "SPEED") || !strings.Contains(err.Error(), "RING_COUNT") {
		t.Errorf("error should name both keys: %v", err)
	}
	if cfg.Speed != 0.25 {
		t.Errorf("bad value overwrote speed: %v", cfg.Speed)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Speed = 0
	cfg.SplineTension = 1
	cfg.CurveMode = "bezier"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"speed", "spline_tension", "bezier"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error missing %q: %v", want, msg)
		}
	}
}
