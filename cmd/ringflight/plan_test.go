package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// TestPlanPrintsRoute verifies the plan command emits a full route for the default field
func TestPlanPrintsRoute(t *testing.T) {
	cmd := planCmd(&rootFlags{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("plan: %v", err)
	}

	var rep planReport
	if err := yaml.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("parse output: %v\n%s", err, out.String())
	}
	if rep.Seed != 1 || len(rep.Rings) != 20 {
		t.Errorf("seed %d rings %d", rep.Seed, len(rep.Rings))
	}
	if len(rep.Route) != 19 || rep.Length <= 0 || len(rep.Waypoints) < 2 {
		t.Errorf("route %v length %v waypoints %d", rep.Route, rep.Length, len(rep.Waypoints))
	}
	if len(rep.Drones) != 5 {
		t.Errorf("drones %d", len(rep.Drones))
	}
}

// TestLoadConfigFromFile verifies a config file feeds the command and bad values are refused
func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "ringflight.toml")
	if err := os.WriteFile(good, []byte("ring_count = 4\ndrone_count = 1\nseed = 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := planCmd(&rootFlags{configPath: good})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("plan: %v", err)
	}
	var rep planReport
	if err := yaml.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatal(err)
	}
	if rep.Seed != 9 || len(rep.Rings) != 4 || len(rep.Drones) != 1 {
		t.Errorf("report seed=%d rings=%d drones=%d", rep.Seed, len(rep.Rings), len(rep.Drones))
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("speed: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cmd = planCmd(&rootFlags{configPath: bad})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err == nil {
		t.Error("negative speed accepted")
	}
}
