package world

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lixenwraith/ringflight/config"
	"github.com/lixenwraith/ringflight/engine"
	"github.com/lixenwraith/ringflight/event"
	"github.com/lixenwraith/ringflight/flight"
	"github.com/lixenwraith/ringflight/parameter"
	"github.com/lixenwraith/ringflight/ring"
	"github.com/lixenwraith/ringflight/status"
)

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.RingCount = 3
	cfg.TerrainSize = 80
	cfg.DroneCount = 2
	cfg.Speed = 0.5
	return cfg
}

func newTestWorld(t *testing.T, cfg *config.Config, opts ...Option) (*World, *engine.MockTimeProvider) {
	t.Helper()
	clock := engine.NewMockTimeProvider(time.Unix(1000, 0))
	opts = append([]Option{WithClock(clock), WithSeed(42)}, opts...)
	w := New(cfg, opts...)
	w.Generate()
	return w, clock
}

// TestGenerateStartsRound verifies a fresh world has one Active ring, lit fire and a full route
func TestGenerateStartsRound(t *testing.T) {
	cfg := config.Default()
	w, _ := newTestWorld(t, cfg)

	if w.Field().Len() != cfg.RingCount {
		t.Fatalf("rings %d, want %d", w.Field().Len(), cfg.RingCount)
	}
	if len(w.Drones()) != cfg.DroneCount {
		t.Errorf("drones %d, want %d", len(w.Drones()), cfg.DroneCount)
	}
	route := w.Player().Route
	if len(route) != cfg.RingCount-1 {
		t.Fatalf("route %v excludes more than the start ring", route)
	}
	if w.Field().ActiveCount() != 1 || w.Field().CountState(ring.Inactive) != cfg.RingCount-1 {
		t.Errorf("states after generate: active=%d inactive=%d",
			w.Field().ActiveCount(), w.Field().CountState(ring.Inactive))
	}
	if r, _ := w.Field().Get(route[0]); r.State != ring.Active {
		t.Errorf("first target %d not Active", route[0])
	}
	if _, enabled, _ := w.Fires().Stats(); enabled != 1 {
		t.Errorf("%d fires enabled, want 1", enabled)
	}
	if w.Status() != "TARGETS: 19" {
		t.Errorf("status %q", w.Status())
	}
	if w.Latest() == nil {
		t.Error("generate did not publish a snapshot")
	}
}

// TestFirstTickFlushesGenerationEvents verifies events raised by Generate reach the caller and listeners
func TestFirstTickFlushesGenerationEvents(t *testing.T) {
	var heard []event.EventType
	w, _ := newTestWorld(t, smallConfig(), WithListener(func(ev event.GameEvent) {
		heard = append(heard, ev.Type)
	}))

	evs := w.Tick(parameter.TickInterval)
	var types []event.EventType
	for _, ev := range evs {
		types = append(types, ev.Type)
	}
	want := []event.EventType{event.EventRoundStarted, event.EventWorldGenerated}
	if len(types) != len(want) || types[0] != want[0] || types[1] != want[1] {
		t.Fatalf("events %v, want %v", types, want)
	}
	if len(heard) != len(want) {
		t.Errorf("listener heard %v", heard)
	}
	gen := evs[1].Payload.(*event.WorldGeneratedPayload)
	if gen.WorldID != w.ID() || gen.Rings != 3 || gen.Drones != 2 {
		t.Errorf("generated payload %+v", gen)
	}
	if len(w.Tick(parameter.TickInterval)) != 0 {
		t.Error("events delivered twice")
	}
}

// TestRoundPassesTargetsInOrder drives the player through a whole round and into the next one
func TestRoundPassesTargetsInOrder(t *testing.T) {
	w, _ := newTestWorld(t, smallConfig())
	route := append([]int(nil), w.Player().Route...)
	last := w.Player().NextStartID

	var passed []event.RingPassedPayload
	completed := false
	var next *event.RoundPayload
	for i := 0; i < 50000 && next == nil; i++ {
		for _, ev := range w.Tick(parameter.TickInterval) {
			switch ev.Type {
			case event.EventRingPassed:
				passed = append(passed, *ev.Payload.(*event.RingPassedPayload))
			case event.EventRoundComplete:
				completed = true
				if w.Status() != parameter.StatusRoundComplete {
					t.Errorf("status at completion %q", w.Status())
				}
				if w.Field().CountState(ring.Passed) != len(route) {
					t.Errorf("%d rings Passed at completion", w.Field().CountState(ring.Passed))
				}
			case event.EventRoundStarted:
				if completed {
					next = ev.Payload.(*event.RoundPayload)
				}
			}
		}
	}

	if len(passed) != len(route) {
		t.Fatalf("passed %v, route %v", passed, route)
	}
	for i, p := range passed {
		if p.RingID != route[i] || p.Remaining != len(route)-1-i {
			t.Errorf("crossing %d: %+v", i, p)
		}
	}
	if !completed || next == nil {
		t.Fatal("round never rolled over")
	}
	if next.StartID != last {
		t.Errorf("next round departs %d, want last target %d", next.StartID, last)
	}
	for _, id := range next.Targets {
		if id == last {
			t.Errorf("next route %v revisits its start", next.Targets)
		}
	}
	if w.Field().ActiveCount() != 1 {
		t.Errorf("new round has %d Active rings", w.Field().ActiveCount())
	}
}

// TestRegenerateIsDebounced verifies bursts of requests rebuild the world once after the quiet period
func TestRegenerateIsDebounced(t *testing.T) {
	w, clock := newTestWorld(t, smallConfig())
	first := w.ID()

	w.RequestRegenerate()
	w.Tick(parameter.TickInterval)
	clock.Advance(300 * time.Millisecond)
	w.RequestRegenerate()
	w.Tick(parameter.TickInterval)

	clock.Advance(400 * time.Millisecond)
	w.Tick(parameter.TickInterval)
	if w.ID() != first {
		t.Fatal("regenerated before the quiet period after the last request")
	}

	clock.Advance(100 * time.Millisecond)
	evs := w.Tick(parameter.TickInterval)
	if w.ID() == first {
		t.Fatal("did not regenerate")
	}
	found := false
	for _, ev := range evs {
		if ev.Type == event.EventWorldGenerated {
			found = true
		}
	}
	if !found {
		t.Error("regeneration raised no event")
	}
	if got := w.Registry().Ints.Get(status.KeyGenerations).Load(); got != 2 {
		t.Errorf("generations %d, want 2", got)
	}

	clock.Advance(time.Second)
	w.Tick(parameter.TickInterval)
	if w.Registry().Ints.Get(status.KeyGenerations).Load() != 2 {
		t.Error("one burst regenerated twice")
	}
}

// TestTuningAppliesSpeedWithoutRebuild verifies speed changes are live and bad values are rejected
func TestTuningAppliesSpeedWithoutRebuild(t *testing.T) {
	w, clock := newTestWorld(t, smallConfig())
	id := w.ID()

	speed := 1.5
	w.RequestTuning(&event.TuningPayload{Speed: &speed})
	w.Tick(parameter.TickInterval)
	if w.Player().Speed != 1.5 || w.Config().Speed != 1.5 {
		t.Errorf("player speed %v config %v", w.Player().Speed, w.Config().Speed)
	}
	for _, d := range w.Drones() {
		if d.Agent.Speed < 1.5*parameter.DroneSpeedMin-1e-9 || d.Agent.Speed > 1.5*parameter.DroneSpeedMax+1e-9 {
			t.Errorf("drone speed %v not rescaled", d.Agent.Speed)
		}
	}

	bad := -2.0
	w.RequestTuning(&event.TuningPayload{Speed: &bad})
	w.Tick(parameter.TickInterval)
	if w.Player().Speed != 1.5 {
		t.Errorf("invalid speed applied: %v", w.Player().Speed)
	}

	clock.Advance(time.Second)
	w.Tick(parameter.TickInterval)
	if w.ID() != id {
		t.Error("speed change rebuilt the world")
	}

	count := 4
	w.RequestTuning(&event.TuningPayload{RingCount: &count})
	w.Tick(parameter.TickInterval)
	clock.Advance(parameter.RegenerateDebounce)
	w.Tick(parameter.TickInterval)
	if w.ID() == id || w.Field().Len() != 4 {
		t.Errorf("ring count change: rings=%d", w.Field().Len())
	}
}

// TestNightModeSwitchesEffects verifies the theme reaches fires, beacons and trails
func TestNightModeSwitchesEffects(t *testing.T) {
	w, _ := newTestWorld(t, smallConfig())
	if snap := w.Latest(); snap.Night || snap.Rings[0].Beacon.Visible {
		t.Fatal("day snapshot shows beacons")
	}

	w.RequestNight(true)
	w.Tick(parameter.TickInterval)
	snap := w.Latest()
	if !snap.Night || !w.Night() {
		t.Fatal("night not applied")
	}
	for _, r := range snap.Rings {
		if !r.Beacon.Visible || r.Beacon.Color != r.Color {
			t.Errorf("ring %d beacon %+v", r.ID, r.Beacon)
		}
	}
	for _, f := range w.Fires().Fires() {
		if f.SpawnRate() != parameter.FireSpawnNight {
			t.Errorf("fire %d spawn rate %d", f.RingID(), f.SpawnRate())
		}
	}
	for _, d := range snap.Drones {
		if d.TrailOpacity != parameter.TrailOpacityNight {
			t.Errorf("trail opacity %v", d.TrailOpacity)
		}
	}
}

// TestTooFewRingsStalls verifies a one-ring world reports the error and ticks without motion
func TestTooFewRingsStalls(t *testing.T) {
	cfg := smallConfig()
	cfg.RingCount = 1
	w, _ := newTestWorld(t, cfg)

	if w.Status() != parameter.StatusNotEnoughRings {
		t.Errorf("status %q", w.Status())
	}
	before := w.Latest().Player.Position
	for i := 0; i < 10; i++ {
		w.Tick(parameter.TickInterval)
	}
	if w.Latest().Player.Position != before {
		t.Error("player moved without a route")
	}
	if !w.Registry().Bools.Get(status.KeyStalled).Load() {
		t.Error("stall not reported")
	}
	if err := w.StartPlayerRound(0); err != flight.ErrInsufficientTargets {
		t.Errorf("StartPlayerRound error %v", err)
	}
}

// TestSeedReproducesLayout verifies two worlds with one seed scatter identical rings
func TestSeedReproducesLayout(t *testing.T) {
	a, _ := newTestWorld(t, config.Default())
	b, _ := newTestWorld(t, config.Default())
	ra, rb := a.Field().Rings(), b.Field().Rings()
	for i := range ra {
		if ra[i].Center != rb[i].Center || ra[i].Yaw != rb[i].Yaw {
			t.Fatalf("ring %d differs: %v vs %v", i, ra[i].Center, rb[i].Center)
		}
	}
	if a.ID() == b.ID() {
		t.Error("world ids collide")
	}
}

// TestSnapshotEncodes verifies the published snapshot is complete and serializable
func TestSnapshotEncodes(t *testing.T) {
	w, _ := newTestWorld(t, smallConfig())
	for i := 0; i < 30; i++ {
		w.Tick(parameter.TickInterval)
	}
	snap := w.Latest()
	if snap.Tick != 30 || snap.WorldID != w.ID().String() {
		t.Errorf("snapshot header tick=%d id=%s", snap.Tick, snap.WorldID)
	}
	if len(snap.Rings) != 3 || len(snap.Drones) != 2 {
		t.Errorf("snapshot rings=%d drones=%d", len(snap.Rings), len(snap.Drones))
	}
	if len(snap.Particles) == 0 {
		t.Error("active ring fire produced no particles")
	}
	if len(snap.Player.Curve) != parameter.CurveLookaheadPoints+1 {
		t.Errorf("curve polyline %d points", len(snap.Player.Curve))
	}
	if _, err := json.Marshal(snap); err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := w.Registry().Ints.Get(status.KeyTicks).Load(); got != 30 {
		t.Errorf("tick metric %d", got)
	}
}

// TestLoopDrivesWorld verifies the world satisfies the engine stepper contract
func TestLoopDrivesWorld(t *testing.T) {
	w, clock := newTestWorld(t, smallConfig())
	loop := engine.NewLoop(clock, w, parameter.TickInterval, w.Registry())
	for i := 0; i < 5; i++ {
		clock.Advance(parameter.TickInterval)
		loop.Tick()
	}
	if w.Latest().Tick != 5 {
		t.Errorf("world ticked %d times", w.Latest().Tick)
	}
}
