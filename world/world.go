package world

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/ringflight/config"
	"github.com/lixenwraith/ringflight/crossing"
	"github.com/lixenwraith/ringflight/curve"
	"github.com/lixenwraith/ringflight/effect"
	"github.com/lixenwraith/ringflight/engine"
	"github.com/lixenwraith/ringflight/event"
	"github.com/lixenwraith/ringflight/flight"
	"github.com/lixenwraith/ringflight/lookat"
	"github.com/lixenwraith/ringflight/parameter"
	"github.com/lixenwraith/ringflight/planner"
	"github.com/lixenwraith/ringflight/ring"
	"github.com/lixenwraith/ringflight/status"
	"github.com/lixenwraith/ringflight/vmath"
)

// Drone is an autonomous agent with its ribbon trail
type Drone struct {
	Agent  *flight.Agent
	Trail  *effect.Trail
	Color  colorful.Color
	Scale  float64
	Pose   flight.Sample
	factor float64 // speed multiplier over the configured base
}

// World is the explicit simulation context
// Tick, Generate and StartPlayerRound run on a single goroutine; other goroutines talk to it
// through the inbound queue and read the published snapshot
type World struct {
	cfg   config.Config
	clock engine.Clock
	seed  uint64
	rng   *vmath.FastRand
	reg   *status.Registry

	inbound   *event.EventQueue
	listeners []func(event.GameEvent)
	pending   []event.GameEvent

	id      uuid.UUID
	field   *ring.Field
	planner *planner.Planner
	fires   *effect.Bank
	course  *crossing.Course

	player   *flight.Agent
	look     *lookat.Controller
	camera   mgl64.Vec3
	tangent  mgl64.Vec3
	gaze     mgl64.Vec3
	polyline []mgl64.Vec3

	drones []*Drone

	night   bool
	message string
	regen   *engine.Debouncer
	tick    uint64

	latest atomic.Pointer[Snapshot]
	stats  metrics
}

// New creates an empty world; call Generate to populate it
func New(cfg *config.Config, opts ...Option) *World {
	w := &World{
		cfg:   *cfg,
		clock: engine.NewTimeProvider(),
		seed:  cfg.Seed,
		regen: engine.NewDebouncer(parameter.RegenerateDebounce),
		night: cfg.Night,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.seed == 0 {
		w.seed = uint64(time.Now().UnixNano())
	}
	if w.inbound == nil {
		w.inbound = event.NewEventQueue()
	}
	if w.reg == nil {
		w.reg = status.NewRegistry()
	}
	w.rng = vmath.NewFastRand(w.seed)
	w.stats = newMetrics(w.reg)
	w.look = lookat.New(
		time.Duration(cfg.LookForward*float64(time.Second)),
		time.Duration(cfg.LookSearch*float64(time.Second)),
	)
	w.stats.night.Store(w.night)
	return w
}

// Generate tears down the current world and builds a new one from the configuration
func (w *World) Generate() {
	w.setStatus(parameter.StatusGenerating)
	w.teardown()

	rings := ring.Scatter(ring.ScatterConfig{
		Count:       w.cfg.RingCount,
		TerrainSize: w.cfg.TerrainSize,
		MaxHeight:   w.cfg.MaxRingHeight,
		MinSpacing:  w.cfg.MinRingSpacing,
	}, w.rng)

	w.id = uuid.New()
	w.field = ring.NewField(rings)
	w.planner = planner.New(w.field, w.plannerOptions())
	w.fires = effect.NewBank(w.field, w.cfg.PoolCapacity)
	w.fires.SetNight(w.night)
	if w.course == nil {
		w.course = crossing.NewCourse(w.field, w.fires)
	} else {
		w.course.Rebind(w.field, w.fires)
	}

	w.player = flight.NewPlayer(0, w.cfg.Speed, w.cfg.Mode(), w.cfg.SplineTension)
	if pos, look, ok := ring.StartPose(w.field, w.cfg.CruiseHeight); ok {
		w.camera = pos
		w.gaze = look
		w.tangent = vmath.NormalizeOr(look.Sub(pos), vmath.AxisZ)
	}
	if w.field.Len() > 1 {
		_ = w.StartPlayerRound(0)
	} else {
		w.setStatus(parameter.StatusNotEnoughRings)
	}

	for i := 0; i < w.cfg.DroneCount; i++ {
		w.drones = append(w.drones, w.spawnDrone(i))
	}

	w.stats.generations.Add(1)
	w.stats.rings.Store(int64(w.field.Len()))
	w.stats.drones.Store(int64(len(w.drones)))
	log.Printf("[WORLD] generated %s: %d rings, %d drones", w.id, w.field.Len(), len(w.drones))

	w.emit(event.EventWorldGenerated, &event.WorldGeneratedPayload{
		WorldID: w.id, Rings: w.field.Len(), Drones: len(w.drones),
	})
	w.publish()
}

// teardown releases every fire and trail before the field is replaced
func (w *World) teardown() {
	w.fires.Release()
	w.fires = nil
	for _, d := range w.drones {
		d.Trail.Reset()
		d.Agent.Clear()
	}
	w.drones = nil
	if w.player != nil {
		w.player.Clear()
	}
	w.look.Cancel()
	w.polyline = nil
	w.regen.Cancel()
}

func (w *World) spawnDrone(i int) *Drone {
	startID := 0
	if n := w.field.Len(); n > 0 {
		startID = (i + 1) % n
	}
	a := flight.NewDrone(startID, w.cfg.Speed, w.cfg.Mode(), w.cfg.SplineTension, w.rng)
	d := &Drone{
		Agent:  a,
		Trail:  effect.NewTrail(),
		Color:  colorful.Hsl(w.rng.Float64()*360, 0.8, 0.5),
		Scale:  1 + w.rng.Float64(),
		factor: a.Speed / w.cfg.Speed,
	}
	if err := a.Replan(w.planner, w.field, w.rng); err == nil {
		d.Pose = flight.Pose(a)
	}
	return d
}

// StartPlayerRound resets ring states and plans a fresh player route departing startID
// With too few rings the previous curve is kept and a status message is raised
func (w *World) StartPlayerRound(startID int) error {
	w.player.StartID = startID
	if err := w.player.Replan(w.planner, w.field, w.rng); err != nil {
		w.field.ResetStates()
		for _, id := range w.field.IDs() {
			w.fires.Disable(id)
		}
		w.setStatus(parameter.StatusNotEnoughRings)
		w.emit(event.EventInsufficientTargets, nil)
		log.Printf("[WORLD] round from ring %d: %v", startID, err)
		return err
	}

	w.course.Begin(w.player.Route)
	w.look.Cancel()
	w.polyline = w.player.Curve.Points(parameter.CurveLookaheadPoints)

	w.setStatus(fmt.Sprintf(parameter.StatusTargetsFmt, len(w.player.Route)))
	w.stats.remaining.Store(int64(len(w.player.Route)))
	w.emit(event.EventRoundStarted, &event.RoundPayload{
		StartID: startID,
		Targets: append([]int(nil), w.player.Route...),
	})
	return nil
}

// Step implements engine.Stepper
func (w *World) Step(dt time.Duration) {
	w.Tick(dt)
}

// Tick advances the whole simulation by dt and returns the events it produced
func (w *World) Tick(dt time.Duration) []event.GameEvent {
	now := w.clock.Now()

	w.handleInbound(now)
	if w.regen.Poll(now) {
		w.Generate()
	}

	if w.field != nil {
		w.stepPlayer(now)
		w.stepDrones()
		w.fires.Tick(dt.Seconds(), w.rng)
	}

	w.tick++
	w.updateMetrics()
	w.publish()

	out := w.pending
	w.pending = nil
	for _, ev := range out {
		for _, fn := range w.listeners {
			fn(ev)
		}
	}
	return out
}

func (w *World) stepPlayer(now time.Time) {
	sample, res := flight.Advance(w.player)
	w.stats.stalled.Store(res == flight.Stalled)

	switch res {
	case flight.Stalled:
		return
	case flight.Completed:
		_ = w.StartPlayerRound(w.player.NextStartID)
		return
	}

	w.camera = sample.Position
	w.tangent = sample.Tangent

	out := w.course.Observe(sample.Position)
	if out.Fired {
		w.setStatus(fmt.Sprintf(parameter.StatusRemainingFmt, out.Remaining))
		w.emit(event.EventRingPassed, &event.RingPassedPayload{RingID: out.PassedID, Remaining: out.Remaining})
		w.look.Start(now, out.LookAt, out.HasNext)
	}
	if out.RoundComplete {
		w.setStatus(parameter.StatusRoundComplete)
		w.stats.rounds.Add(1)
		w.emit(event.EventRoundComplete, &event.RoundPayload{
			StartID: w.player.StartID,
			Targets: append([]int(nil), w.player.Route...),
		})
	}
	w.stats.remaining.Store(int64(w.course.Remaining()))

	view := lookat.View{
		Camera:    w.camera,
		Tangent:   w.tangent,
		ViewDir:   vmath.NormalizeOr(w.gaze.Sub(w.camera), w.tangent),
		Lookahead: flight.Lookahead(w.player, parameter.LookIdleDistance),
	}
	if id, ok := w.course.Current(); ok {
		if r, ok := w.field.Get(id); ok {
			view.Target = r.Center
			view.HasTarget = true
		}
	}
	w.gaze = w.look.Update(now, view)
}

func (w *World) stepDrones() {
	for _, d := range w.drones {
		sample, res := flight.Advance(d.Agent)
		switch res {
		case flight.Completed:
			// Trail keeps streaking across the route change
			_ = d.Agent.Rollover(w.planner, w.field, w.rng)
		case flight.Moving:
			d.Pose = sample
			d.Trail.Push(sample.Position, sample.Tangent)
		}
	}
}

// handleInbound applies control events pushed from other goroutines
func (w *World) handleInbound(now time.Time) {
	for _, ev := range w.inbound.Consume() {
		switch ev.Type {
		case event.EventNightMode:
			if p, ok := ev.Payload.(*event.NightModePayload); ok {
				w.SetNight(p.Night)
			}
		case event.EventRegenerateRequest:
			w.regen.Trigger(now)
		case event.EventTuning:
			if p, ok := ev.Payload.(*event.TuningPayload); ok {
				w.applyTuning(now, p)
			}
		}
	}
}

// applyTuning commits a validated parameter change
func (w *World) applyTuning(now time.Time, p *event.TuningPayload) {
	next := w.cfg
	if p.Speed != nil {
		next.Speed = *p.Speed
	}
	if p.CruiseHeight != nil {
		next.CruiseHeight = *p.CruiseHeight
	}
	if p.SplineTension != nil {
		next.SplineTension = *p.SplineTension
	}
	if p.CurveMode != nil {
		next.CurveMode = *p.CurveMode
	}
	if p.RingCount != nil {
		next.RingCount = *p.RingCount
	}
	if p.DroneCount != nil {
		next.DroneCount = *p.DroneCount
	}
	if p.TerrainSize != nil {
		next.TerrainSize = *p.TerrainSize
	}
	if p.PreRingDistance != nil {
		next.PreRingDistance = *p.PreRingDistance
	}
	if p.MaxRingHeight != nil {
		next.MaxRingHeight = *p.MaxRingHeight
	}
	if err := next.Validate(); err != nil {
		log.Printf("[WORLD] tuning rejected: %v", err)
		return
	}
	w.cfg = next

	// Speed and altitude apply to the next step and next route without a rebuild
	if w.player != nil {
		w.player.Speed = w.cfg.Speed
	}
	for _, d := range w.drones {
		d.Agent.Speed = w.cfg.Speed * d.factor
	}
	if w.field != nil {
		w.planner = planner.New(w.field, w.plannerOptions())
	}
	if p.Reshapes() {
		w.regen.Trigger(now)
	}
}

// SetNight switches theme-dependent effect parameters; tick goroutine only
func (w *World) SetNight(night bool) {
	w.night = night
	w.fires.SetNight(night)
	w.stats.night.Store(night)
}

// RequestRegenerate schedules a debounced regeneration; safe from any goroutine
func (w *World) RequestRegenerate() {
	w.inbound.Push(event.GameEvent{Type: event.EventRegenerateRequest})
}

// RequestNight schedules a theme switch; safe from any goroutine
func (w *World) RequestNight(night bool) {
	w.inbound.Push(event.GameEvent{Type: event.EventNightMode, Payload: &event.NightModePayload{Night: night}})
}

// RequestTuning schedules a parameter change; safe from any goroutine
func (w *World) RequestTuning(p *event.TuningPayload) {
	w.inbound.Push(event.GameEvent{Type: event.EventTuning, Payload: p})
}

// Submit pushes an arbitrary control event; safe from any goroutine
func (w *World) Submit(ev event.GameEvent) {
	w.inbound.Push(ev)
}

// Field returns the current ring field; tick goroutine only
func (w *World) Field() *ring.Field {
	return w.field
}

// Player returns the player agent; tick goroutine only
func (w *World) Player() *flight.Agent {
	return w.player
}

// Course returns the player's ring progression; tick goroutine only
func (w *World) Course() *crossing.Course {
	return w.course
}

// Drones returns the drone agents; tick goroutine only
func (w *World) Drones() []*Drone {
	return w.drones
}

// Fires returns the fire bank; tick goroutine only
func (w *World) Fires() *effect.Bank {
	return w.fires
}

// Look returns the player's gaze controller; tick goroutine only
func (w *World) Look() *lookat.Controller {
	return w.look
}

// Night reports the current theme
func (w *World) Night() bool {
	return w.night
}

// ID returns the current world id
func (w *World) ID() uuid.UUID {
	return w.id
}

// Config returns a copy of the active configuration
func (w *World) Config() config.Config {
	return w.cfg
}

// Registry returns the metrics registry
func (w *World) Registry() *status.Registry {
	return w.reg
}

// Status returns the current status line
func (w *World) Status() string {
	return w.message
}

// Latest returns the most recently published snapshot; safe from any goroutine
func (w *World) Latest() *Snapshot {
	return w.latest.Load()
}

func (w *World) plannerOptions() planner.Options {
	return planner.Options{
		CruiseHeight:    w.cfg.CruiseHeight,
		PreRingDistance: w.cfg.PreRingDistance,
		AvoidThreshold:  w.cfg.AvoidThreshold,
	}
}

func (w *World) setStatus(msg string) {
	w.message = msg
	w.stats.message.Store(msg)
}

func (w *World) emit(t event.EventType, payload any) {
	w.pending = append(w.pending, event.GameEvent{Type: t, Payload: payload, Tick: w.tick})
}

func (w *World) publish() {
	w.latest.Store(w.Snapshot())
}

// Mode returns the curve mode in effect
func (w *World) Mode() curve.Mode {
	return w.cfg.Mode()
}
