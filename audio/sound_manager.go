package audio

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/ringflight/event"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Cue is a short sound tied to a simulation event
type Cue uint8

const (
	CueRingPassed Cue = iota
	CueRoundComplete
	CueWorldGenerated
)

// SoundManager plays event cues through one shared mixer
// Every method is a no-op until Initialize succeeds, so the simulation runs without an audio device
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *effects.Volume
	initialized bool

	played atomic.Uint64
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	sm := &SoundManager{
		mixer: &beep.Mixer{},
	}
	sm.volume = &effects.Volume{Streamer: sm.mixer, Base: 2}
	return sm
}

// Initialize opens the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.volume)
	sm.initialized = true
	return nil
}

// Cleanup silences and drops every playing cue
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker Close; an empty mixer is silent
	sm.initialized = false
}

// SetMuted toggles output without dropping queued cues
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	sm.volume.Silent = muted
}

// Played returns how many cues were started
func (sm *SoundManager) Played() uint64 {
	return sm.played.Load()
}

// HandleEvent maps world events to cues; safe to use as a world listener
func (sm *SoundManager) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventRingPassed:
		remaining := 0
		if p, ok := ev.Payload.(*event.RingPassedPayload); ok {
			remaining = p.Remaining
		}
		sm.play(PassStreamer(remaining))
	case event.EventRoundComplete:
		sm.Play(CueRoundComplete)
	case event.EventWorldGenerated:
		sm.Play(CueWorldGenerated)
	}
}

// Play starts cue c
func (sm *SoundManager) Play(c Cue) {
	sm.play(CueStreamer(c))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played.Add(1)
}

// CueStreamer returns a finite streamer for c, nil for an unknown cue
func CueStreamer(c Cue) beep.Streamer {
	switch c {
	case CueRingPassed:
		return PassStreamer(0)
	case CueRoundComplete:
		// Major arpeggio up to the octave
		return beep.Take(sampleRate.N(time.Millisecond*720),
			NewChimeGenerator(sampleRate, []float64{523.25, 659.25, 783.99, 1046.5}, time.Millisecond*180))
	case CueWorldGenerated:
		return beep.Take(sampleRate.N(time.Millisecond*600), NewSweepGenerator(sampleRate, 90, 360))
	}
	return nil
}

// PassStreamer returns the crossing chime, pitched up a semitone for every target already passed
func PassStreamer(remaining int) beep.Streamer {
	step := 12 - remaining
	if step < 0 {
		step = 0
	}
	base := 440 * math.Pow(2, float64(step)/12)
	return beep.Take(sampleRate.N(time.Millisecond*240),
		NewChimeGenerator(sampleRate, []float64{base, base * 1.5}, time.Millisecond*120))
}

// ChimeGenerator plays a sequence of plucked sine notes
type ChimeGenerator struct {
	sr    beep.SampleRate
	freqs []float64
	note  int // samples per note
	pos   int
}

// NewChimeGenerator creates a chime over freqs, each lasting noteDur
func NewChimeGenerator(sr beep.SampleRate, freqs []float64, noteDur time.Duration) *ChimeGenerator {
	return &ChimeGenerator{
		sr:    sr,
		freqs: freqs,
		note:  sr.N(noteDur),
	}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		idx := g.pos / g.note
		if idx >= len(g.freqs) {
			idx = len(g.freqs) - 1
		}
		t := float64(g.pos-idx*g.note) / float64(g.sr)

		// Fast attack, exponential ring-out per note
		envelope := math.Min(t/0.005, 1.0) * math.Exp(-t*12)
		sample := 0.0
		sample += 0.25 * math.Sin(2*math.Pi*g.freqs[idx]*t)
		sample += 0.08 * math.Sin(2*math.Pi*g.freqs[idx]*2*t)
		sample *= envelope

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// SweepGenerator glides a sine from one frequency to another with a swell envelope
type SweepGenerator struct {
	sr       beep.SampleRate
	from, to float64
	length   int
	phase    float64
	pos      int
}

// NewSweepGenerator creates a 600ms glide from one frequency to another
func NewSweepGenerator(sr beep.SampleRate, from, to float64) *SweepGenerator {
	return &SweepGenerator{
		sr:     sr,
		from:   from,
		to:     to,
		length: sr.N(time.Millisecond * 600),
	}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		p := math.Min(float64(g.pos)/float64(g.length), 1.0)
		freq := g.from + (g.to-g.from)*p

		// Phase accumulation keeps the glide click-free
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		amplitude := 0.15 * math.Sin(p*math.Pi)
		sample := amplitude * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}
