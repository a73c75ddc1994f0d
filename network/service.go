package network

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/ringflight/event"
	"github.com/lixenwraith/ringflight/status"
	"github.com/lixenwraith/ringflight/world"
)

// Source is the simulation the feed publishes and steers
type Source interface {
	Latest() *world.Snapshot
	Submit(ev event.GameEvent)
}

// Service serves the snapshot feed over websocket and a small control API
type Service struct {
	config   *Config
	source   Source
	reg      *status.Registry
	hub      *Hub
	router   chi.Router
	upgrader websocket.Upgrader

	// World events queued by the tick goroutine for the publisher
	events chan event.GameEvent

	server   *http.Server
	listener net.Listener

	running  atomic.Bool
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewService wires routes and the hub; nothing listens until Start
func NewService(cfg *Config, source Source, reg *status.Registry) *Service {
	s := &Service{
		config: cfg,
		source: source,
		reg:    reg,
		events: make(chan event.GameEvent, cfg.SendQueueSize),
		stopCh: make(chan struct{}),
	}
	s.hub = NewHub(cfg, source.Submit, reg)
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin:     s.checkOrigin,
	}
	s.router = s.routes()
	return s
}

func (s *Service) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ws", s.handleWS)
	r.Route("/api", func(r chi.Router) {
		r.Get("/snapshot", s.handleSnapshot)
		r.Get("/status", s.handleStatus)
		r.Post("/regenerate", s.handleRegenerate)
		r.Post("/theme", s.handleTheme)
		r.Post("/tuning", s.handleTuning)
	})
	return r
}

// Handler exposes the router, used by tests and embedding servers
func (s *Service) Handler() http.Handler {
	return s.router
}

// Hub returns the peer hub
func (s *Service) Hub() *Hub {
	return s.hub
}

// OnEvent queues a world event for broadcast; never blocks the tick goroutine
func (s *Service) OnEvent(ev event.GameEvent) {
	select {
	case s.events <- ev:
	default:
		s.reg.Ints.Get(status.KeyFramesLagged).Add(1)
	}
}

// Start binds the listener and runs the server and publisher
func (s *Service) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		s.running.Store(false)
		return err
	}
	s.listener = ln
	s.server = &http.Server{Handler: s.router, ReadHeaderTimeout: 5 * time.Second}

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[NET] serve: %v", err)
		}
	}()
	go s.publishLoop()

	log.Printf("[NET] feed listening on %s", ln.Addr())
	return nil
}

// Addr returns the bound address, empty before Start
func (s *Service) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down and disconnects every peer
func (s *Service) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.stopCh)
		if s.running.CompareAndSwap(true, false) {
			ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
			defer cancel()
			err = s.server.Shutdown(ctx)
		}
		s.hub.Close()
		s.wg.Wait()
	})
	return err
}

// publishLoop broadcasts queued events immediately and snapshots at the broadcast interval
func (s *Service) publishLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.BroadcastInterval)
	defer ticker.Stop()

	var lastTick uint64
	sentAny := false
	for {
		select {
		case <-s.stopCh:
			return
		case ev := <-s.events:
			f := EventFrame(ev)
			s.hub.Broadcast(&f)
		case <-ticker.C:
			snap := s.source.Latest()
			if snap == nil || (sentAny && snap.Tick == lastTick) {
				continue
			}
			lastTick, sentAny = snap.Tick, true
			s.hub.Broadcast(&Frame{Type: FrameSnapshot, Tick: snap.Tick, Payload: snap})
		}
	}
}

func (s *Service) checkOrigin(r *http.Request) bool {
	if len(s.config.AllowOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	for _, o := range s.config.AllowOrigins {
		if o == origin {
			return true
		}
	}
	return false
}

func (s *Service) handleWS(w http.ResponseWriter, r *http.Request) {
	codec, err := ParseCodec(r.URL.Query().Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[NET] upgrade: %v", err)
		return
	}
	peer, err := s.hub.Add(conn, codec)
	if err != nil {
		log.Printf("[NET] %s rejected: %v", r.RemoteAddr, err)
		return
	}
	log.Printf("[NET] peer %s connected from %s (%s)", peer.ID, peer.Addr, codec)

	// New peers get the current frame without waiting for the next broadcast
	if snap := s.source.Latest(); snap != nil {
		s.hub.Send(peer, &Frame{Type: FrameSnapshot, Tick: snap.Tick, Payload: snap})
	}
}

func (s *Service) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := s.source.Latest()
	if snap == nil {
		http.Error(w, "world not generated", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Service) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.reg.Snapshot())
}

func (s *Service) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	s.source.Submit(event.GameEvent{Type: event.EventRegenerateRequest})
	w.WriteHeader(http.StatusAccepted)
}

func (s *Service) handleTheme(w http.ResponseWriter, r *http.Request) {
	night, err := strconv.ParseBool(r.URL.Query().Get("night"))
	if err != nil {
		http.Error(w, "night must be a boolean", http.StatusBadRequest)
		return
	}
	s.source.Submit(event.GameEvent{Type: event.EventNightMode, Payload: &event.NightModePayload{Night: night}})
	w.WriteHeader(http.StatusAccepted)
}

func (s *Service) handleTuning(w http.ResponseWriter, r *http.Request) {
	var p event.TuningPayload
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.config.ReadLimit))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.source.Submit(event.GameEvent{Type: event.EventTuning, Payload: &p})
	w.WriteHeader(http.StatusAccepted)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[NET] encode response: %v", err)
	}
}
