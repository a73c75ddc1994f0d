package network

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/ringflight/event"
	"github.com/lixenwraith/ringflight/status"
)

var ErrTooManyPeers = errors.New("max peers reached")

// Hub tracks connected peers and fans frames out to them
type Hub struct {
	mu       sync.RWMutex
	peers    map[PeerID]*Peer
	maxPeers int
	config   *Config

	// Control messages from every peer land here
	submit func(event.GameEvent)

	statClients *atomic.Int64
	statFrames  *atomic.Int64
	statLagged  *atomic.Int64
}

// NewHub creates a hub forwarding client control messages to submit
func NewHub(cfg *Config, submit func(event.GameEvent), reg *status.Registry) *Hub {
	return &Hub{
		peers:       make(map[PeerID]*Peer),
		maxPeers:    cfg.MaxPeers,
		config:      cfg,
		submit:      submit,
		statClients: reg.Ints.Get(status.KeyClients),
		statFrames:  reg.Ints.Get(status.KeyFramesSent),
		statLagged:  reg.Ints.Get(status.KeyFramesLagged),
	}
}

// Add registers an upgraded connection and starts its I/O loops
func (h *Hub) Add(conn *websocket.Conn, codec Codec) (*Peer, error) {
	h.mu.Lock()
	if len(h.peers) >= h.maxPeers {
		h.mu.Unlock()
		conn.Close()
		return nil, ErrTooManyPeers
	}
	peer := newPeer(conn, codec, h.config)
	h.peers[peer.ID] = peer
	h.statClients.Store(int64(len(h.peers)))
	h.mu.Unlock()

	go peer.readLoop(h.submit)
	go peer.writeLoop()
	go h.monitor(peer)
	return peer, nil
}

// monitor removes the peer once it shuts down
func (h *Hub) monitor(peer *Peer) {
	<-peer.Done()

	h.mu.Lock()
	delete(h.peers, peer.ID)
	h.statClients.Store(int64(len(h.peers)))
	h.mu.Unlock()
}

// Broadcast encodes f at most once per codec and queues it on every peer
// Returns the number of peers the frame was queued for
func (h *Hub) Broadcast(f *Frame) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var encoded [2][]byte
	sent := 0
	for _, peer := range h.peers {
		data := encoded[peer.Codec]
		if data == nil {
			var err error
			if data, err = peer.Codec.Encode(f); err != nil {
				continue
			}
			encoded[peer.Codec] = data
		}
		if peer.Send(data) {
			sent++
		} else {
			h.statLagged.Add(1)
		}
	}
	h.statFrames.Add(int64(sent))
	return sent
}

// Send queues f on a single peer
func (h *Hub) Send(peer *Peer, f *Frame) bool {
	data, err := peer.Codec.Encode(f)
	if err != nil {
		return false
	}
	if !peer.Send(data) {
		h.statLagged.Add(1)
		return false
	}
	h.statFrames.Add(1)
	return true
}

// PeerCount returns the connected peer count
func (h *Hub) PeerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Close disconnects every peer
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, peer := range h.peers {
		peer.Close()
	}
	h.peers = make(map[PeerID]*Peer)
	h.statClients.Store(0)
}
