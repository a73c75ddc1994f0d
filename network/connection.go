package network

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/ringflight/event"
)

// PeerID uniquely identifies a connected feed client
type PeerID = uuid.UUID

// Peer is one websocket client of the feed
type Peer struct {
	ID       PeerID
	Addr     string
	Codec    Codec
	LastSeen atomic.Int64 // UnixNano

	lagged atomic.Uint64

	conn   *websocket.Conn
	config *Config

	// Send queue
	sendCh chan []byte

	// Lifecycle
	closeCh   chan struct{}
	closeOnce sync.Once
}

func newPeer(conn *websocket.Conn, codec Codec, cfg *Config) *Peer {
	p := &Peer{
		ID:      uuid.New(),
		Addr:    conn.RemoteAddr().String(),
		Codec:   codec,
		conn:    conn,
		config:  cfg,
		sendCh:  make(chan []byte, cfg.SendQueueSize),
		closeCh: make(chan struct{}),
	}
	p.LastSeen.Store(time.Now().UnixNano())
	return p
}

// Send queues an encoded frame
// Returns false if the peer is closed or its queue is full; the frame is dropped
func (p *Peer) Send(data []byte) bool {
	select {
	case <-p.closeCh:
		return false
	default:
	}
	select {
	case p.sendCh <- data:
		return true
	default:
		p.lagged.Add(1)
		return false
	}
}

// Lagged returns the number of frames dropped on a full queue
func (p *Peer) Lagged() uint64 {
	return p.lagged.Load()
}

// Close initiates shutdown; safe to call repeatedly
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		close(p.closeCh)
		p.conn.Close()
	})
}

// Done is closed when the peer shuts down
func (p *Peer) Done() <-chan struct{} {
	return p.closeCh
}

// readLoop decodes control messages and hands them to submit until the connection fails
func (p *Peer) readLoop(submit func(event.GameEvent)) {
	defer p.Close()

	p.conn.SetReadLimit(p.config.ReadLimit)
	_ = p.conn.SetReadDeadline(time.Now().Add(p.config.PongTimeout))
	p.conn.SetPongHandler(func(string) error {
		p.LastSeen.Store(time.Now().UnixNano())
		return p.conn.SetReadDeadline(time.Now().Add(p.config.PongTimeout))
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[NET] peer %s read: %v", p.ID, err)
			}
			return
		}
		p.LastSeen.Store(time.Now().UnixNano())

		ev, err := p.Codec.DecodeControl(data)
		if err != nil {
			p.sendError(err)
			continue
		}
		submit(ev)
	}
}

// writeLoop drains the send queue and keeps the connection alive with pings
func (p *Peer) writeLoop() {
	ticker := time.NewTicker(p.config.HeartbeatInterval)
	defer func() {
		ticker.Stop()
		p.Close()
	}()

	for {
		select {
		case <-p.closeCh:
			_ = p.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(p.config.WriteTimeout))
			return
		case data := <-p.sendCh:
			_ = p.conn.SetWriteDeadline(time.Now().Add(p.config.WriteTimeout))
			if err := p.conn.WriteMessage(p.Codec.messageType(), data); err != nil {
				return
			}
		case <-ticker.C:
			_ = p.conn.SetWriteDeadline(time.Now().Add(p.config.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (p *Peer) sendError(err error) {
	data, encErr := p.Codec.Encode(&Frame{Type: FrameError, Payload: err.Error()})
	if encErr != nil {
		return
	}
	p.Send(data)
}
