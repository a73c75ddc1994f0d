package network

import (
	"time"

	"github.com/lixenwraith/ringflight/parameter"
)

// Config holds feed server configuration
type Config struct {
	// Address to bind
	Address string

	// Connection limits
	MaxPeers     int
	ReadLimit    int64
	AllowOrigins []string // empty allows any origin

	// Timing
	WriteTimeout      time.Duration
	PongTimeout       time.Duration
	HeartbeatInterval time.Duration
	BroadcastInterval time.Duration
	ShutdownTimeout   time.Duration

	// Buffer sizes
	ReadBufferSize  int
	WriteBufferSize int
	SendQueueSize   int
}

// DefaultConfig returns defaults bound to addr
func DefaultConfig(addr string) *Config {
	return &Config{
		Address:           addr,
		MaxPeers:          16,
		ReadLimit:         4 * 1024,
		WriteTimeout:      5 * time.Second,
		PongTimeout:       30 * time.Second,
		HeartbeatInterval: 10 * time.Second,
		BroadcastInterval: parameter.BroadcastInterval,
		ShutdownTimeout:   3 * time.Second,
		ReadBufferSize:    1024,
		WriteBufferSize:   64 * 1024,
		SendQueueSize:     64,
	}
}
