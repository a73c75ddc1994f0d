package main

import (
	"log"

	"github.com/lixenwraith/ringflight/audio"
	"github.com/lixenwraith/ringflight/engine"
	"github.com/lixenwraith/ringflight/network"
	"github.com/lixenwraith/ringflight/service"
)

const (
	svcSound = "sound"
	svcFeed  = "feed"
	svcLoop  = "loop"
)

// soundService never fails to start; a missing audio device leaves the manager silent
func soundService(sm *audio.SoundManager) service.Service {
	return &service.Func{
		ID: svcSound,
		OnStart: func() error {
			if err := sm.Initialize(); err != nil {
				log.Printf("[MAIN] audio unavailable: %v (continuing without audio)", err)
			}
			return nil
		},
		OnStop: func() error {
			sm.Cleanup()
			return nil
		},
	}
}

func feedService(feed *network.Service) service.Service {
	return &service.Func{ID: svcFeed, OnStart: feed.Start, OnStop: feed.Stop}
}

// loopService starts ticking only after its listeners are up
func loopService(loop *engine.Loop, deps ...string) service.Service {
	return &service.Func{
		ID:       svcLoop,
		Requires: deps,
		OnStart: func() error {
			loop.Start()
			return nil
		},
		OnStop: func() error {
			loop.Stop()
			return nil
		},
	}
}
