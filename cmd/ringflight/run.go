package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/ringflight/audio"
	"github.com/lixenwraith/ringflight/engine"
	"github.com/lixenwraith/ringflight/event"
	"github.com/lixenwraith/ringflight/network"
	"github.com/lixenwraith/ringflight/render"
	"github.com/lixenwraith/ringflight/service"
	"github.com/lixenwraith/ringflight/status"
	"github.com/lixenwraith/ringflight/world"
)

const frameInterval = time.Second / 30

func runCmd(flags *rootFlags) *cobra.Command {
	var feedAddr string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fly interactively in a top-down terminal view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("init terminal: %w", err)
			}
			// Panic recovery: restore the terminal before printing the trace
			defer func() {
				if r := recover(); r != nil {
					screen.Fini()
					fmt.Fprintf(os.Stderr, "\nRINGFLIGHT CRASHED: %v\nStack Trace:\n%s\n", r, debug.Stack())
					os.Exit(1)
				}
			}()
			defer screen.Fini()

			// Terminal owns stdout; keep log output off the screen
			log.SetOutput(logSink())

			reg := status.NewRegistry()
			sounds := audio.NewSoundManager()
			hub := service.NewHub()
			var deps []string
			if cfg.Audio {
				hub.Register(soundService(sounds))
				deps = append(deps, svcSound)
			}

			var feed *network.Service
			w := world.New(cfg,
				world.WithRegistry(reg),
				world.WithListener(sounds.HandleEvent),
				world.WithListener(func(ev event.GameEvent) {
					if feed != nil {
						feed.OnEvent(ev)
					}
				}),
			)
			if feedAddr != "" {
				feed = network.NewService(network.DefaultConfig(feedAddr), w, reg)
				hub.Register(feedService(feed))
				deps = append(deps, svcFeed)
			}
			w.Generate()

			loop := engine.NewLoop(engine.NewTimeProvider(), w, time.Second/time.Duration(cfg.TickRate), reg)
			hub.Register(loopService(loop, deps...))
			if err := hub.StartAll(); err != nil {
				return err
			}
			defer hub.StopAll()

			return interact(screen, w)
		},
	}

	cmd.Flags().StringVar(&feedAddr, "feed", "", "also stream snapshots on this address")
	return cmd
}

// interact renders frames and handles keys until the user quits
func interact(screen tcell.Screen, w *world.World) error {
	orchestrator := render.NewDefaultOrchestrator(screen)
	curve, _ := orchestrator.Renderer(render.PriorityCurve).(*render.CurveRenderer)

	eventChan := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	// Input polling uses raw goroutine as it interacts directly with terminal
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	frameTicker := time.NewTicker(frameInterval)
	defer frameTicker.Stop()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
					return nil
				case ev.Rune() == 'n':
					night := false
					if snap := w.Latest(); snap != nil {
						night = snap.Night
					}
					w.RequestNight(!night)
				case ev.Rune() == 'r':
					w.RequestRegenerate()
				case ev.Rune() == 'c':
					if curve != nil {
						curve.Visible = !curve.Visible
					}
				}
			}
		case <-frameTicker.C:
			orchestrator.RenderFrame(w.Latest())
		}
	}
}

// logSink discards logs unless RINGFLIGHT_LOG names a file
func logSink() io.Writer {
	if path := os.Getenv("RINGFLIGHT_LOG"); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			return f
		}
	}
	return io.Discard
}
