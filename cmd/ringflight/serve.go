package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/ringflight/engine"
	"github.com/lixenwraith/ringflight/event"
	"github.com/lixenwraith/ringflight/network"
	"github.com/lixenwraith/ringflight/service"
	"github.com/lixenwraith/ringflight/status"
	"github.com/lixenwraith/ringflight/world"
)

func serveCmd(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the simulation headless and stream snapshots to websocket clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reg := status.NewRegistry()
			var feed *network.Service
			w := world.New(cfg,
				world.WithRegistry(reg),
				world.WithListener(func(ev event.GameEvent) { feed.OnEvent(ev) }),
			)
			feed = network.NewService(network.DefaultConfig(cfg.Addr), w, reg)
			w.Generate()

			loop := engine.NewLoop(engine.NewTimeProvider(), w, time.Second/time.Duration(cfg.TickRate), reg)
			hub := service.NewHub()
			hub.Register(feedService(feed))
			hub.Register(loopService(loop, svcFeed))
			if err := hub.StartAll(); err != nil {
				return err
			}
			defer hub.StopAll()
			log.Printf("[MAIN] serving world %s on %s", w.ID(), feed.Addr())

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "feed listen address")
	return cmd
}
