package main

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/ringflight/world"
)

type planRing struct {
	ID     int        `yaml:"id"`
	Center mgl64.Vec3 `yaml:"center,flow"`
	Yaw    float64    `yaml:"yaw"`
	Post   float64    `yaml:"post_height"`
}

type planDrone struct {
	ID    string  `yaml:"id"`
	Start int     `yaml:"start"`
	Route []int   `yaml:"route,flow"`
	Speed float64 `yaml:"speed"`
}

type planReport struct {
	Seed      uint64       `yaml:"seed"`
	WorldID   string       `yaml:"world_id"`
	Mode      string       `yaml:"curve_mode"`
	Tension   float64      `yaml:"spline_tension"`
	Status    string       `yaml:"status"`
	Rings     []planRing   `yaml:"rings"`
	Route     []int        `yaml:"route,flow"`
	Length    float64      `yaml:"length"`
	Waypoints []mgl64.Vec3 `yaml:"waypoints,flow"`
	Drones    []planDrone  `yaml:"drones"`
}

func planCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Generate one world and print its rings and planned routes as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if cfg.Seed == 0 {
				cfg.Seed = 1
			}
			w := world.New(cfg)
			w.Generate()

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(buildReport(w, cfg.Seed))
		},
	}
}

func buildReport(w *world.World, seed uint64) *planReport {
	cfg := w.Config()
	rep := &planReport{
		Seed:    seed,
		WorldID: w.ID().String(),
		Mode:    w.Mode().String(),
		Tension: cfg.SplineTension,
		Status:  w.Status(),
	}
	for _, r := range w.Field().Rings() {
		rep.Rings = append(rep.Rings, planRing{ID: r.ID, Center: r.Center, Yaw: r.Yaw, Post: r.PostHeight})
	}
	if p := w.Player(); p.Curve != nil {
		rep.Route = p.Route
		rep.Length = p.Curve.Length()
		rep.Waypoints = p.Path.Points
	}
	for _, d := range w.Drones() {
		rep.Drones = append(rep.Drones, planDrone{
			ID:    d.Agent.ID.String(),
			Start: d.Agent.StartID,
			Route: d.Agent.Route,
			Speed: d.Agent.Speed,
		})
	}
	return rep
}
