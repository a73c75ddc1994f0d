package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/ringflight/config"
)

// Flags shared by every subcommand
type rootFlags struct {
	configPath string
	seed       uint64
	night      bool
	noAudio    bool
}

func main() {
	flags := &rootFlags{}
	rootCmd := &cobra.Command{
		Use:           "ringflight",
		Short:         "Fly a camera and a drone swarm through rings scattered over procedural terrain",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "config file (.toml, .yaml)")
	rootCmd.PersistentFlags().Uint64Var(&flags.seed, "seed", 0, "world seed, 0 for time-based")
	rootCmd.PersistentFlags().BoolVar(&flags.night, "night", false, "start in night mode")
	rootCmd.PersistentFlags().BoolVar(&flags.noAudio, "no-audio", false, "disable sound cues")

	rootCmd.AddCommand(runCmd(flags))
	rootCmd.AddCommand(serveCmd(flags))
	rootCmd.AddCommand(planCmd(flags))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ringflight: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves file, environment and flags, in that order of precedence
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	pf := cmd.Flags()
	if pf.Changed("seed") {
		cfg.Seed = flags.seed
	}
	if pf.Changed("night") {
		cfg.Night = flags.night
	}
	if flags.noAudio {
		cfg.Audio = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
