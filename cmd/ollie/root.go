package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MedGm/Ollie/internal/config"
	"github.com/MedGm/Ollie/internal/events"
	"github.com/MedGm/Ollie/internal/service"
	"github.com/MedGm/Ollie/internal/settings"
)

// app holds the wiring shared by all subcommands.
type app struct {
	svc *service.Service
	bus *events.Bus

	serverURL string // --server override, passed through per call
}

func newRootCmd() *cobra.Command {
	var (
		serverURL  string
		configPath string
		verbose    bool
	)

	a := &app{}

	cmd := &cobra.Command{
		Use:   "ollie",
		Short: "Manage models on an Ollama server",
		Long:  "List, download, inspect, and delete models on a local or remote Ollama server.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			store, err := settings.NewStore("")
			if err != nil {
				return err
			}

			if configPath == "" {
				configPath = filepath.Join(filepath.Dir(store.Path()), "config.yaml")
			}
			cfg, err := config.LoadFromFile(configPath)
			if err != nil {
				return err
			}
			if err := cfg.LoadFromEnv(); err != nil {
				return err
			}

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			a.bus = events.NewBus()
			a.serverURL = serverURL
			a.svc = service.New(service.Options{
				Settings: store,
				Config:   cfg,
				Sink:     a.bus,
				Logger:   logger,
			})
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&serverURL, "server", "", "Ollama server URL (default from settings)")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	cmd.AddCommand(newPullCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newRemoveCmd(a))
	cmd.AddCommand(newShowCmd(a))
	cmd.AddCommand(newSettingsCmd(a))

	return cmd
}

// formatSize renders a byte count for humans.
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
