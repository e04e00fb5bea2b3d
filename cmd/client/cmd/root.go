package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"medisync/cmd/client/cmd/types"
	"medisync/internal/app/client"
	"medisync/internal/app/client/config"
	"medisync/internal/utils/logger"
)

var (
	cfg *config.Config
	log *slog.Logger
	app *client.App

	serverAddress string
)

var rootCmd = &cobra.Command{
	Use:   "medisync",
	Short: "MediSync - offline-first clinical data capture",
	Long: `MediSync is the field client for capturing hypertension and diabetes
care data. Records are stored locally first and synchronized with the
server whenever connectivity allows, so the app stays fully usable
offline.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg = config.MustLoad()
	if serverAddress != "" {
		cfg.ServerAddress = serverAddress
	}
	log = logger.New(cfg.Env)

	var err error
	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("initialize client: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddress, "server", "", "MediSync server address (host:port)")
}
