package cmd

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"labelsort/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the label matching HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:    cfg.Address(),
			Handler: server.NewHandler(cfg),

			ReadTimeout:  60 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		return server.HandleSignals(srv, cfg.ShutdownTimeout)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
