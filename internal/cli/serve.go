package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/reviewd/internal/config"
	"github.com/dshills/reviewd/internal/review"
	"github.com/dshills/reviewd/internal/server"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST API server",
	Long:  "Serve the review API over HTTP: GET /health, POST /review, GET /demo.",
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides := buildOverrides()
		if flagAddr != "" {
			overrides["listenAddr"] = flagAddr
		}
		cfg, err := config.Load(overrides)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitLoadError
			return nil
		}

		logger := slog.Default()
		reviewer := review.New(cfg.ReviewConfig(), logger)
		handler := server.NewHandler(reviewer, cfg.Provider, cfg.Model, logger)
		mux := server.NewServeMux(handler, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := server.Serve(ctx, cfg.ListenAddr, mux, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitLoadError
			return nil
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config, :8080)")
}
