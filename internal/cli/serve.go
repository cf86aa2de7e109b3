package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pokespeare/pkg/api"
	"github.com/matzehuels/pokespeare/pkg/config"
)

const readHeaderTimeout = 10 * time.Second

func (c *CLI) serveCommand() *cobra.Command {
	var (
		opts   upstreamOptions
		listen string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Routes:
  GET /pokemon/{name}             species metadata
  GET /pokemon/translated/{name}  metadata with a translated description
  GET /healthz                    liveness

Settings come from defaults, then --config, then explicit flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.Listen = listen
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			logger := loggerFromContext(cmd.Context())
			if err := applyLogLevel(logger, cfg.Log.Level); err != nil {
				return err
			}

			ln, err := net.Listen("tcp", cfg.Listen)
			if err != nil {
				return fmt.Errorf("listen %s: %w", cfg.Listen, err)
			}
			return runServer(cmd.Context(), ln, cfg, logger)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&listen, "listen", config.DefaultListen, "address to listen on")

	return cmd
}

// runServer serves the API on ln until ctx is cancelled, then drains
// in-flight requests for at most cfg.ShutdownTimeout.
func runServer(ctx context.Context, ln net.Listener, cfg config.Config, logger *log.Logger) error {
	srv := &http.Server{
		Handler:           api.NewRouter(newService(cfg, logger), logger),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	logger.Info("listening", "addr", ln.Addr().String(),
		"pokeapi", cfg.PokeAPI.BaseURL, "funtranslations", cfg.FunTranslations.BaseURL)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout.Duration)
	prog := newProgress(logger)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Duration)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	prog.done("Server stopped")
	return nil
}
