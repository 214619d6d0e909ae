package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinicdash/internal/fakeapi"
	"clinicdash/internal/logging"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newFixturesCmd() *cobra.Command {
	var (
		addr     string
		dataPath string
	)
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Serve canned doctor and patient data for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Console(os.Stderr, zerolog.InfoLevel)

			data := fakeapi.DefaultDataset()
			if dataPath != "" {
				var err error
				if data, err = fakeapi.LoadDataset(dataPath); err != nil {
					return err
				}
			}
			return serveFixtures(cmd.Context(), fakeapi.New(data, logger), addr, logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&dataPath, "data", "", "dataset JSON file (default: built-in dataset)")
	return cmd
}

// serveFixtures runs srv until SIGINT/SIGTERM or ctx is done, then shuts it
// down gracefully.
func serveFixtures(ctx context.Context, srv *fakeapi.Server, addr string, logger zerolog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("fixture server listening")
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down fixture server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
