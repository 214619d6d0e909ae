package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"clinicdash/internal/api"
	"clinicdash/internal/config"
	"clinicdash/internal/logging"
	"clinicdash/internal/telemetry"
	"clinicdash/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// flagKeys maps CLI flags onto config keys so flags take precedence over
// env and config file values.
var flagKeys = map[string]string{
	"patients-url":    "api.patients_base_url",
	"doctor-info-url": "api.doctor_info_base_url",
	"graphql-url":     "api.graphql_url",
	"timeout":         "api.timeout",
	"greeting":        "ui.greeting",
	"show-loading":    "ui.show_loading",
	"show-errors":     "ui.show_errors",
	"memoize":         "ui.memoize_details",
	"log-file":        "log.file",
	"log-level":       "log.level",
	"otel-endpoint":   "otel.endpoint",
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var configFile string

	root := &cobra.Command{
		Use:          "clinicdash",
		Short:        "Terminal dashboard for doctors and patients",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv(".env")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			return runDashboard(cmd.Context(), cfg)
		},
	}

	f := root.Flags()
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	f.String("patients-url", "", "base URL of the doctors/patients REST service")
	f.String("doctor-info-url", "", "base URL of the doctor-info REST service")
	f.String("graphql-url", "", "GraphQL endpoint URL")
	f.Duration("timeout", 0, "per-request timeout")
	f.String("greeting", "", "name shown in the header greeting")
	f.Bool("show-loading", false, "show a spinner while fetches are pending")
	f.Bool("show-errors", false, "render fetch errors instead of an empty state")
	f.Bool("memoize", false, "keep loaded details instead of re-fetching")
	f.String("log-file", "", "log file path")
	f.String("log-level", "", "log level (debug, info, warn, error)")
	f.String("otel-endpoint", "", "OTLP/HTTP endpoint for traces, e.g. localhost:4318")
	if err := bindFlags(v, root); err != nil {
		panic(err)
	}

	root.AddCommand(newFixturesCmd())
	return root
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

func runDashboard(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, closer, err := logging.Open(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closer.Close()

	tp := telemetry.Disabled()
	if cfg.OTel.Endpoint != "" {
		tp, err = telemetry.New(ctx, telemetry.Config{
			Endpoint:    cfg.OTel.Endpoint,
			ServiceName: cfg.OTel.ServiceName,
			Insecure:    cfg.OTel.Insecure,
		})
		if err != nil {
			return err
		}
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("trace shutdown failed")
		}
	}()

	client := api.NewClient(api.Config{
		PatientsBaseURL:   cfg.API.PatientsBaseURL,
		DoctorInfoBaseURL: cfg.API.DoctorInfoBaseURL,
		GraphQLURL:        cfg.API.GraphQLURL,
		Timeout:           cfg.API.Timeout,
	}, api.WithTracer(tp.Tracer()))

	model := ui.NewAppModel(
		api.DoctorSource{Client: client},
		api.PatientSource{Client: client},
		ui.Options{
			ShowLoading:    cfg.UI.ShowLoading,
			ShowErrors:     cfg.UI.ShowErrors,
			MemoizeDetails: cfg.UI.MemoizeDetails,
			Greeting:       cfg.UI.Greeting,
			Logger:         &logger,
		},
	).AsTeaModel()

	logger.Info().
		Str("patients_url", cfg.API.PatientsBaseURL).
		Str("graphql_url", cfg.API.GraphQLURL).
		Bool("tracing", tp.Enabled()).
		Msg("starting dashboard")

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
