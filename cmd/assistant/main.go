package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"patriot-buddy/config"
	"patriot-buddy/internal/domain"
)

type flags struct {
	configPath string
	envPath    string
	mode       string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           "assistant",
		Short:         "Patriot Buddy voice assistant",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, f)
		},
	}
	bindFlags(root.PersistentFlags(), f)

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Listen for utterances and answer them",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd, f)
			},
		},
		&cobra.Command{
			Use:   "ask <text>",
			Short: "Route one utterance and print the response",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAsk(cmd, f, strings.Join(args, " "))
			},
		},
		newAPIsCmd(f),
	)
	return root
}

func bindFlags(fs *pflag.FlagSet, f *flags) {
	fs.StringVarP(&f.configPath, "config", "c", "config.yaml", "path to config file")
	fs.StringVarP(&f.envPath, "env", "e", ".env", "env file with API keys")
	fs.StringVar(&f.mode, "mode", "", "start with a forced mode (CONVERSATION, HOME_AUTOMATION, EXTERNAL_API)")
}

func newAPIsCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apis",
		Short: "Manage the API configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default API configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			if err := config.InitAPIs(cfg.APIsFile, os.Getenv("OPENWEATHER_API_KEY"), force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfg.APIsFile)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}

func runServe(cmd *cobra.Command, f *flags) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	logger.Info("starting Patriot Buddy",
		"audio_source", cfg.Audio.Source,
		"generation", cfg.Generation.Provider,
		"lights", cfg.Lights.Backend,
		"mode", a.mode.Get().Label(),
	)

	if err := a.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("assistant error", "error", err)
		return err
	}
	logger.Info("shut down")
	return nil
}

func runAsk(cmd *cobra.Command, f *flags, text string) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.Log)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	done := make(chan error, 1)
	go func() { done <- a.worker.Run(ctx) }()

	ex, err := a.worker.Ask(ctx, text)
	cancel()
	<-done
	if err != nil {
		return fmt.Errorf("asking: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), ex.Response)
	return nil
}

// loadConfig reads .env first so ${VAR} references in the YAML resolve.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	if err := godotenv.Load(f.envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", f.envPath, err)
	}

	cfg, err := config.Load(f.configPath)
	switch {
	case errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config"):
		cfg = config.Default()
	case err != nil:
		return nil, err
	}

	if f.mode != "" {
		m, err := domain.ParseMode(f.mode)
		if err != nil {
			return nil, fmt.Errorf("--mode: %w", err)
		}
		cfg.Mode = string(m)
	}
	return cfg, nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	case "pretty":
		handler = tint.NewHandler(os.Stdout, &tint.Options{Level: level, TimeFormat: time.Kitchen})
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
