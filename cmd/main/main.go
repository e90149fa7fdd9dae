package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/CTAG07/Sashizume/pkg/card"
	"github.com/CTAG07/Sashizume/pkg/telemetry"
	"github.com/CTAG07/Sashizume/pkg/title"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	serve := newServeCmd(&configPath)
	rootCmd := &cobra.Command{
		Use:           "sashizume",
		Short:         "さしずめ俺はジェネレーター: deterministic title cards",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.json", "Path to the JSON config file")

	rootCmd.AddCommand(
		serve,
		newGenerateCmd(&configPath),
		newExportCmd(&configPath),
		newVersionCmd(),
	)
	return rootCmd
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the card server (default)",
		Long: `Run the card server until SIGINT or SIGTERM.

SIGHUP restarts the server in place, reloading the config file and templates.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serveLoop(*configPath)
		},
	}
}

func newGenerateCmd(configPath *string) *cobra.Command {
	var variant int
	var random bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "generate [keyword]",
		Short: "Print the title for a keyword",
		Long: `Print the title for a keyword and variant, followed by its caption and permalink.

Example: sashizume generate 寝坊 --variant 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := LoadConfig(*configPath)
			if err != nil {
				return err
			}
			if random {
				variant = title.RandomVariant()
			}
			keyword := ""
			if len(args) == 1 {
				keyword = args[0]
			}
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), config, keyword, variant, asJSON)
		},
	}

	cmd.Flags().IntVarP(&variant, "variant", "v", 0, "Variant to generate")
	cmd.Flags().BoolVar(&random, "random", false, "Pick a random variant")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	cmd.MarkFlagsMutuallyExclusive("variant", "random")

	return cmd
}

func newExportCmd(configPath *string) *cobra.Command {
	var variant int
	var dir string

	cmd := &cobra.Command{
		Use:   "export [keyword]",
		Short: "Write the card for a keyword as HTML plus a QR code PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := LoadConfig(*configPath)
			if err != nil {
				return err
			}
			keyword := ""
			if len(args) == 1 {
				keyword = args[0]
			}
			return runExport(cmd.Context(), cmd.OutOrStdout(), config, keyword, variant, dir)
		},
	}

	cmd.Flags().IntVarP(&variant, "variant", "v", 0, "Variant to export")
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to write the files into")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sashizume %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		},
	}
}

// generateFor generates for keyword exactly as typed, substituting the default
// keyword only for an empty one. Negative variants generate as variant 0.
func generateFor(ctx context.Context, gen title.Generator, keyword string, variant int) (title.Result, error) {
	if keyword == "" {
		keyword = title.DefaultKeyword
	}
	return gen.Generate(ctx, keyword, max(0, variant))
}

func runGenerate(ctx context.Context, w io.Writer, config *Config, keyword string, variant int, asJSON bool) error {
	r, err := generateFor(ctx, title.DefaultGenerator{}, keyword, variant)
	if err != nil {
		return err
	}
	ref := title.ReferenceOf(r)
	ref.Keyword = keyword
	link, err := title.Permalink(config.Card.BaseURL, ref)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			title.Result
			Permalink string `json:"permalink"`
			IntentURL string `json:"intent_url"`
		}{r, link, title.IntentURL(r, link)})
	}
	_, err = fmt.Fprintf(w, "%s\n%s\n%s\n", r.Full, r.Caption, link)
	return err
}

func runExport(ctx context.Context, w io.Writer, config *Config, keyword string, variant int, dir string) error {
	cards, err := card.NewManager(slog.New(slog.NewTextHandler(io.Discard, nil)), *config.Card)
	if err != nil {
		return fmt.Errorf("failed to create card manager: %w", err)
	}
	r, err := generateFor(ctx, title.DefaultGenerator{}, keyword, variant)
	if err != nil {
		return err
	}
	page, err := card.NewPage(config.Card.BaseURL, r, keyword)
	if err != nil {
		return err
	}
	files, err := cards.Export(dir, page)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, files.HTML)
	if files.PNG != "" {
		fmt.Fprintln(w, files.PNG)
	}
	return nil
}

// serveLoop runs the server until shutdown, restarting it in place on SIGHUP.
func serveLoop(configPath string) error {
	baseLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	actionChan := make(chan string, 1)

	go func() {
		osSignalChan := make(chan os.Signal, 1)
		signal.Notify(osSignalChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		for sig := range osSignalChan {
			if sig == syscall.SIGHUP {
				baseLogger.Info("SIGHUP received, restarting.")
				actionChan <- actionRestart
				continue
			}
			baseLogger.Info("OS signal received, initiating shutdown.")
			actionChan <- actionShutdown
			return
		}
	}()

	for {
		action, err := run(configPath, actionChan)
		if err != nil {
			baseLogger.Error("An error occurred during server run, shutting down.", "error", err)
			return err
		}
		if action != actionRestart {
			break
		}
		baseLogger.Info("--- Server Restarting ---")
	}

	baseLogger.Info("Sashizume has shut down.")
	return nil
}

// run hosts the server for one cycle and returns whenever it is shut down or restarted.
func run(configPath string, actionChan chan string) (string, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger(config.Server.LogLevel)
	logger.Info("Starting server cycle...")

	providers, err := telemetry.Setup(context.Background(), *config.Telemetry)
	if err != nil {
		return "", fmt.Errorf("failed to set up telemetry: %w", err)
	}

	var gen title.Generator = title.DefaultGenerator{}
	if config.Telemetry.Enabled {
		if gen, err = telemetry.Instrument(gen); err != nil {
			return "", fmt.Errorf("failed to instrument generator: %w", err)
		}
	}

	cards, err := card.NewManager(logger, *config.Card)
	if err != nil {
		_ = providers.Shutdown(context.Background())
		return "", fmt.Errorf("failed to create card manager: %w", err)
	}

	server := NewServer(config, logger, gen, cards)
	httpServer := &http.Server{
		Addr:              config.Server.ServerAddr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting Sashizume server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var action string
	select {
	case action = <-actionChan:
	case err = <-serveErr:
		_ = providers.Shutdown(context.Background())
		return "", fmt.Errorf("server failed: %w", err)
	}

	logger.Info("Stopping server for " + action + "...")
	timeout := time.Duration(config.Server.ShutdownTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err = httpServer.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("HTTP server stopped.")

	if err = providers.Shutdown(ctx); err != nil {
		logger.Error("Telemetry shutdown failed", "error", err)
	}

	return action, nil
}
