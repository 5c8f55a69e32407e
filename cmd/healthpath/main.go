package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bizmatters/healthpath/internal/client"
	"github.com/bizmatters/healthpath/internal/config"
	"github.com/bizmatters/healthpath/internal/export"
	"github.com/bizmatters/healthpath/internal/logger"
	"github.com/bizmatters/healthpath/internal/planner"
	"github.com/bizmatters/healthpath/internal/questionnaire"
	"github.com/bizmatters/healthpath/internal/session"
	"github.com/bizmatters/healthpath/internal/storage"
)

var (
	// Global flags
	configPath string
	dbPath     string
	proxyURL   string
	verbose    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "healthpath",
	Short: "HealthPath - your personalized health plan in the terminal",
	Long: `HealthPath asks a few questions about your body, goals, activity, sleep,
diet and lifestyle, then generates a personalized workout, diet and sleep plan
through the HealthPath API server.

Run without arguments to start the interactive questionnaire.`,
	SilenceUsage: true,
	RunE:         runStart,
}

// app holds the dependencies shared by every command
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	store     storage.KV
	persister *session.Persister
	flow      *planner.Flow
}

// openApp loads the configuration and opens the session store. Logs go to
// the configured file so they never draw over the terminal UI.
func openApp(ctx context.Context) (*app, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}
	if proxyURL != "" {
		cfg.Client.ProxyURL = proxyURL
	}
	if verbose {
		cfg.Logging.Mode = "development"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Logging.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	log, err := logger.NewWithOutput(cfg.Logging.Mode, cfg.Logging.File)
	if err != nil {
		return nil, err
	}

	var store storage.KV
	sqlite, err := storage.OpenSQLite(ctx, cfg.Storage.Path)
	if err != nil {
		log.Warn("Falling back to in-memory storage", "path", cfg.Storage.Path, "error", err.Error())
		store = storage.NewMemory()
	} else {
		store = sqlite
	}

	persister := session.NewPersister(store, log)
	gen := client.New(cfg.Client.ProxyURL, cfg.ClientTimeout(), log)

	return &app{
		cfg:       cfg,
		log:       log,
		store:     store,
		persister: persister,
		flow:      planner.New(questionnaire.Default(), persister, gen, log),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("Failed to close storage", "error", err.Error())
	}
	a.log.Sync()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Session database path (default ~/.healthpath/healthpath.db)")
	rootCmd.PersistentFlags().StringVar(&proxyURL, "proxy-url", "", "HealthPath API endpoint (or set HEALTHPATH_PROXY_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	reportCmd.Flags().StringVarP(&reportTab, "tab", "t", "overview", "Tab to print: overview, workout, diet, sleep, equipment, weekly")
	reportCmd.Flags().BoolVar(&reportRaw, "raw", false, "Print markdown without terminal styling")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file, - for stdout (default "+export.DefaultFileName+")")
	startCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "File the export key writes to")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(promptCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
