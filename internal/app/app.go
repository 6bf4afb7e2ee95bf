package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/gofrs/flock"
	"github.com/hollis/muster/internal/config"
	"github.com/hollis/muster/internal/db"
)

// App holds the application state and dependencies
type App struct {
	Config  config.Config
	Store   db.Store
	Logger  *charmlog.Logger
	DataDir string

	// StartupWarning carries a non-fatal bootstrap problem (unreadable
	// database, bad config) for the status line to display.
	StartupWarning string

	database *db.DB
	lockFile *flock.Flock
	logFile  *os.File
}

// Options controls application bootstrap
type Options struct {
	ConfigPath string
	// InMemory skips the on-disk database entirely.
	InMemory bool
}

// New creates a new application instance
func New(opts Options) (*App, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	a := &App{DataDir: config.DefaultDataDir()}

	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		// A broken config file is not worth refusing to start over.
		a.StartupWarning = fmt.Sprintf("config: %v (using defaults)", err)
	}
	a.Config = cfg

	if err := os.MkdirAll(a.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := a.openLogger(); err != nil {
		return nil, err
	}

	if opts.InMemory {
		a.Store = db.NewMemoryStore()
		a.Logger.Info("running with in-memory store")
		return a, nil
	}

	// Exclusive lock so two instances never race on the database.
	if err := a.acquireLock(); err != nil {
		a.closeLogger()
		return nil, err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		// Fall back to an ephemeral session rather than refusing to run.
		a.Logger.Error("opening database failed, falling back to memory", "err", err)
		a.StartupWarning = fmt.Sprintf("storage unavailable, changes will not be saved: %v", err)
		a.Store = db.NewMemoryStore()
		return a, nil
	}
	a.database = database
	a.Store = database

	return a, nil
}

// openLogger points a logfmt file logger at <data dir>/muster.log. The
// terminal is owned by the TUI, so nothing may log to stdout or stderr.
func (a *App) openLogger() error {
	logPath := filepath.Join(a.DataDir, "muster.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	levelName := a.Config.LogLevel
	if env := os.Getenv("MUSTER_LOG"); env != "" {
		levelName = env
	}
	level, err := charmlog.ParseLevel(levelName)
	if err != nil {
		level = charmlog.WarnLevel
	}

	a.logFile = f
	a.Logger = charmlog.NewWithOptions(f, charmlog.Options{
		Level:           level,
		Prefix:          "muster",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmlog.LogfmtFormatter,
	})
	return nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "muster.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of muster is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

func (a *App) closeLogger() {
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.database != nil {
		if err := a.database.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()
	a.closeLogger()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
