package cmd

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ziadkadry99/commentsync/internal/auth"
	"github.com/ziadkadry99/commentsync/internal/comments"
	"github.com/ziadkadry99/commentsync/internal/config"
	"github.com/ziadkadry99/commentsync/internal/controller"
	"github.com/ziadkadry99/commentsync/internal/db"
	"github.com/ziadkadry99/commentsync/internal/logging"
	"github.com/ziadkadry99/commentsync/internal/prefs"
	"github.com/ziadkadry99/commentsync/internal/progress"
	"github.com/ziadkadry99/commentsync/internal/render"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `commentsync init` to create a config file", err)
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := string(cfg.LogLevel)
	if verbose {
		level = string(config.LogDebug)
	}
	return logging.New(level)
}

// app holds everything a command needs to talk to the Comment Service.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	database *db.DB
	store    *prefs.Store
	comments *comments.Client
	auth     *auth.Client
}

func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	a := &app{cfg: cfg, log: log}

	// Preferences still work for this session if the database cannot be
	// opened; they just won't survive a restart.
	var backend prefs.Backend
	database, err := db.Open(cfg.PreferencesPath())
	if err != nil {
		log.Warn("preferences will not be saved", zap.String("path", cfg.PreferencesPath()), zap.Error(err))
	} else {
		a.database = database
		backend = prefs.NewSQLiteBackend(database)
	}
	a.store = prefs.NewStore(backend, log)

	retry := comments.RetryPolicy{
		Attempts:  cfg.RetryAttempts,
		BaseDelay: cfg.RetryBaseDelay(),
		MaxDelay:  comments.DefaultRetryPolicy.MaxDelay,
	}
	a.comments = comments.NewClient(cfg.ServerURL, cfg.Timeout(), retry, log)
	a.auth = auth.NewClient(cfg.ServerURL, cfg.Timeout(), log)
	return a, nil
}

func (a *app) Close() {
	if a.database != nil {
		a.database.Close()
	}
	a.log.Sync()
}

func (a *app) controller(ctx context.Context, view controller.View) *controller.Controller {
	return controller.New(ctx, a.comments, a.store, view,
		controller.WithLogger(a.log),
		controller.WithTimeout(a.cfg.Timeout()),
	)
}

// textView writes lists to stdout. The spinner only runs for the table
// format so piped JSON/HTML output stays clean.
func (a *app) textView(format render.Format) *render.TextView {
	reporter := progress.Reporter(progress.Nop{})
	if format == "" || format == render.FormatTable {
		reporter = progress.NewReporter()
	}
	return &render.TextView{
		Out:      os.Stdout,
		Err:      os.Stderr,
		Format:   format,
		HTML:     render.NewHTML(a.cfg.Render.HighlightStyle),
		Reporter: reporter,
	}
}

func parseFormat(s string) (render.Format, error) {
	switch f := render.Format(s); f {
	case render.FormatTable, render.FormatJSON, render.FormatHTML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q: must be table, json or html", s)
}
