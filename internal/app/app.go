package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/five82/shoplens/internal/config"
	"github.com/five82/shoplens/internal/logging"
	"github.com/five82/shoplens/internal/prefs"
	"github.com/five82/shoplens/internal/recommend"
	"github.com/five82/shoplens/internal/state"
	"github.com/five82/shoplens/internal/ui"
)

// Options configure the shoplens application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/shoplens/prefs.toml
	EnvFile    string // empty uses ./.env
	APIURL     string // overrides the configured service URL
	PollEvery  int    // forecast poll interval in seconds; zero uses config
	CSVPath    string // pre-fills the upload field
}

// Run boots the shoplens TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	if err := config.LoadEnvFile(opts.EnvFile); err != nil {
		return err
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if override := strings.TrimSpace(opts.APIURL); override != "" {
		cfg.APIURL = override
	}

	closer, err := logging.Init(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logging.Warn().Err(err).Str("path", prefsPath).Msg("load prefs failed, using defaults")
	}

	client, err := recommend.NewClient(cfg.APIURL, recommend.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return fmt.Errorf("init recommend client: %w", err)
	}

	interval := pollInterval(opts.PollEvery, cfg.ForecastPoll)
	logging.Info().
		Str("api_url", client.BaseURL()).
		Dur("poll", interval).
		Msg("shoplens starting")

	store := &state.Store{}

	// Start background poller
	StartPoller(ctx, store, client, interval)

	csvPath := userPrefs.LastCSV
	if strings.TrimSpace(opts.CSVPath) != "" {
		csvPath = opts.CSVPath
	}

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Store:     store,
		APIURL:    client.BaseURL(),
		PollTick:  ui.DefaultUIInterval,
		ThemeName: userPrefs.Theme,
		PrefsPath: prefsPath,
		CSVPath:   csvPath,
		Products:  userPrefs.LastProducts,
		UserID:    userPrefs.LastUserID,

		RequestTimeout: cfg.RequestTimeout,
	}
	err = ui.Run(uiOpts)
	logging.Info().Err(err).Msg("shoplens stopped")
	return err
}

// pollInterval prefers the command-line seconds over the configured value.
func pollInterval(seconds int, configured time.Duration) time.Duration {
	if seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if configured > 0 {
		return configured
	}
	return defaultPollInterval
}
