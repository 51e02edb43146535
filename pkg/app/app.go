// Package app is the main application entry point for LazyVault.
// It wires configuration, logging, the state store, the vault provider, the
// filter manager and the GUI together.
package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/marjoballabani/lazyvault/pkg/config"
	"github.com/marjoballabani/lazyvault/pkg/gui"
	"github.com/marjoballabani/lazyvault/pkg/i18n"
	"github.com/marjoballabani/lazyvault/pkg/state"
	"github.com/marjoballabani/lazyvault/pkg/vault"
	"github.com/marjoballabani/lazyvault/pkg/vaultfilter"
)

// BuildInfo contains version information set at compile time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Options override configuration values from the command line. Empty
// fields keep the configured value.
type Options struct {
	ConfigPath string
	ExportPath string
	StatePath  string
}

// App is the main application struct that holds all components.
type App struct {
	buildInfo *BuildInfo
	config    *config.Config
	logger    *logrus.Logger
	logFile   *os.File
}

// NewApp loads configuration and opens the log. Nothing else is touched
// until Run.
func NewApp(buildInfo *BuildInfo, opts Options) (*App, error) {
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	if opts.ExportPath != "" {
		cfg.Vault.ExportPath = opts.ExportPath
	}
	if opts.StatePath != "" {
		cfg.Vault.StatePath = opts.StatePath
	}

	logger, logFile, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	return &App{
		buildInfo: buildInfo,
		config:    cfg,
		logger:    logger,
		logFile:   logFile,
	}, nil
}

// newLogger writes to the configured log file, since the terminal belongs
// to the GUI. An unknown level falls back to warn.
func newLogger(cfg config.LogConfig) (*logrus.Logger, *os.File, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, errors.Wrap(err, "failed to create log directory")
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open log file %s", cfg.File)
	}
	logger.SetOutput(f)
	return logger, f, nil
}

// Close releases the log file.
func (app *App) Close() error {
	if app.logFile == nil {
		return nil
	}
	return app.logFile.Close()
}

// Run loads the vault, starts the filter manager and the export watcher,
// and runs the GUI until the user quits.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := app.logger.WithField("version", app.buildInfo.Version)
	log.WithFields(logrus.Fields{
		"export": app.config.Vault.ExportPath,
		"state":  app.config.Vault.StatePath,
	}).Info("starting")

	store, err := state.Open(app.config.Vault.StatePath)
	if err != nil {
		return errors.Wrap(err, "failed to open state store")
	}
	defer store.Close()

	client, err := vault.NewClient(app.config.Vault.ExportPath, app.config.Vault.Queries)
	if err != nil {
		return errors.Wrap(err, "failed to initialize vault client")
	}

	translator := i18n.New(app.config.UI.Language)
	log.WithField("language", translator.Language().String()).Debug("translator ready")

	provider, err := vault.NewProvider(ctx, client, store, translator,
		vault.WithProviderLogger(app.logger.WithField("component", "provider")))
	if err != nil {
		return errors.Wrap(err, "failed to load vault")
	}
	defer provider.Close()

	// The manager reports to the GUI, which is created after it.
	var ui *gui.Gui
	manager := vaultfilter.NewManager(provider,
		vaultfilter.NotifierFunc(func(level vaultfilter.NotificationLevel, message string) {
			ui.Notify(level, message)
		}),
		translator,
		vaultfilter.WithLogger(app.logger.WithField("component", "filter")),
		vaultfilter.WithOnActiveFilterChanged(func(change vaultfilter.FilterChange) { ui.OnFilterChanged(change) }),
		vaultfilter.WithOnSearchTextChanged(func(text string) { ui.OnSearchTextChanged(text) }),
		vaultfilter.WithOnAddFolder(func() { ui.OnAddFolder() }),
		vaultfilter.WithOnEditFolder(func(folder vaultfilter.FolderFilter) { ui.OnEditFolder(folder) }),
	)
	defer manager.Close()

	ui, err = gui.NewGui(app.config, manager, translator, app.logger.WithField("component", "gui"), app.buildInfo.Version)
	if err != nil {
		return errors.Wrap(err, "failed to initialize GUI")
	}

	if err := manager.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start filters")
	}

	group, gctx := errgroup.WithContext(ctx)
	if app.config.Vault.Watch {
		watcher, err := newExportWatcher(gctx, app.config.Vault.ExportPath, provider, app.logger)
		if err != nil {
			return err
		}
		group.Go(func() error {
			return watcher.Run(gctx)
		})
	}

	runErr := ui.Run(ctx)
	cancel()
	if err := group.Wait(); err != nil {
		log.WithError(err).Warn("export watcher stopped")
	}
	if runErr != nil {
		return errors.Wrap(runErr, "gui exited")
	}
	log.Info("stopped")
	return nil
}

// newExportWatcher reloads the provider whenever the export file settles
// after a change.
func newExportWatcher(ctx context.Context, path string, provider *vault.Provider, logger *logrus.Logger) (*vault.Watcher, error) {
	log := logger.WithField("component", "watcher")
	w, err := vault.NewWatcher(path,
		vault.WithOnChange(func() {
			if err := provider.Reload(ctx); err != nil {
				log.WithError(err).Error("reload after change failed")
				return
			}
			log.Info("export reloaded")
		}),
		vault.WithOnError(func(err error) {
			log.WithError(err).Warn("export watch")
		}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to watch export")
	}
	return w, nil
}
