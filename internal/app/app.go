package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hance08/atm/internal/api"
	"github.com/hance08/atm/internal/atm"
	"github.com/hance08/atm/internal/config"
	"github.com/hance08/atm/internal/logging"
	"github.com/sirupsen/logrus"
)

type App struct {
	Config  *config.Config
	Log     *logrus.Logger
	Backend *api.Client
}

// NewApp initialize logging and the backend client, then return App entity
func NewApp(cfg *config.Config) (*App, func(), error) {
	logPath := cfg.Log.File
	if logPath == "" {
		appDir, _ := GetAppDataDir()
		logPath = filepath.Join(appDir, "atm.log")
		cfg.Log.File = logPath
	}

	logger, closeLog, err := logging.New(cfg.Log.Level, logPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	backend := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger)

	logger.WithFields(logrus.Fields{
		"backend": cfg.Backend.BaseURL,
		"timeout": cfg.Backend.Timeout.String(),
	}).Info("atm started")

	return &App{
		Config:  cfg,
		Log:     logger,
		Backend: backend,
	}, closeLog, nil
}

// NewController starts a fresh session on the login screen.
func (a *App) NewController() *atm.Controller {
	return atm.New(
		a.Backend,
		atm.WithLogger(a.Log),
		atm.WithCurrencySymbol(a.Config.Display.CurrencySymbol),
		atm.WithStatusTTL(a.Config.Display.StatusTTL),
	)
}

func GetAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".atm"), nil
	}

	return filepath.Join(configDir, "atm"), nil
}
