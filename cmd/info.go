package cmd

import (
	"os"

	"github.com/hance08/atm/internal/app"
	"github.com/hance08/atm/internal/ui/views"
	"github.com/spf13/cobra"
)

type infoRunner struct {
	app *app.App
}

func NewInfoCmd(getApp func() *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, backend URL, log file and system details.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				app: getApp(),
			}

			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	c := r.app.Config

	configPath := c.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	logExists := false
	if _, err := os.Stat(c.Log.File); err == nil {
		logExists = true
	}

	items := views.SystemInfoItem{
		ConfigPath:     configPath,
		AppDataDir:     getAppDataDirOrUnknown(),
		BackendURL:     c.Backend.BaseURL,
		Timeout:        c.Backend.Timeout.String(),
		CurrencySymbol: c.Display.CurrencySymbol,
		StatusTTL:      c.Display.StatusTTL.String(),
		LogLevel:       c.Log.Level,
		LogFile:        c.Log.File,
		LogFileExists:  logExists,
	}

	if err := views.RenderSystemInfo(items); err != nil {
		return err
	}
	return nil
}

func getAppDataDirOrUnknown() string {
	dir, err := app.GetAppDataDir()
	if err != nil {
		return "Unknown"
	}
	return dir
}
