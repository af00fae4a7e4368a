package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/hance08/atm/internal/app"
	"github.com/hance08/atm/internal/config"
	"github.com/hance08/atm/internal/errhandler"
	"github.com/hance08/atm/internal/ui/prompts"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *config.Config
)

func Execute() {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	var (
		application *app.App
		cleanup     = func() {}
	)

	rootCmd := &cobra.Command{
		Use:   "atm",
		Short: "atm is a terminal ATM client for a remote account service",
		Long: `atm is a terminal ATM client. It logs in with an account number and PIN,
then lets you deposit, withdraw, transfer and browse your transaction history.
All account logic lives in the backend service configured in config.yaml.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			firstRun, err := initConfig()
			if err != nil {
				return err
			}

			if firstRun && isInteractive() {
				if err := initWizard(); err != nil {
					return err
				}
			}

			a, closeApp, err := app.NewApp(cfg)
			if err != nil {
				return err
			}
			application, cleanup = a, closeApp
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &sessionRunner{app: application}
			return runner.Run(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")

	rootCmd.AddCommand(NewInfoCmd(func() *app.App { return application }))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	cleanup()

	if err != nil {
		if errhandler.IsInterrupt(err) {
			errhandler.HandleError(err)
		}

		errMsg := err.Error()
		displayMsg := capitalize(errMsg)

		pterm.Error.Println(displayMsg)
		os.Exit(1)
	}
}

// initConfig loads config.yaml and the ATM_* environment. It reports whether
// the default config file had to be created.
func initConfig() (bool, error) {
	setDefaults()

	firstRun := false
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.GetAppDataDir()
		if err != nil {
			return false, fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		created, err := createDefaultConfig(appDir)
		if err != nil {
			return false, fmt.Errorf("failed to ensure config file: %w", err)
		}
		firstRun = created
	}

	viper.SetEnvPrefix("ATM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {

		if cfgFile != "" {
			return false, fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return false, fmt.Errorf("config file error: %w", err)
		}
	}

	cfg = config.NewDefault()
	if err := viper.Unmarshal(cfg, viper.DecodeHook(durationHook())); err != nil {
		return false, fmt.Errorf("unable to decode into struct, %v", err)
	}

	logFile, err := expandPath(cfg.Log.File)
	if err != nil {
		return false, fmt.Errorf("invalid log file path: %w", err)
	}
	cfg.Log.File = logFile
	cfg.ConfigPath = viper.ConfigFileUsed()

	return firstRun, nil
}

func setDefaults() {
	defaults := config.NewDefault()

	viper.SetDefault("backend.base_url", defaults.Backend.BaseURL)
	viper.SetDefault("backend.timeout", defaults.Backend.Timeout.String())
	viper.SetDefault("display.currency_symbol", defaults.Display.CurrencySymbol)
	viper.SetDefault("display.status_ttl", defaults.Display.StatusTTL.String())
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.file", defaults.Log.File)
}

// durationHook also accepts bare numbers as seconds, e.g. "timeout: 10".
func durationHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		func(f reflect.Type, t reflect.Type, data any) (any, error) {
			if t != reflect.TypeOf(time.Duration(0)) {
				return data, nil
			}
			switch v := data.(type) {
			case int:
				return time.Duration(v) * time.Second, nil
			case float64:
				return time.Duration(v * float64(time.Second)), nil
			}
			return data, nil
		},
		mapstructure.StringToTimeDurationHookFunc(),
	)
}

func initWizard() error {
	settings, err := prompts.PromptInitSettings(prompts.InitSettings{
		BaseURL:        cfg.Backend.BaseURL,
		CurrencySymbol: cfg.Display.CurrencySymbol,
	})
	if err != nil {
		return err
	}

	viper.Set("backend.base_url", settings.BaseURL)
	viper.Set("display.currency_symbol", settings.CurrencySymbol)

	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save config to file: %w", err)
	}

	cfg.Backend.BaseURL = settings.BaseURL
	cfg.Display.CurrencySymbol = settings.CurrencySymbol

	pterm.Success.Printf("Configuration saved. Backend set to: %s\n", settings.BaseURL)

	return nil
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}

func createDefaultConfig(appDir string) (bool, error) {
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
