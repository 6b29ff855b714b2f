// Package cli provides a headless command-line front end for the keyboard.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard"
	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard/layout"
)

const envPrefix = "MLKEYBOARD"

// Config is the resolved CLI configuration from flags, environment and config file.
type Config struct {
	Language   string `mapstructure:"language"`
	LayoutsDir string `mapstructure:"layouts-dir"`
	LogLevel   string `mapstructure:"log-level"`
}

type app struct {
	v        *viper.Viper
	cfg      Config
	registry *layout.Registry
}

// NewRootCmd creates the root command for mlkeyboard
func NewRootCmd(version string) *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "mlkeyboard",
		Short:         "Multi-language on-screen keyboard, headless",
		Long:          `Inspect keyboard layouts and replay key presses against an in-memory text field.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config file (toml, yaml or json)")
	rootCmd.PersistentFlags().String("layouts-dir", "", "directory of extra layout files to register")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringP("language", "l", layout.DefaultLanguage, "layout to use")

	rootCmd.AddCommand(
		newLayoutsCmd(a),
		newShowCmd(a),
		newTypeCmd(a),
	)

	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if err := a.v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}

	mlkeyboard.SetLogWriter(cmd.ErrOrStderr())
	mlkeyboard.SetInternalLogLevel(mlkeyboard.ParseLogLevel(a.cfg.LogLevel))

	registry := layout.NewRegistry()
	if err := layout.RegisterBuiltins(registry); err != nil {
		return err
	}
	if a.cfg.LayoutsDir != "" {
		if _, err := layout.LoadDir(a.cfg.LayoutsDir, registry); err != nil {
			return err
		}
	}
	a.registry = registry

	return nil
}
