// -- cmd/root.go --
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scientist-cli/internal/config"
	"github.com/xkilldash9x/scientist-cli/internal/dispatch"
	"github.com/xkilldash9x/scientist-cli/internal/observability"
	"github.com/xkilldash9x/scientist-cli/internal/trend"
)

type contextKey string

const configKey contextKey = "config"

var (
	cfgFile string
	osExit  = os.Exit
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd(NewStoreProvider())

// newRootCmd builds the command tree. The store provider is injected so tests
// can run without a database.
func newRootCmd(provider storeProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scientist-cli",
		Short: "Scientist answers short physics questions about 2-D vectors.",
		// Version is dynamically set at build time. See cmd/version.go.
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			config.SetDefaults(v)

			if err := initializeConfig(v); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "scientist-cli"})
				return fmt.Errorf("failed to load or validate config: %w", err)
			}

			observability.InitializeLogger(cfg.Logger())
			observability.GetLogger().Debug("Starting Scientist-CLI", zap.String("version", Version))

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, configKey, cfg))
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	cmd.SetVersionTemplate(`{{.Name}} version {{.Version}}` + "\n")

	cmd.AddCommand(newSolveCmd(provider))
	cmd.AddCommand(newBatchCmd())
	cmd.AddCommand(newHistoryCmd(provider))
	cmd.AddCommand(newTemplatesCmd())
	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	defer observability.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		observability.Sync()
		osExit(1)
	}
}

// initializeConfig reads in config file and ENV variables if set.
func initializeConfig(v *viper.Viper) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SCIENTIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults/env vars
	}
	return nil
}

// getConfigFromContext returns the config stored by PersistentPreRunE.
func getConfigFromContext(ctx context.Context) (*config.Config, error) {
	if ctx == nil {
		return nil, fmt.Errorf("command context is missing")
	}
	cfg, ok := ctx.Value(configKey).(*config.Config)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("configuration not found in context")
	}
	return cfg, nil
}

// buildDispatcher loads the configured templates, in order, followed by the
// trend analyzer when enabled.
func buildDispatcher(cfg config.Interface, logger *zap.Logger) (*dispatch.Dispatcher, error) {
	answerers, err := dispatch.LoadModels(cfg.Templates().Dir, cfg.Templates().Names, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Trend().Enabled {
		answerers = append(answerers, trend.NewAnalyzer(
			trend.WithSamples(cfg.Trend().Samples),
			trend.WithLogger(logger),
		))
	}
	return dispatch.New(logger, answerers...), nil
}
