package cli

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/config"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// configContextKey carries the loaded configuration from the root
// command's PersistentPreRunE to subcommand RunE functions.
type configContextKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configContextKey{}, cfg)
}

// configFromCmd returns the configuration loaded by the root command.
func configFromCmd(cmd *cobra.Command) (*config.Config, error) {
	cfg, ok := cmd.Context().Value(configContextKey{}).(*config.Config)
	if !ok || cfg == nil {
		return nil, errors.New("configuration not loaded; root command hooks did not run")
	}
	return cfg, nil
}

// resolveConfigPath returns the config file location: the --config flag
// when given, otherwise the default path (which honors CATERVIEW_CONFIG).
func resolveConfigPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

// NewRootCmd creates the root Cobra command for the caterview CLI. It
// wires up configuration loading, logging, the four explore dashboards,
// and the config and version subcommands.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "caterview",
		Short:   "Catering operations dashboard",
		Long:    "Caterview: drill into catering purchase costs, quantities, supplier budgets and meal counts from the terminal",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if err := setupLogging(cmd, cfg); err != nil {
				return err
			}

			cmd.SetContext(withConfig(cmd.Context(), cfg))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			config.CloseLogFile()
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default ~/.caterview/config.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().String("log-file", "", "append logs to this file")

	cmd.AddCommand(
		newCostsCmd(), newQuantitiesCmd(), newBudgetsCmd(), newMealsCmd(),
		newConfigCmd(), newVersionCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Explore purchase costs for the configured year
  caterview costs

  # Explore quantities for March through September 2025
  caterview quantities --year 2025 --from 3 --to 9

  # Budget vs actual, filtered to one site
  caterview budgets --site 4

  # Meal counts with debug logs routed to a file
  caterview meals --log-level debug --log-file /tmp/caterview.log

  # Initialize configuration
  caterview config init

  # Show the effective configuration
  caterview config show`

// newConfigCmd creates the config command group. It replaces the root's
// load-and-validate hook with a defaults-only logging setup so the config
// commands stay usable when the config file itself is broken.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd, config.New())
		},
	}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigPathCmd())
	return cmd
}
