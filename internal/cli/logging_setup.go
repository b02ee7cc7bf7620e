package cli

import (
	"github.com/spf13/cobra"

	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/config"
)

// setupLogging configures the global logger. The config file sets the
// baseline, the CATERVIEW_LOG_LEVEL environment variable was already
// applied during load, and the CLI flags win over both. --debug beats
// --log-level.
func setupLogging(cmd *cobra.Command, cfg *config.Config) error {
	loggingCfg := cfg.Logging

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		loggingCfg.Level = level
	}
	if file, _ := cmd.Flags().GetString("log-file"); file != "" {
		loggingCfg.File = file
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		loggingCfg.Level = "debug"
	}

	if err := config.InitLogger(loggingCfg); err != nil {
		return err
	}

	logger = config.GetLogger().With().Str("component", "cli").Logger()
	logger.Debug().Str("command", cmd.Name()).Msg("command started")
	return nil
}
