package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing
// configuration. It writes the commented default file to
// ~/.caterview/config.yaml, or wherever --config / CATERVIEW_CONFIG
// points.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

The file goes to ~/.caterview/config.yaml unless --config or the
CATERVIEW_CONFIG environment variable points elsewhere.`,
		Example: `  # Create the global configuration
  caterview config init

  # Recreate it from defaults
  caterview config init --force

  # Create a configuration somewhere else
  caterview --config ./caterview.yaml config init`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := resolveConfigPath(cmd)
			if err != nil {
				return err
			}

			if _, statErr := os.Stat(path); statErr == nil {
				if !force {
					return errors.New("configuration file already exists, use --force to overwrite")
				}
				if removeErr := os.Remove(path); removeErr != nil {
					return fmt.Errorf("removing existing config file: %w", removeErr)
				}
			} else if !errors.Is(statErr, fs.ErrNotExist) {
				return fmt.Errorf("cannot access config path %s: %w", path, statErr)
			}

			if err := config.WriteDefault(path); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			cmd.Printf("Configuration initialized successfully\n")
			cmd.Printf("Configuration file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}
