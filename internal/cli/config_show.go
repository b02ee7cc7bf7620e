package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/config"
)

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration: file values plus workspace overlay plus
// environment overrides.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Example: `  # Show what an explore command would run with
  caterview config show

  # Show a specific file's effective configuration
  caterview --config ./caterview.yaml config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshalling configuration: %w", err)
			}
			cmd.Print(string(data))
			return nil
		},
	}
}

// NewConfigPathCmd creates the config path command, which prints where
// the configuration is read from.
func NewConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := resolveConfigPath(cmd)
			if err != nil {
				return err
			}

			cmd.Println(path)
			if _, statErr := os.Stat(path); statErr != nil {
				cmd.Println("(not created yet; run 'caterview config init')")
			}
			return nil
		},
	}
}
