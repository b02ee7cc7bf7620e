package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/catering"
	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/config"
)

// newVersionCmd creates the version command, which reports the client
// version and probes the configured server for its identity and
// compatibility. An unreachable server is reported, not an error; the
// command exists to answer "what am I running against".
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show client and server versions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Printf("client: caterview %s\n", cmd.Root().Version)

			cfg, err := configFromCmd(cmd)
			if err != nil {
				return err
			}

			client, err := catering.NewClient(catering.ClientOptions{
				BaseURL:  cfg.API.BaseURL,
				Token:    cfg.API.Token,
				Timeout:  cfg.API.Timeout(),
				RetryMax: cfg.API.RetryMax,
				Logger:   config.GetLogger().With().Str("component", "catering").Logger(),
			})
			if err != nil {
				return err
			}

			info, err := client.CheckCompat(cmd.Context())
			switch {
			case err == nil:
				cmd.Printf("server: %s %s (status %s)\n", info.App, info.Version, info.Status)
				cmd.Printf("compatibility: ok\n")
			case errors.Is(err, catering.ErrIncompatibleServer):
				cmd.Printf("server: %s %s\n", info.App, info.Version)
				cmd.Printf("compatibility: %v\n", err)
			default:
				cmd.Printf("server: unreachable at %s: %v\n", cfg.API.BaseURL, err)
			}
			return nil
		},
	}
}
