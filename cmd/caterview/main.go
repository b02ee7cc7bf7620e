package main

import (
	"os"

	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/cli"
	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/config"
)

// version is stamped at build time:
//
//	go build -ldflags "-X main.version=v1.2.3" ./cmd/caterview
var version = "dev"

func main() {
	os.Exit(run())
}

// run executes the root command and maps the result to an exit code.
// Errors have already been printed by cobra; the config logger gets a
// structured copy for log-file readers.
func run() int {
	root := cli.NewRootCmd(version)
	if err := root.Execute(); err != nil {
		logger := config.GetLogger()
		logger.Error().Err(err).Msg("command failed")
		return 1
	}
	return 0
}
