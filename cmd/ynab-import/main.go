package main

import (
	"os"

	"github.com/ynab-import/ynab-import/internal/commands"
	"github.com/ynab-import/ynab-import/internal/logger"
	"github.com/ynab-import/ynab-import/internal/run"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		log := logger.New()
		log.Error().Err(err).Str("stage", string(run.StageOf(err))).Msg("Import failed")
		os.Exit(run.ExitCode(err))
	}
}
