package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Debug   bool             `help:"Enable debug logging"`

	ICM      ICMCmd      `cmd:"" name:"icm" help:"Compute tournament equities for a chip distribution"`
	PushFold PushFoldCmd `cmd:"" name:"push-fold" help:"Evaluate a push/fold decision"`
	Chart    ChartCmd    `cmd:"" help:"Render a push/fold chart for all 169 hand classes"`
	Presets  PresetsCmd  `cmd:"" help:"List the payout and blind presets"`
	Serve    ServeCmd    `cmd:"" help:"Run the training server"`
}

func (c *CLI) setupLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if c.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gto-trainer"),
		kong.Description("ICM calculator and push/fold trainer for tournament poker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(cli.setupLogger())
	ctx.FatalIfErrorf(err)
}
