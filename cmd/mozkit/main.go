package main

import (
	stdlog "log"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "mozkit",
		Usage:   "command-line frontend for the mozkit utility packages",
		Version: Version,
		Commands: []*cli.Command{
			randCommand,
			hashCommand,
			utf8Command,
			escapeCommand,
			serveCommand,
			logsCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		stdlog.Fatal(err)
	}
}
