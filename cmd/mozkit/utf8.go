package main

import (
	"fmt"
	"io"
	"os"

	"github.com/opd-ai/firefox/internal/fn"
	"github.com/opd-ai/firefox/pkg/utf8check"

	"github.com/urfave/cli/v2"
)

var utf8Command = &cli.Command{
	Name:      "utf8",
	Usage:     "check files (or stdin) for strictly valid UTF-8",
	UsageText: "mozkit utf8 [file...]",
	Action:    utf8Cmd,
}

func utf8Cmd(c *cli.Context) error {
	if c.NArg() == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error reading stdin: %v", err), 1)
		}
		ok := utf8check.Valid(data)
		fmt.Printf("stdin: %s\n", fn.T(ok, "valid", "INVALID"))
		return fn.T[error](ok, nil, cli.Exit("", 1))
	}

	exitCode := 0
	for _, name := range c.Args().Slice() {
		data, err := os.ReadFile(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", name, err)
			exitCode = 1
			continue
		}
		ok := utf8check.Valid(data)
		fmt.Printf("%s: %s\n", name, fn.T(ok, "valid", "INVALID"))
		if !ok {
			exitCode = 1
		}
	}
	if exitCode != 0 {
		return cli.Exit("", exitCode)
	}
	return nil
}
