package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/opd-ai/firefox/pkg/jsonescape"

	"github.com/urfave/cli/v2"
)

var escapeCommand = &cli.Command{
	Name:      "escape",
	Usage:     "JSON-escape arguments (or stdin lines)",
	UsageText: "mozkit escape [string...]",
	Action:    escapeCmd,
}

func escapeCmd(c *cli.Context) error {
	if c.NArg() > 0 {
		for _, arg := range c.Args().Slice() {
			fmt.Println(jsonescape.EscapeString(arg))
		}
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fmt.Println(jsonescape.EscapeString(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return cli.Exit(fmt.Sprintf("Error reading stdin: %v", err), 1)
	}
	return nil
}
