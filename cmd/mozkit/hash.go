package main

import (
	"fmt"
	"io"
	"os"

	"github.com/opd-ai/firefox/pkg/hashbytes"

	"github.com/urfave/cli/v2"
)

var hashCommand = &cli.Command{
	Name:      "hash",
	Usage:     "hash arguments (or stdin) with the 32-bit golden-ratio hash",
	UsageText: "mozkit hash [command options] [string...]",
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:    "seed",
			Aliases: []string{"s"},
			Usage:   "32-bit starting hash value `SEED`",
		},
	},
	Action: hashCmd,
}

func hashCmd(c *cli.Context) error {
	seed := uint32(c.Uint64("seed"))

	if c.NArg() == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error reading stdin: %v", err), 1)
		}
		fmt.Printf("%#08x\n", hashbytes.HashBytes(data, seed))
		return nil
	}

	for _, arg := range c.Args().Slice() {
		fmt.Printf("%#08x  %s\n", hashbytes.HashString(arg, seed), arg)
	}
	return nil
}
