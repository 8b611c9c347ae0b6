package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/opd-ai/firefox/pkg/log"
	"github.com/opd-ai/firefox/pkg/transform"

	"github.com/klauspost/compress/zstd"
	"github.com/urfave/cli/v2"
)

// timeFormats includes common layouts to try when parsing absolute time
// strings. Order matters; more specific formats come earlier.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimeSpec parses a string as either a relative duration from now
// (e.g. "1h", "30m") or an absolute timestamp in one of timeFormats.
func parseTimeSpec(spec string) (time.Time, error) {
	duration, err := time.ParseDuration(spec)
	if err == nil {
		return time.Now().Add(-duration), nil
	}
	for _, layout := range timeFormats {
		if ts, err := time.Parse(layout, spec); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time specification: '%s'. Use relative duration (e.g., '1h', '30m') or absolute format (e.g., '2023-10-27T15:04:05Z')", spec)
}

var logsCommand = &cli.Command{
	Name:        "logs",
	Usage:       "Retrieve JSON log entries from the application's log database",
	UsageText:   "mozkit logs [command options] [--last|--since|--between] [mode options]",
	Description: `Retrieves logs stored in the SQLite database under ~/.mozkit.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "dbfile",
			Aliases: []string{"f"},
			Usage:   "Log database file name under the app directory `NAME`",
			Value:   "mozkit.db",
		},
		&cli.StringFlag{
			Name:    "export",
			Aliases: []string{"x"},
			Usage:   "Write results to `PATH` instead of stdout; a .zst suffix compresses with zstandard",
		},

		&cli.BoolFlag{
			Name:  "last",
			Usage: "Mode: Retrieve the most recent N log entries (default)",
		},
		&cli.BoolFlag{
			Name:  "since",
			Usage: "Mode: Retrieve logs since a specific start time",
		},
		&cli.BoolFlag{
			Name:  "between",
			Usage: "Mode: Retrieve logs between a specific start and end time",
		},

		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "Number of entries for --last mode `NUMBER`",
			Value:   100,
		},
		&cli.StringFlag{
			Name:    "start",
			Aliases: []string{"s"},
			Usage:   "Start time for --since/--between `TIME_SPEC` (e.g., '1h', '2023-10-27T10:00:00Z')",
		},
		&cli.StringFlag{
			Name:    "end",
			Aliases: []string{"e"},
			Usage:   "End time for --between `TIME_SPEC` (e.g., '30m', '2023-10-27T11:00:00')",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Usage:   "Max entries for --since/--between `NUMBER`",
			Value:   1000,
		},
	},
	Action: logsCmd,
}

func logsCmd(c *cli.Context) error {
	dbFile := c.String("dbfile")

	isLast := c.Bool("last")
	isSince := c.Bool("since")
	isBetween := c.Bool("between")

	modeCount := 0
	for _, b := range []bool{isLast, isSince, isBetween} {
		if b {
			modeCount++
		}
	}
	if modeCount == 0 {
		isLast = true
	} else if modeCount > 1 {
		return cli.Exit("Error: Only one mode flag (--last, --since, --between) can be specified at a time.", 1)
	}

	if err := log.Init(dbFile); err != nil {
		if os.IsNotExist(err) {
			return cli.Exit(fmt.Sprintf("Error: Database file not found at '%s'", dbFile), 1)
		}
		return cli.Exit(fmt.Sprintf("Error initializing logger (required for DB access): %v", err), 1)
	}
	defer log.Close()

	var results []log.LogEntry
	var retrievalErr error

	switch {
	case isLast:
		if c.IsSet("start") || c.IsSet("end") {
			fmt.Fprintln(os.Stderr, "Warning: --start (-s) and --end (-e) flags are ignored in --last mode.")
		}
		count := c.Int("count")
		if count <= 0 {
			return cli.Exit("Error: --count (-n) must be a positive number.", 1)
		}
		results, retrievalErr = log.GetLastNLogs(count)

	case isSince:
		if !c.IsSet("start") {
			return cli.Exit("Error: --start (-s) flag is required for --since mode.", 1)
		}
		if c.IsSet("end") {
			fmt.Fprintln(os.Stderr, "Warning: --end (-e) flag is ignored in --since mode.")
		}
		startTime, err := parseTimeSpec(c.String("start"))
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error parsing start time: %v", err), 1)
		}
		results, retrievalErr = log.GetLogsSince(startTime, c.Int("limit"))

	case isBetween:
		if !c.IsSet("start") {
			return cli.Exit("Error: --start (-s) flag is required for --between mode.", 1)
		}
		if !c.IsSet("end") {
			return cli.Exit("Error: --end (-e) flag is required for --between mode.", 1)
		}
		startTime, err := parseTimeSpec(c.String("start"))
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error parsing start time: %v", err), 1)
		}
		endTime, err := parseTimeSpec(c.String("end"))
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error parsing end time: %v", err), 1)
		}
		if startTime.After(endTime) {
			fmt.Fprintf(os.Stderr, "Warning: Start time (%s) is after end time (%s).\n", startTime.Format(time.RFC3339), endTime.Format(time.RFC3339))
		}
		results, retrievalErr = log.GetLogsBetween(startTime, endTime, c.Int("limit"))
	}

	if retrievalErr != nil {
		if errors.Is(retrievalErr, log.ErrNotInitialized) {
			return cli.Exit("Internal Error: Logger DB handle became unavailable.", 2)
		}
		return cli.Exit(fmt.Sprintf("Error retrieving logs: %v", retrievalErr), 1)
	}

	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "No log entries found matching the criteria.")
		return nil
	}

	if exportPath := c.String("export"); exportPath != "" {
		return exportLogs(exportPath, results)
	}

	for _, entry := range results {
		fmt.Println(entry.LogData)
	}
	return nil
}

// exportLogs writes the entries to a file as JSON lines, compressed with
// zstandard when the path ends in .zst.
func exportLogs(path string, entries []log.LogEntry) error {
	var sb strings.Builder
	for _, entry := range entries {
		sb.WriteString(entry.LogData)
		if !strings.HasSuffix(entry.LogData, "\n") {
			sb.WriteByte('\n')
		}
	}
	data := []byte(sb.String())

	if strings.HasSuffix(path, ".zst") {
		tr, err := transform.NewZstdTransform(zstd.SpeedDefault)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error initializing compressor: %v", err), 1)
		}
		data, err = tr.Apply(data)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error compressing logs: %v", err), 1)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return cli.Exit(fmt.Sprintf("Error writing export file: %v", err), 1)
	}
	fmt.Fprintf(os.Stderr, "Exported %d entries to %s\n", len(entries), path)
	return nil
}
