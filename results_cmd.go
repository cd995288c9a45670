package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Nydauron/cyclingportal/parsers"
	"github.com/Nydauron/cyclingportal/portal"
	"github.com/Nydauron/cyclingportal/report"
)

const (
	inputFlag = "input"
	htmlFlag  = "html"
)

func parseCheckpoints(raw string) ([]time.Time, error) {
	var checkpoints []time.Time
	for _, cell := range strings.Split(raw, ",") {
		t, err := time.Parse("15:04:05", strings.TrimSpace(cell))
		if err != nil {
			return nil, fmt.Errorf("checkpoint %q: %w", cell, err)
		}
		checkpoints = append(checkpoints, t)
	}
	return checkpoints, nil
}

// openInput accepts a URL or a path, the way result tables are usually shared.
func openInput(location string) (io.ReadCloser, error) {
	if u, err := url.ParseRequestURI(location); err == nil && u.Scheme != "" && u.Host != "" {
		logger.Info().Str("url", u.String()).Msg("URL detected")
		resp, err := http.Get(u.String())
		if err != nil {
			return nil, fmt.Errorf("fetching page: %w", err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("invalid HTTP status code received: %v", resp.Status)
		}
		return resp.Body, nil
	}
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("provided input was neither a valid URL or a path to existing file: %v", location)
	}
	logger.Debug().Str("path", location).Msg("file detected")
	return f, nil
}

func stageAndRiderFlags(extra ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		&cli.IntFlag{Name: stageFlag, Required: true},
		&cli.IntFlag{Name: riderFlag, Required: true},
	}, extra...)
}

func resultsCommand() *cli.Command {
	return &cli.Command{
		Name:  "results",
		Usage: "Register, import, show and delete rider checkpoints",
		Subcommands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Register one rider's checkpoints: start, one per segment, finish",
				Flags: stageAndRiderFlags(
					&cli.StringFlag{Name: "checkpoints", Required: true, Usage: "Comma separated 15:04:05 clock times"},
				),
				Action: func(cCtx *cli.Context) error {
					checkpoints, err := parseCheckpoints(cCtx.String("checkpoints"))
					if err != nil {
						return cli.Exit(err.Error(), exitParse)
					}
					return withPortal(cCtx, true, func(p *portal.Portal) error {
						return p.RegisterRiderResultsInStage(cCtx.Int(stageFlag), cCtx.Int(riderFlag), checkpoints...)
					})
				},
			},
			{
				Name:   "import",
				Usage:  "Register every row of a CSV or HTML checkpoint table",
				Action: importResults,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: stageFlag, Required: true},
					&cli.StringFlag{Name: inputFlag, Aliases: []string{"i"}, Required: true, Usage: "The URL or path to the checkpoint table"},
					&cli.BoolFlag{Name: htmlFlag, Usage: "Input is an HTML page with a results-table rather than a CSV file"},
				},
			},
			{
				Name:  "show",
				Usage: "Print a rider's intermediate checkpoints and elapsed time",
				Flags: stageAndRiderFlags(),
				Action: func(cCtx *cli.Context) error {
					return withPortal(cCtx, false, func(p *portal.Portal) error {
						stageID, riderID := cCtx.Int(stageFlag), cCtx.Int(riderFlag)
						results, err := p.RiderResultsInStage(stageID, riderID)
						if err != nil {
							return err
						}
						if len(results) == 0 {
							fmt.Fprintf(cCtx.App.Writer, "rider %d has no results in stage %d\n", riderID, stageID)
							return nil
						}
						for _, t := range results[:len(results)-1] {
							fmt.Fprintln(cCtx.App.Writer, formatClock(t))
						}
						adjusted, _, err := p.RiderAdjustedElapsedTimeInStage(stageID, riderID)
						if err != nil {
							return err
						}
						elapsed := portal.SinceMidnight(results[len(results)-1])
						fmt.Fprintf(cCtx.App.Writer, "elapsed %s adjusted %s\n", report.FormatDuration(elapsed), report.FormatDuration(adjusted))
						return nil
					})
				},
			},
			{
				Name:  "delete",
				Flags: stageAndRiderFlags(),
				Action: func(cCtx *cli.Context) error {
					return withPortal(cCtx, true, func(p *portal.Portal) error {
						return p.DeleteRiderResultsInStage(cCtx.Int(stageFlag), cCtx.Int(riderFlag))
					})
				},
			},
		},
	}
}

func importResults(cCtx *cli.Context) error {
	in, err := openInput(cCtx.String(inputFlag))
	if err != nil {
		return cli.Exit(err.Error(), exitInput)
	}
	defer in.Close()

	var table *parsers.Table
	if cCtx.Bool(htmlFlag) {
		table, err = parsers.ParseHTML(in)
	} else {
		table, err = parsers.ParseCSV(in)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("parsing checkpoint table: %v", err), exitParse)
	}

	stageID := cCtx.Int(stageFlag)
	return withPortal(cCtx, true, func(p *portal.Portal) error {
		for _, row := range table.Rows {
			if err := p.RegisterRiderResultsInStage(stageID, row.RiderID, row.Checkpoints...); err != nil {
				return fmt.Errorf("rider %d: %w", row.RiderID, err)
			}
		}
		logger.Info().Int("stage", stageID).Int("riders", len(table.Rows)).Msg("results imported")
		return nil
	})
}
