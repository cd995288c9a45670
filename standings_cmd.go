package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/Nydauron/cyclingportal/portal"
	"github.com/Nydauron/cyclingportal/report"
	"github.com/Nydauron/cyclingportal/writers"
)

func standingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "standings",
		Usage: "Write a race's stage results and classifications",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: raceFlag, Required: true},
			&cli.StringFlag{
				Name:    outputFlag,
				Aliases: []string{"o"},
				Usage:   "The location to write the YAML result. Can be a file path or \"-\" (for stdout).",
				Value:   stdoutCLIName,
			},
			&cli.StringFlag{Name: "xlsx", Usage: "Also write an XLSX protocol to this path"},
		},
		Action: func(cCtx *cli.Context) error {
			return withPortal(cCtx, false, func(p *portal.Portal) error {
				r, err := report.Generate(p, cCtx.Int(raceFlag))
				if err != nil {
					return err
				}
				if err := writeYAML(cCtx, r); err != nil {
					return err
				}
				if path := cCtx.String("xlsx"); path != "" {
					out := writers.NewLazyFile(path)
					defer out.Close()
					if err := report.WriteXLSX(out, r); err != nil {
						return cli.Exit(fmt.Sprintf("writing XLSX protocol failed: %v", err), exitEncoding)
					}
					logger.Info().Str("path", path).Msg("protocol written")
				}
				return nil
			})
		},
	}
}

func writeYAML(cCtx *cli.Context, r *report.Report) error {
	out := writers.Output(cCtx.String(outputFlag), cCtx.App.Writer)
	defer out.Close()

	yamlEncoder := yaml.NewEncoder(out)
	yamlEncoder.SetIndent(2)
	if err := yamlEncoder.Encode(r); err != nil {
		return cli.Exit(fmt.Sprintf("Encoding to YAML failed: %v", err), exitEncoding)
	}
	if err := yamlEncoder.Close(); err != nil {
		return cli.Exit(fmt.Sprintf("Encoding to YAML failed on close: %v", err), exitEncoding)
	}
	return nil
}
