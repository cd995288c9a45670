package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

const (
	snapshotFlag    = "snapshot"
	dbFlag          = "db"
	portalFlag      = "portal"
	nameFlag        = "name"
	logLevelFlag    = "log-level"
	logJSONFlag     = "log-json"
	interactiveFlag = "interactive"
	outputFlag      = "output"
	stdoutCLIName   = "-"
)

// exit codes
const (
	exitInput    = 2
	exitEncoding = 3
	exitParse    = 4
)

var build string
var semanticVersion = "v0.1.0-dev" + build

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

func setupLogger(cCtx *cli.Context) error {
	level, err := zerolog.ParseLevel(cCtx.String(logLevelFlag))
	if err != nil {
		return cli.Exit(err.Error(), exitInput)
	}
	if cCtx.Bool(logJSONFlag) {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	logger = logger.Level(level)
	return nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "cyclingportal",
		Usage:   "Manage multi-stage cycling races and compute their classifications",
		Version: semanticVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    snapshotFlag,
				Aliases: []string{"s"},
				Usage:   "YAML snapshot file holding the portal",
				Value:   "portal.yaml",
				EnvVars: []string{"CYCLINGPORTAL_SNAPSHOT"},
			},
			&cli.StringFlag{
				Name:    dbFlag,
				Usage:   "Badger database directory; takes precedence over --snapshot",
				EnvVars: []string{"CYCLINGPORTAL_DB"},
			},
			&cli.StringFlag{
				Name:    portalFlag,
				Usage:   "Name of the portal inside the database",
				Value:   "default",
				EnvVars: []string{"CYCLINGPORTAL_NAME"},
			},
			&cli.StringFlag{
				Name:    logLevelFlag,
				Usage:   "Log level (trace, debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"CYCLINGPORTAL_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:  logJSONFlag,
				Usage: "Write logs as JSON instead of console text",
			},
			&cli.BoolFlag{
				Name:    interactiveFlag,
				Aliases: []string{"I"},
				Usage:   "Ask for missing values on stdin",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			initCommand(),
			raceCommand(),
			teamCommand(),
			riderCommand(),
			stageCommand(),
			segmentCommand(),
			resultsCommand(),
			standingsCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Fatal().Err(err).Msg("command failed")
	}
}
