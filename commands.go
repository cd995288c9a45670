package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Nydauron/cyclingportal/portal"
	"github.com/Nydauron/cyclingportal/prompts"
)

const (
	idFlag          = "id"
	raceFlag        = "race"
	stageFlag       = "stage"
	teamFlag        = "team"
	riderFlag       = "rider"
	descriptionFlag = "description"
)

func printIDs(cCtx *cli.Context, ids []int) {
	for _, id := range ids {
		fmt.Fprintln(cCtx.App.Writer, id)
	}
}

// stringOrPrompt returns the flag value, asking for it on stdin when the flag is empty
// and --interactive is set.
func stringOrPrompt(cCtx *cli.Context, flag string, ask func() (string, error)) (string, error) {
	if v := cCtx.String(flag); v != "" || !cCtx.Bool(interactiveFlag) {
		return v, nil
	}
	return ask()
}

func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create an empty portal, erasing any existing one",
		Action: func(cCtx *cli.Context) error {
			return withPortal(cCtx, true, func(p *portal.Portal) error {
				p.Erase()
				logger.Info().Msg("portal initialised")
				return nil
			})
		},
	}
}

func raceCommand() *cli.Command {
	return &cli.Command{
		Name:  "race",
		Usage: "Create, list, show and remove races",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a race and print its id",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: nameFlag, Aliases: []string{"n"}, Usage: "Race name (no spaces, at most 30 characters)"},
					&cli.StringFlag{Name: descriptionFlag, Aliases: []string{"d"}},
				},
				Action: func(cCtx *cli.Context) error {
					name, err := stringOrPrompt(cCtx, nameFlag, func() (string, error) { return prompts.NamePrompt("Race") })
					if err != nil {
						return err
					}
					return withPortal(cCtx, true, func(p *portal.Portal) error {
						id, err := p.CreateRace(name, cCtx.String(descriptionFlag))
						if err != nil {
							return err
						}
						printIDs(cCtx, []int{id})
						return nil
					})
				},
			},
			{
				Name:  "list",
				Usage: "Print every race id",
				Action: func(cCtx *cli.Context) error {
					return withPortal(cCtx, false, func(p *portal.Portal) error {
						printIDs(cCtx, p.RaceIDs())
						return nil
					})
				},
			},
			{
				Name:  "show",
				Usage: "Print a race's details and stage ids",
				Flags: []cli.Flag{&cli.IntFlag{Name: idFlag, Required: true}},
				Action: func(cCtx *cli.Context) error {
					return withPortal(cCtx, false, func(p *portal.Portal) error {
						details, err := p.ViewRaceDetails(cCtx.Int(idFlag))
						if err != nil {
							return err
						}
						fmt.Fprintln(cCtx.App.Writer, details)
						return nil
					})
				},
			},
			{
				Name:  "remove",
				Usage: "Remove a race by id or by name",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: idFlag},
					&cli.StringFlag{Name: nameFlag, Aliases: []string{"n"}},
				},
				Action: func(cCtx *cli.Context) error {
					return withPortal(cCtx, true, func(p *portal.Portal) error {
						if cCtx.IsSet(nameFlag) {
							return p.RemoveRaceByName(cCtx.String(nameFlag))
						}
						if !cCtx.IsSet(idFlag) {
							return fmt.Errorf("one of --%s or --%s is required", idFlag, nameFlag)
						}
						return p.RemoveRaceByID(cCtx.Int(idFlag))
					})
				},
			},
		},
	}
}

func teamCommand() *cli.Command {
	return &cli.Command{
		Name:  "team",
		Usage: "Create, list and remove teams",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a team and print its id",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: nameFlag, Aliases: []string{"n"}},
					&cli.StringFlag{Name: descriptionFlag, Aliases: []string{"d"}},
				},
				Action: func(cCtx *cli.Context) error {
					name, err := stringOrPrompt(cCtx, nameFlag, func() (string, error) { return prompts.NamePrompt("Team") })
					if err != nil {
						return err
					}
					return withPortal(cCtx, true, func(p *portal.Portal) error {
						id, err := p.CreateTeam(name, cCtx.String(descriptionFlag))
						if err != nil {
							return err
						}
						printIDs(cCtx, []int{id})
						return nil
					})
				},
			},
			{
				Name:  "list",
				Usage: "Print team ids, or the rider ids of one team",
				Flags: []cli.Flag{&cli.IntFlag{Name: idFlag}},
				Action: func(cCtx *cli.Context) error {
					return withPortal(cCtx, false, func(p *portal.Portal) error {
						if !cCtx.IsSet(idFlag) {
							printIDs(cCtx, p.Teams())
							return nil
						}
						riders, err := p.TeamRiders(cCtx.Int(idFlag))
						if err != nil {
							return err
						}
						printIDs(cCtx, riders)
						return nil
					})
				},
			},
			{
				Name:  "remove",
				Usage: "Remove a team, its riders and their results",
				Flags: []cli.Flag{&cli.IntFlag{Name: idFlag, Required: true}},
				Action: func(cCtx *cli.Context) error {
					return withPortal(cCtx, true, func(p *portal.Portal) error {
						return p.RemoveTeam(cCtx.Int(idFlag))
					})
				},
			},
		},
	}
}

func riderCommand() *cli.Command {
	return &cli.Command{
		Name:  "rider",
		Usage: "Create and remove riders",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a rider in a team and print its id",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: teamFlag, Required: true},
					&cli.StringFlag{Name: nameFlag, Aliases: []string{"n"}},
					&cli.IntFlag{Name: "year", Usage: "Year of birth"},
				},
				Action: func(cCtx *cli.Context) error {
					name, err := stringOrPrompt(cCtx, nameFlag, func() (string, error) { return prompts.NamePrompt("Rider") })
					if err != nil {
						return err
					}
					year := cCtx.Int("year")
					if !cCtx.IsSet("year") && cCtx.Bool(interactiveFlag) {
						if year, err = prompts.YearOfBirthPrompt(); err != nil {
							return err
						}
					}
					return withPortal(cCtx, true, func(p *portal.Portal) error {
						id, err := p.CreateRider(cCtx.Int(teamFlag), name, year)
						if err != nil {
							return err
						}
						printIDs(cCtx, []int{id})
						return nil
					})
				},
			},
			{
				Name:  "remove",
				Usage: "Remove a rider and their results",
				Flags: []cli.Flag{&cli.IntFlag{Name: idFlag, Required: true}},
				Action: func(cCtx *cli.Context) error {
					return withPortal(cCtx, true, func(p *portal.Portal) error {
						return p.RemoveRider(cCtx.Int(idFlag))
					})
				},
			},
		},
	}
}

func stageCommand() *cli.Command {
	return &cli.Command{
		Name:  "stage",
		Usage: "Add, conclude, remove and inspect stages",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a stage to a race and print its id",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: raceFlag, Required: true},
					&cli.StringFlag{Name: nameFlag, Aliases: []string{"n"}},
					&cli.StringFlag{Name: descriptionFlag, Aliases: []string{"d"}},
					&cli.Float64Flag{Name: "length", Usage: "Stage length in km (at least 5)"},
					&cli.StringFlag{Name: "start", Usage: "Start as \"" + prompts.StartTimeLayout + "\""},
					&cli.StringFlag{Name: "type", Usage: "flat, mm, hm or tt"},
				},
				Action: addStage,
			},
			{
				Name:  "conclude",
				Usage: "Freeze the stage's segments and open it for results",
				Flags: []cli.Flag{&cli.IntFlag{Name: idFlag, Required: true}},
				Action: func(cCtx *cli.Context) error {
					return withPortal(cCtx, true, func(p *portal.Portal) error {
						return p.ConcludeStagePreparation(cCtx.Int(idFlag))
					})
				},
			},
			{
				Name:  "remove",
				Flags: []cli.Flag{&cli.IntFlag{Name: idFlag, Required: true}},
				Action: func(cCtx *cli.Context) error {
					return withPortal(cCtx, true, func(p *portal.Portal) error {
						return p.RemoveStageByID(cCtx.Int(idFlag))
					})
				},
			},
			{
				Name:  "list",
				Usage: "Print the stage ids of a race",
				Flags: []cli.Flag{&cli.IntFlag{Name: raceFlag, Required: true}},
				Action: func(cCtx *cli.Context) error {
					return withPortal(cCtx, false, func(p *portal.Portal) error {
						ids, err := p.RaceStages(cCtx.Int(raceFlag))
						if err != nil {
							return err
						}
						printIDs(cCtx, ids)
						return nil
					})
				},
			},
			{
				Name:  "segments",
				Usage: "Print the segment ids of a stage in route order",
				Flags: []cli.Flag{&cli.IntFlag{Name: idFlag, Required: true}},
				Action: func(cCtx *cli.Context) error {
					return withPortal(cCtx, false, func(p *portal.Portal) error {
						ids, err := p.StageSegments(cCtx.Int(idFlag))
						if err != nil {
							return err
						}
						printIDs(cCtx, ids)
						return nil
					})
				},
			},
		},
	}
}

func addStage(cCtx *cli.Context) error {
	interactive := cCtx.Bool(interactiveFlag)
	name, err := stringOrPrompt(cCtx, nameFlag, func() (string, error) { return prompts.NamePrompt("Stage") })
	if err != nil {
		return err
	}

	length := cCtx.Float64("length")
	if !cCtx.IsSet("length") && interactive {
		if length, err = prompts.LengthPrompt("Stage"); err != nil {
			return err
		}
	}

	var start time.Time
	if raw := cCtx.String("start"); raw != "" {
		if start, err = time.Parse(prompts.StartTimeLayout, raw); err != nil {
			return cli.Exit(fmt.Sprintf("invalid --start: %v", err), exitParse)
		}
	} else if interactive {
		if start, err = prompts.StartTimePrompt(); err != nil {
			return err
		}
	}

	stageType := portal.Flat
	if raw := cCtx.String("type"); raw != "" {
		var ok bool
		if stageType, ok = prompts.TranslateStageType(raw); !ok {
			return cli.Exit(fmt.Sprintf("unknown stage type %q", raw), exitParse)
		}
	} else if interactive {
		if stageType, err = prompts.StageTypePrompt(); err != nil {
			return err
		}
	}

	return withPortal(cCtx, true, func(p *portal.Portal) error {
		id, err := p.AddStageToRace(cCtx.Int(raceFlag), name, cCtx.String(descriptionFlag), length, start, stageType)
		if err != nil {
			return err
		}
		printIDs(cCtx, []int{id})
		return nil
	})
}

func segmentCommand() *cli.Command {
	return &cli.Command{
		Name:  "segment",
		Usage: "Add and remove intermediate sprints and categorized climbs",
		Subcommands: []*cli.Command{
			{
				Name:  "sprint",
				Usage: "Add an intermediate sprint and print its id",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: stageFlag, Required: true},
					&cli.Float64Flag{Name: "location", Required: true, Usage: "km from the stage start"},
				},
				Action: func(cCtx *cli.Context) error {
					return withPortal(cCtx, true, func(p *portal.Portal) error {
						id, err := p.AddIntermediateSprintToStage(cCtx.Int(stageFlag), cCtx.Float64("location"))
						if err != nil {
							return err
						}
						printIDs(cCtx, []int{id})
						return nil
					})
				},
			},
			{
				Name:  "climb",
				Usage: "Add a categorized climb and print its id",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: stageFlag, Required: true},
					&cli.Float64Flag{Name: "location", Required: true, Usage: "km from the stage start to the top"},
					&cli.StringFlag{Name: "category", Usage: "4, 3, 2, 1 or hc"},
					&cli.Float64Flag{Name: "gradient", Usage: "Average gradient in percent"},
					&cli.Float64Flag{Name: "length", Usage: "Climb length in km"},
				},
				Action: addClimb,
			},
			{
				Name:  "remove",
				Flags: []cli.Flag{&cli.IntFlag{Name: idFlag, Required: true}},
				Action: func(cCtx *cli.Context) error {
					return withPortal(cCtx, true, func(p *portal.Portal) error {
						return p.RemoveSegment(cCtx.Int(idFlag))
					})
				},
			},
		},
	}
}

func addClimb(cCtx *cli.Context) error {
	var category portal.SegmentCategory
	var err error
	if raw := cCtx.String("category"); raw != "" {
		var ok bool
		if category, ok = prompts.TranslateSegmentCategory(raw); !ok || !category.IsClimb() {
			return cli.Exit(fmt.Sprintf("unknown climb category %q", raw), exitParse)
		}
	} else if cCtx.Bool(interactiveFlag) {
		if category, err = prompts.SegmentCategoryPrompt(); err != nil {
			return err
		}
	} else {
		return cli.Exit("--category is required", exitInput)
	}

	return withPortal(cCtx, true, func(p *portal.Portal) error {
		id, err := p.AddCategorizedClimbToStage(cCtx.Int(stageFlag), cCtx.Float64("location"), category,
			cCtx.Float64("gradient"), cCtx.Float64("length"))
		if err != nil {
			return err
		}
		printIDs(cCtx, []int{id})
		return nil
	})
}

func formatClock(t time.Time) string {
	return strings.TrimSuffix(t.Format("15:04:05.000"), ".000")
}
