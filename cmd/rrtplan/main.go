// Package main is the rrtplan command, which solves planning problems read from JSON files.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"go.viam.com/rrt/config"
	"go.viam.com/rrt/logging"
	"go.viam.com/rrt/motionplan"
	"go.viam.com/rrt/referenceframe"
)

const (
	// Flags.
	generalFlagDebug    = "debug"
	generalFlagLogLevel = "log-level"
	generalFlagLogFile  = "log-file"
	planFlagSeed        = "seed"
	planFlagSmooth      = "smooth"
	planFlagIterations  = "plan-iter"
	planFlagPlot        = "plot"
	planFlagOutput      = "output"
	planFlagFormat      = "format"
	planFlagTrace       = "trace"

	formatJSON  = "json"
	formatTable = "table"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	var logger logging.Logger
	var logFile *lumberjack.Logger

	planFlags := []cli.Flag{
		&cli.Int64Flag{
			Name:  planFlagSeed,
			Usage: "seed for all random sampling, overriding the problem file",
		},
		&cli.IntFlag{
			Name:  planFlagSmooth,
			Usage: "number of smoothing iterations, overriding the problem file; 0 disables smoothing",
		},
		&cli.IntFlag{
			Name:  planFlagIterations,
			Usage: "planner iteration budget, overriding the problem file",
		},
		&cli.StringFlag{
			Name:      planFlagPlot,
			Usage:     "write a PNG of the obstacles, search trees and path to `FILE`",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:      planFlagOutput,
			Aliases:   []string{"o"},
			Usage:     "write the result to `FILE` instead of stdout",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:  planFlagFormat,
			Value: formatJSON,
			Usage: "result format: json or table",
		},
		&cli.BoolFlag{
			Name:  planFlagTrace,
			Usage: "log planner progress for this run regardless of the log level",
		},
	}

	return &cli.App{
		Name:      "rrtplan",
		Usage:     "plan collision-free paths with RRT-Connect and RRT*",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  generalFlagLogLevel,
				Value: "info",
				Usage: "minimum level to log: debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:      generalFlagLogFile,
				Usage:     "also append logs to `FILE`, rotating it as it grows",
				TakesFile: true,
			},
		},
		Before: func(c *cli.Context) error {
			level, err := logging.LevelFromString(c.String(generalFlagLogLevel))
			if err != nil {
				return err
			}
			if c.Bool(generalFlagDebug) {
				level = logging.DEBUG
			}
			logger = logging.NewLogger("rrtplan", level, logging.NewWriterAppender(c.App.ErrWriter))
			if logPath := c.String(generalFlagLogFile); logPath != "" {
				logFile = &lumberjack.Logger{
					Filename:   logPath,
					MaxSize:    64,
					MaxBackups: 2,
				}
				logger.AddAppender(logging.NewWriterAppender(logFile))
			}
			return nil
		},
		After: func(c *cli.Context) error {
			if logger != nil {
				//nolint:errcheck
				logger.Sync()
			}
			if logFile != nil {
				return logFile.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "describe",
				Usage:     "validate a problem file and print it as a table",
				ArgsUsage: "<problem.json>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return errors.New("expected exactly one problem file argument")
					}
					problem, err := config.Read(c.Context, c.Args().First(), logger)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(c.App.Writer, problem.String())
					return err
				},
			},
			{
				Name:      "plan",
				Usage:     "solve a problem with the algorithm named in its planner options",
				ArgsUsage: "<problem.json>",
				Flags:     planFlags,
				Action: func(c *cli.Context) error {
					return planAction(c, "", logger)
				},
			},
			{
				Name:      "connect",
				Usage:     "solve a problem with bidirectional RRT-Connect",
				ArgsUsage: "<problem.json>",
				Flags:     planFlags,
				Action: func(c *cli.Context) error {
					return planAction(c, motionplan.RRTConnectAlgorithm, logger)
				},
			},
			{
				Name:      "star",
				Usage:     "solve a problem with RRT*",
				ArgsUsage: "<problem.json>",
				Flags:     planFlags,
				Action: func(c *cli.Context) error {
					return planAction(c, motionplan.RRTStarAlgorithm, logger)
				},
			},
		},
	}
}

// planOutput is the JSON written for a solved problem.
type planOutput struct {
	Name         string               `json:"name,omitempty"`
	Algorithm    motionplan.Algorithm `json:"algorithm"`
	Path         [][]float64          `json:"path"`
	Cost         float64              `json:"cost"`
	RawWaypoints int                  `json:"raw_waypoints"`
	RawLength    float64              `json:"raw_length"`
	TreeSizes    []int                `json:"tree_sizes"`
	Checks       int                  `json:"checks"`
	Failures     int                  `json:"failures"`
	Duration     string               `json:"duration"`
}

func planAction(c *cli.Context, algorithm motionplan.Algorithm, logger logging.Logger) error {
	if c.NArg() != 1 {
		return errors.New("expected exactly one problem file argument")
	}
	format := c.String(planFlagFormat)
	if format != formatJSON && format != formatTable {
		return errors.Errorf("unknown format %q", format)
	}
	ctx := c.Context
	if c.Bool(planFlagTrace) {
		ctx = logging.EnableDebugMode(ctx, "")
		key, _ := logging.DebugKey(ctx)
		logger.Infow("tracing plan", "debug_key", key)
	}

	problem, err := config.Read(ctx, c.Args().First(), logger)
	if err != nil {
		return err
	}
	applyOverrides(c, problem, algorithm)
	logger.CDebugf(ctx, "problem %s:\n%s", c.Args().First(), problem)

	req, err := problem.PlanRequest()
	if err != nil {
		return err
	}
	logger.Infof("planning %q with %s over %d dimensions", problem.Name, req.Options.Algorithm, len(req.Start))
	res, err := motionplan.Plan(ctx, req, logger.Sublogger("motionplan"))
	if err != nil {
		return errors.Wrapf(err, "failed to plan %q", c.Args().First())
	}
	logger.Infow("found path", "waypoints", len(res.Path), "cost", res.Cost, "duration", res.Meta.Duration.String())

	if plotPath := c.String(planFlagPlot); plotPath != "" {
		if err := savePlot(plotPath, problem.Name, req, res); err != nil {
			return err
		}
		logger.Debugf("wrote plot to %s", plotPath)
	}

	return writeOutput(c, format, newPlanOutput(problem, res))
}

// applyOverrides lets command line flags take precedence over the problem's planner options.
func applyOverrides(c *cli.Context, problem *config.Problem, algorithm motionplan.Algorithm) {
	if problem.Planner == nil {
		problem.Planner = map[string]interface{}{}
	}
	if algorithm != "" {
		problem.Planner["algorithm"] = string(algorithm)
	}
	if c.IsSet(planFlagSeed) {
		problem.Planner["rseed"] = c.Int64(planFlagSeed)
	}
	if c.IsSet(planFlagSmooth) {
		problem.Planner["smooth_iter"] = c.Int(planFlagSmooth)
	}
	if c.IsSet(planFlagIterations) {
		problem.Planner["plan_iter"] = c.Int(planFlagIterations)
	}
}

func newPlanOutput(problem *config.Problem, res *motionplan.PlanResult) planOutput {
	sizes := make([]int, 0, len(res.Trees))
	for _, tree := range res.Trees {
		sizes = append(sizes, tree.Len())
	}
	return planOutput{
		Name:         problem.Name,
		Algorithm:    res.Meta.Algorithm,
		Path:         res.Path.Floats(),
		Cost:         res.Cost,
		RawWaypoints: res.Meta.RawWaypoints,
		RawLength:    res.Meta.RawLength,
		TreeSizes:    sizes,
		Checks:       res.Meta.Checks,
		Failures:     res.Meta.Failures,
		Duration:     res.Meta.Duration.String(),
	}
}

// String prints out a table of the path's waypoints followed by the plan's statistics.
func (out planOutput) String() string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s %s", out.Name, out.Algorithm))
	t.AppendHeader(table.Row{"#", "Configuration", "Distance"})
	for i, q := range out.Path {
		dist := ""
		if i > 0 {
			dist = fmt.Sprintf("%.4f", referenceframe.Configuration(q).Distance(out.Path[i-1]))
		}
		t.AppendRow(table.Row{i, referenceframe.Configuration(q).String(), dist})
	}
	t.AppendFooter(table.Row{"", "cost", fmt.Sprintf("%.4f", out.Cost)})
	t.AppendFooter(table.Row{"", "raw length", fmt.Sprintf("%.4f", out.RawLength)})
	t.AppendFooter(table.Row{"", "tree nodes", fmt.Sprint(out.TreeSizes)})
	t.AppendFooter(table.Row{"", "duration", out.Duration})
	return t.Render()
}

func writeOutput(c *cli.Context, format string, out planOutput) (err error) {
	w := c.App.Writer
	if outPath := c.String(planFlagOutput); outPath != "" {
		//nolint:gosec
		f, createErr := os.Create(outPath)
		if createErr != nil {
			return errors.Wrap(createErr, "error creating output file")
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()
		w = f
	}
	if format == formatTable {
		_, err = fmt.Fprintln(w, out.String())
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
