package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"

	"github.com/daviddao/etime/pkg/etime"
	"github.com/daviddao/etime/pkg/refcal"
	"github.com/daviddao/etime/pkg/verify"
)

func (a *app) checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "cross-check the selected epoch against a reference calendar",
		UsageText: "etime check [--ref NAME] [-n N] [--workers N] [--seed N] [--all]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "ref",
				Value: "stdlib",
				Usage: "reference calendar: " + strings.Join(refcal.Names(), ", "),
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "SQLite database path for --ref sqlite (default in-memory)",
			},
			&cli.IntFlag{
				Name:    "iterations",
				Aliases: []string{"n"},
				Value:   1_000_000,
				Usage:   "timestamps per sampling method",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "parallel workers (default GOMAXPROCS)",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Value: 1,
				Usage: "random sampling seed",
			},
			&cli.Int64Flag{
				Name:  "step",
				Value: verify.DefaultStep,
				Usage: "sweep increment in seconds",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "check every built-in epoch",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "report progress on stderr",
			},
		},
		Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
			ref, err := refcal.Open(cmd.String("ref"), cmd.String("db"))
			if err != nil {
				return err
			}
			defer ref.Close()

			cals := []*etime.Calendar{a.cal}
			if cmd.Bool("all") {
				cals = etime.Profiles()
			}
			opts := verify.Options{
				Iterations: cmd.Int("iterations"),
				Workers:    cmd.Int("workers"),
				Seed:       cmd.Uint64("seed"),
				Step:       cmd.Int64("step"),
			}

			var reports []verify.Report
			var failed error
			for _, cal := range cals {
				if cmd.Bool("verbose") {
					fmt.Fprintf(a.stderr, "etime: checking %s against %s\n", cal.Name(), ref.Name())
				}
				rep, err := verify.Run(ctx, cal, ref, opts)
				if err != nil && !errors.Is(err, verify.ErrMismatch) {
					return err
				}
				if err != nil {
					failed = errors.CombineErrors(failed, errors.Wrapf(err, "%s", cal.Name()))
				}
				reports = append(reports, rep)
				if !a.jsonOut {
					fmt.Fprintln(a.stdout, rep.String())
				}
			}

			if a.jsonOut {
				a.printJSON(checkResults(reports))
			}
			return failed
		}),
	}
}

type checkResult struct {
	Epoch     string  `json:"epoch"`
	Reference string  `json:"reference"`
	Checked   int64   `json:"checked"`
	Seconds   float64 `json:"seconds"`
	OK        bool    `json:"ok"`
	Mismatch  string  `json:"mismatch,omitempty"`
}

func checkResults(reports []verify.Report) []checkResult {
	out := make([]checkResult, len(reports))
	for i, r := range reports {
		out[i] = checkResult{
			Epoch:     r.Calendar,
			Reference: r.Reference,
			Checked:   r.Checked,
			Seconds:   r.Elapsed.Seconds(),
			OK:        r.Mismatch == nil,
		}
		if r.Mismatch != nil {
			out[i].Mismatch = r.Mismatch.Error()
		}
	}
	return out
}
