package main

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"

	"github.com/daviddao/etime/pkg/clock"
)

func (a *app) nowCommand() *cli.Command {
	return &cli.Command{
		Name:      "now",
		Usage:     "print the current time in the selected epoch",
		UsageText: "etime now [--at <unix>] [--count N] [--interval D]",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "at",
				Usage: "pin the clock to this Unix time instead of reading the wall clock",
			},
			&cli.IntFlag{
				Name:  "count",
				Value: 1,
				Usage: "number of readings",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Value: time.Second,
				Usage: "time between readings",
			},
		},
		Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
			interval := cmd.Duration("interval")
			if interval < time.Second {
				return errors.Newf("interval %s is below the one-second resolution", interval)
			}

			// Pinned: a manual clock stepped by interval, no sleeping.
			if cmd.IsSet("at") {
				at := cmd.Int64("at")
				if at < a.cal.Epoch().UnixOffset {
					return errors.Newf("unix time %d is before the %s epoch", at, a.cal.Name())
				}
				var m clock.Manual
				m.Set(a.cal.FromUnix(at))
				for i := 0; i < cmd.Int("count"); i++ {
					if i > 0 {
						m.Advance(interval)
					}
					a.printTm(m.Now())
				}
				return nil
			}

			src := clock.NewMonotonic(clock.NewSystem(a.cal))
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for i := 0; i < cmd.Int("count"); i++ {
				if i > 0 {
					select {
					case <-ctx.Done():
						return nil
					case <-ticker.C:
					}
				}
				a.printTm(src.Now())
			}
			return nil
		}),
	}
}
