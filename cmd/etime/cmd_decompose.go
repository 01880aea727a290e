package main

import (
	"context"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"

	"github.com/daviddao/etime/pkg/model"
)

func (a *app) decomposeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decompose",
		Aliases:   []string{"gm"},
		Usage:     "print the calendar fields of a timestamp",
		UsageText: "etime decompose [--unix] <timestamp>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "unix",
				Usage: "arguments are Unix seconds instead of epoch seconds",
			},
		},
		Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return errors.New("usage: " + cmd.UsageText)
			}
			for _, arg := range cmd.Args().Slice() {
				ts, err := a.parseTimestamp(arg, cmd.Bool("unix"))
				if err != nil {
					return err
				}
				a.printTm(ts)
			}
			return nil
		}),
	}
}

func (a *app) parseTimestamp(arg string, unix bool) (model.Timestamp, error) {
	if unix {
		sec, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid unix time %q", arg)
		}
		if sec < a.cal.Epoch().UnixOffset {
			return 0, errors.Newf("unix time %d is before the %s epoch", sec, a.cal.Name())
		}
		return a.cal.FromUnix(sec), nil
	}
	ts, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid timestamp %q", arg)
	}
	return model.Timestamp(ts), nil
}
