package main

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

func (a *app) composeCommand() *cli.Command {
	return &cli.Command{
		Name:      "compose",
		Aliases:   []string{"mk"},
		Usage:     "print the timestamp of a calendar date",
		UsageText: "etime compose <year> <month> <day> [hour min sec]",
		Description: `Month is 1-12 and year is the full year. Fields outside their usual
range carry into the next larger field, so month 13 is January of the next year.`,
		Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
			names := []string{"year", "month", "day", "hour", "minute", "second"}
			switch cmd.Args().Len() {
			case 3:
				names = names[:3]
			case 6:
			default:
				return errors.New("usage: " + cmd.UsageText)
			}
			v, err := intArgs(cmd, names...)
			if err != nil {
				return err
			}
			v = append(v, 0, 0, 0)

			ts := a.cal.Compose(int64(v[0])-1900, v[1]-1, v[2], v[3], v[4], v[5])
			if a.jsonOut {
				a.printJSON(a.describe(ts))
				return nil
			}
			fmt.Fprintf(a.stdout, "%d\tunix=%d\n", ts, a.cal.ToUnix(ts))
			return nil
		}),
	}
}
