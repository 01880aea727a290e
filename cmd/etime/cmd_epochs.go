package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/daviddao/etime/pkg/etime"
	"github.com/daviddao/etime/pkg/model"
)

func (a *app) epochsCommand() *cli.Command {
	return &cli.Command{
		Name:  "epochs",
		Usage: "list the built-in epochs and their cycle constants",
		Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
			cals := etime.Profiles()
			if !isProfile(a.cal) {
				cals = append(cals, a.cal)
			}

			if a.jsonOut {
				type epochInfo struct {
					model.Epoch
					Constants etime.Constants `json:"constants"`
					Selected  bool            `json:"selected"`
				}
				out := make([]epochInfo, len(cals))
				for i, c := range cals {
					out[i] = epochInfo{Epoch: c.Epoch(), Constants: c.Constants(), Selected: c == a.cal}
				}
				a.printJSON(out)
				return nil
			}

			fmt.Fprintf(a.stdout, "%-10s %5s %4s %5s %13s %5s %7s %5s %7s\n",
				"NAME", "YEAR", "WDAY", "LEAP", "UNIX", "Y400", "D400", "Y100", "D100")
			for _, c := range cals {
				e, k := c.Epoch(), c.Constants()
				marker := ""
				if c == a.cal {
					marker = " <-- selected"
				}
				fmt.Fprintf(a.stdout, "%-10s %5d %4d %5d %13d %5d %7d %5d %7d%s\n",
					e.Name, e.Year, e.Weekday, e.LeapDelta, e.UnixOffset,
					k.YearsTo400, k.DaysTo400, k.YearsTo100, k.DaysTo100, marker)
			}
			return nil
		}),
	}
}

func isProfile(cal *etime.Calendar) bool {
	for _, c := range etime.Profiles() {
		if c == cal {
			return true
		}
	}
	return false
}
