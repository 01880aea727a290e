package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"

	"github.com/daviddao/etime/pkg/etime"
	"github.com/daviddao/etime/pkg/model"
)

// app holds shared state for all CLI subcommands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	cal     *etime.Calendar // resolved from --epoch / ETIME_EPOCH
	jsonOut bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr}
}

// command builds the root command. Every subcommand shares the global flags.
func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:    "etime",
		Usage:   "convert between epoch timestamps and broken-down UTC time",
		Version: version,
		Description: `Timestamps are unsigned seconds counted from the selected epoch.
Built-in epochs: ` + strings.Join(profileNames(), ", ") + `.
A decimal year such as 1750 selects January 1 of that year.`,
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "epoch",
				Aliases: []string{"e"},
				Value:   "unix",
				Usage:   "epoch profile name or base year",
				Sources: cli.EnvVars("ETIME_EPOCH"),
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "JSON output",
			},
		},
		Commands: []*cli.Command{
			a.decomposeCommand(),
			a.composeCommand(),
			a.epochsCommand(),
			a.nowCommand(),
			a.checkCommand(),
		},
	}
}

// action resolves the global flags before running fn.
func (a *app) action(fn cli.ActionFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cal, err := etime.Lookup(cmd.String("epoch"))
		if err != nil {
			return err
		}
		a.cal = cal
		a.jsonOut = cmd.Bool("json")
		return fn(ctx, cmd)
	}
}

func profileNames() []string {
	var names []string
	for _, c := range etime.Profiles() {
		names = append(names, c.Name())
	}
	return names
}

// tmJSON is the machine-readable form of one decomposed timestamp.
type tmJSON struct {
	Epoch     string          `json:"epoch"`
	Timestamp model.Timestamp `json:"timestamp"`
	Unix      int64           `json:"unix"`
	Date      string          `json:"date"`
	Fields    model.Tm        `json:"fields"`
}

func (a *app) describe(ts model.Timestamp) tmJSON {
	tm := a.cal.Decompose(ts)
	return tmJSON{
		Epoch:     a.cal.Name(),
		Timestamp: ts,
		Unix:      a.cal.ToUnix(ts),
		Date:      formatTm(tm),
		Fields:    tm,
	}
}

// printTm writes one decomposed timestamp in the selected output format.
func (a *app) printTm(ts model.Timestamp) {
	d := a.describe(ts)
	if a.jsonOut {
		a.printJSON(d)
		return
	}
	fmt.Fprintf(a.stdout, "%s %s yday=%d\n", d.Date, d.Fields.Weekday().String()[:3], d.Fields.YDay)
}

// formatTm renders tm as YYYY-MM-DD hh:mm:ss.
func formatTm(tm model.Tm) string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		tm.FullYear(), tm.Mon+1, tm.MDay, tm.Hour, tm.Min, tm.Sec)
}

// printJSON writes v to stdout as indented JSON.
func (a *app) printJSON(v any) {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func intArgs(cmd *cli.Command, names ...string) ([]int, error) {
	out := make([]int, len(names))
	for i, name := range names {
		v, err := strconv.Atoi(cmd.Args().Get(i))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s %q", name, cmd.Args().Get(i))
		}
		out[i] = v
	}
	return out, nil
}
