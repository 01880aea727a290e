// Command etime converts between epoch timestamps and broken-down
// Gregorian time.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

const version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(os.Stdout, os.Stderr)
	if err := a.command().Run(ctx, os.Args); err != nil {
		fatal("%v", err)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "etime: "+format+"\n", args...)
	os.Exit(1)
}
