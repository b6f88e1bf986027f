// Command qtermsim simulates quantum circuits on dense statevectors, either
// interactively or from the command line.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Cobra has already printed the error.
	a := &app{}
	if err := a.execute(ctx, a.newRootCmd()); err != nil {
		stop()
		os.Exit(1)
	}
}
