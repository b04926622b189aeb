package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	_ "time/tzdata"

	"github.com/michaelrosejr/pytellum/internal/cmd"
	"github.com/michaelrosejr/pytellum/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cmd.Run(ctx, os.Args[1:]...)
	stop()
	logging.Sync()

	if err != nil {
		var userErr cmd.Error
		switch {
		case errors.Is(err, context.Canceled):
			logging.Debugf("user interrupted the process")
		case errors.As(err, &userErr):
			fmt.Fprintln(os.Stderr, userErr.Error())
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		os.Exit(1)
	}
}
