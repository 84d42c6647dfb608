package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/darianmavgo/awload/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.NewCreateDBCommand().ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
