package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"worklog/internal/cli"
	"worklog/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(config.NewLoader(), cli.NewAppFromConfig)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(root.ExitCode(err))
	}
}
