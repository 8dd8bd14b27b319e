package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/vitalvas/sena/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)

	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
