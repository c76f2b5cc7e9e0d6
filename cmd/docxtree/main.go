// Command docxtree converts Word documents into JSON content trees.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tsawler/docxtree/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
