// cmd/stageradar/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/law-makers/stageradar/internal/cli"
)

func main() {
	// cancel the running crawl on interrupt; it stops and exports what it has
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.Execute(ctx)
}
