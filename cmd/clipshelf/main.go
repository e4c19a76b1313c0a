package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"clipshelf/internal/cli"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A durable store that cannot be opened halts the process.
	if err := cli.Execute(ctx, version); err != nil {
		stop()
		log.SetFlags(0)
		log.SetOutput(os.Stderr)
		log.Fatalf("clipshelf: %v", err)
	}
}
