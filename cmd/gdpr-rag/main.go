// Command gdpr-rag answers questions about GDPR Articles 1-21.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/gdpr-rag/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Provider API keys may come from a .env file in the working directory.
	_ = godotenv.Load()

	cli.SetVersion(version)
	cli.SetBootstrap(wire)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cli.Execute(ctx)
	cancel()
	if err != nil {
		os.Exit(1)
	}
}
