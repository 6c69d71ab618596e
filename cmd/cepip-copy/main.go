package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"cepip-app-go/internal/cli"
	"cepip-app-go/pkg/logger"
)

func main() {
	log := logger.NewFromEnv("cepip-copy")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, log); err != nil {
		if errors.Is(err, cli.ErrNotReconciled) {
			log.Warn("copy: finished with unreconciled tables")
		} else {
			log.Critical("copy: failed", "err", err)
		}
		stop()
		os.Exit(1)
	}
}
