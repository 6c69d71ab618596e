package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cepip-app-go/internal/app"
	"cepip-app-go/pkg/logger"
)

const serviceName = "cepip-app"

func main() {
	log := logger.NewFromEnv(serviceName)
	os.Exit(run(log))
}

// run serves until a stop signal or a listener failure and returns the
// process exit code.
func run(log logger.Logger) int {
	log.Info("app: starting", "pid", os.Getpid())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(log)
	if err != nil {
		log.Critical("app: init failed", "err", err)
		return 1
	}

	srv := application.HTTPServer()
	serverErr := make(chan error, 1)
	go func() {
		log.Info("http: listening", "addr", srv.Addr)
		serverErr <- srv.ListenAndServe()
	}()

	code := 0
	select {
	case <-ctx.Done():
		log.Info("app: shutdown signal received")
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Critical("http: server failed", "addr", srv.Addr, "err", err)
			code = 1
		}
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), application.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http: graceful shutdown failed", "timeout", application.ShutdownTimeout().String(), "err", err)
		code = 1
	}
	if err := application.Close(); err != nil {
		log.Error("app: close failed", "err", err)
		code = 1
	}

	log.Info("app: stopped", "exit_code", code)
	return code
}
