package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/locvowork/employee_pairs/internal/bootstrap"
	"github.com/locvowork/employee_pairs/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		logger.ErrorLog(ctx, "Failed to initialize application", err)
		os.Exit(1)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Shutdown(shutdownCtx); err != nil {
			logger.ErrorLog(shutdownCtx, "Failed to shut down server", err)
		}
	}()

	if err := app.Run(); err != nil {
		logger.ErrorLog(ctx, "Server stopped", err)
		os.Exit(1)
	}
}
