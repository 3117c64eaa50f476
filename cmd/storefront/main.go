package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/app"
)

const closeTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	cfg := config.Load()
	cfg.Print()

	application := app.New(ctx, cfg)
	application.Run(stop)

	<-ctx.Done()

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	application.Close(closeCtx)
}
