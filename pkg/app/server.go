package app

// server.go bridges Application → internal/server. It owns the signal
// handling and the errgroup that ties the serve loop to process shutdown.

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/shashiranjanraj/basecamp/internal/server"
	"github.com/shashiranjanraj/basecamp/pkg/logger"
)

// Serve binds the configured address, then serves until ctx is cancelled.
// A bind failure is returned immediately.
func (a *Application) Serve(ctx context.Context, opts ...server.Option) error {
	srv := server.New(a.Handler(), opts...)
	if _, err := srv.Listen(a.addr); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "addr", srv.Addr().String())
		return nil
	})
	return g.Wait()
}

// ServeUntilSignal is Serve bound to SIGINT/SIGTERM.
func (a *Application) ServeUntilSignal(opts ...server.Option) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Serve(ctx, opts...)
}
