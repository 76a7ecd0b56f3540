package main

import (
	"context"
	"fmt"

	artexgin "github.com/fwojciec/artex/gin"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	opts := []artexgin.Option{artexgin.WithRequestTimeout(c.Timeout)}
	if deps.Metrics != nil {
		opts = append(opts, artexgin.WithMetricsHandler(deps.Metrics.Handler()))
	}
	srv := artexgin.NewServer(fmt.Sprintf(":%d", c.Port), deps.Pipeline, deps.Logger, opts...)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-deps.Ctx.Done():
	}

	if err := srv.Shutdown(context.WithoutCancel(deps.Ctx)); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}
