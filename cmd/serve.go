package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/nvalenti/fitweek/internal/server"
)

// Serve runs the HTTP API until the command context is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	app, err := r.connect(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	api := server.NewAPI(server.APIOpts{
		Auth:     app.auth,
		Sessions: app.sessions,
		Friends:  app.friends,
		Posts:    app.posts,
		Points:   app.points,
		Tracking: app.tracking,
		Logger:   r.logger,
	})

	router := server.NewBasicRouter()
	router.Use(
		server.WithLogging(r.logger),
		server.WithRateLimit(r.config.Server.RateLimit, r.config.Server.RateLimitBurst),
		server.WithSession(app.sessions),
	)
	api.Register(router)

	srv := &http.Server{
		Addr:    r.config.Server.Addr(),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("starting server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		r.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}
