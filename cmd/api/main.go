package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/detranagenda/painel/internal/bootstrap"
	"github.com/detranagenda/painel/internal/config"
	internalhttp "github.com/detranagenda/painel/internal/http"
	"github.com/detranagenda/painel/internal/watch"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("api encerrada com erro")
	}
}

func run() error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Open(ctx, cfg, log.Logger)
	if err != nil {
		return err
	}
	defer app.Close()

	if _, err := app.Agenda.Load(ctx); err != nil {
		return fmt.Errorf("carga inicial: %w", err)
	}

	if cfg.Watch.Enabled {
		watcher := watch.New(app.Agenda, app.Notifier, cfg.Watch.Interval, log.Logger)
		watcher.Start(ctx)
		defer watcher.Stop()
	}

	handler := internalhttp.NewRouter(internalhttp.Deps{
		Agenda:       app.Agenda,
		Uploader:     app.Uploader,
		Checks:       app.Checks,
		AllowOrigins: cfg.AllowOrigins,
		RateLimit:    cfg.RateLimitPublic,
		Logger:       log.Logger,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("API ouvindo em :%d", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("encerrando...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
