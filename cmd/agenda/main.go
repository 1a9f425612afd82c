package main

import (
	"context"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/detranagenda/painel/internal/agenda"
	"github.com/detranagenda/painel/internal/bootstrap"
	"github.com/detranagenda/painel/internal/cli"
	"github.com/detranagenda/painel/internal/config"
)

func main() {
	// logs vão para stderr para não misturar com a saída JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(zerolog.WarnLevel)

	if err := cli.NewRootCommand(open).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func open(ctx context.Context) (*agenda.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	app, err := bootstrap.Open(ctx, cfg, log.Logger)
	if err != nil {
		return nil, nil, err
	}
	if _, err := app.Agenda.Load(ctx); err != nil {
		app.Close()
		return nil, nil, err
	}
	return app.Agenda, app.Close, nil
}
