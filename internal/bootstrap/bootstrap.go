// Package bootstrap monta as dependências compartilhadas pela API e pela CLI.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/detranagenda/painel/internal/agenda"
	"github.com/detranagenda/painel/internal/config"
	"github.com/detranagenda/painel/internal/db"
	"github.com/detranagenda/painel/internal/notify"
	"github.com/detranagenda/painel/internal/remote"
	"github.com/detranagenda/painel/internal/snapshot"
	"github.com/detranagenda/painel/internal/storage"
)

// App reúne o serviço de agenda e os recursos que precisam ser fechados ao final.
type App struct {
	Config   *config.Config
	Agenda   *agenda.Service
	Uploader storage.Uploader
	Notifier notify.Notifier
	Checks   map[string]func(context.Context) error

	closers []func()
}

// Open conecta redis, postgres e snapshot conforme a configuração.
// Banco remoto inacessível não impede a subida: o painel opera com a cópia local.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	app := &App{Config: cfg, Checks: map[string]func(context.Context) error{}}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis parse: %w", err)
		}
		redisClient = redis.NewClient(opts)
		app.closers = append(app.closers, func() { _ = redisClient.Close() })
		app.Checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	var rc snapshot.RedisClient
	if redisClient != nil {
		rc = redisClient
	}
	snap, err := snapshot.Open(cfg.Snapshot.Driver, cfg.Snapshot.Path, rc)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	app.closers = append(app.closers, func() { _ = snap.Close() })

	var rem remote.Remote = remote.Noop{}
	if cfg.DBDSN != "" {
		pool, err := db.Connect(ctx, cfg.DBDSN)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("db: %w", err)
		}
		app.closers = append(app.closers, pool.Close)

		pg := remote.NewPostgres(pool)
		rem = pg
		if err := db.Ping(ctx, pool); err != nil {
			logger.Warn().Err(err).Msg("banco remoto inacessível, usando cópia local")
		} else if cfg.DBAutoMigrate {
			if err := pg.EnsureSchema(ctx); err != nil {
				logger.Warn().Err(err).Msg("não foi possível aplicar o schema remoto")
			}
		}
	}

	uploader, err := storage.New(cfg.Backup)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Uploader = uploader

	// NewSlackNotifier devolve ponteiro nil sem webhook; a interface precisa ficar nil
	if slack := notify.NewSlackNotifier(cfg.Watch.SlackWebhookURL); slack != nil {
		app.Notifier = slack
	}

	app.Agenda = agenda.NewService(agenda.Options{
		Snapshot:    snap,
		Gateway:     remote.NewGateway(rem, logger),
		Notices:     notify.NewCenter(cfg.NotifyTTL, logger),
		Now:         time.Now,
		Location:    cfg.Location,
		OfficeEmail: cfg.OfficeEmail,
		Logger:      logger,
	})
	return app, nil
}

// Close libera conexões na ordem inversa da abertura.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
