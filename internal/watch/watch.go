// Package watch verifica periodicamente os agendamentos do dia ainda não confirmados.
package watch

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/detranagenda/painel/internal/agenda"
	"github.com/detranagenda/painel/internal/notify"
)

// Source é o que o watcher precisa do serviço de agenda.
type Source interface {
	WarnUnconfirmedToday() (notify.Notice, int)
	Today() string
}

// Watcher repete a checagem de pendências do dia em intervalo fixo.
type Watcher struct {
	source   Source
	notifier notify.Notifier
	interval time.Duration
	logger   zerolog.Logger

	mu       sync.Mutex
	lastSent string
	once     sync.Once
	cancel   context.CancelFunc
	done     chan struct{}
}

// New cria o watcher; notifier pode ser nil.
func New(source Source, notifier notify.Notifier, interval time.Duration, logger zerolog.Logger) *Watcher {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &Watcher{
		source:   source,
		notifier: notifier,
		interval: interval,
		logger:   logger.With().Str("component", "watch").Logger(),
	}
}

// Start inicia o loop em segundo plano. Chamadas repetidas não criam outro loop.
func (w *Watcher) Start(parent context.Context) {
	w.once.Do(func() {
		ctx, cancel := context.WithCancel(parent)
		w.cancel = cancel
		w.done = make(chan struct{})
		go w.run(ctx)
	})
}

// Stop encerra o loop e espera a última checagem terminar.
func (w *Watcher) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().Dur("interval", w.interval).Msg("watch: loop iniciado")
	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("watch: loop encerrado")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce publica o aviso do dia e alerta o canal externo uma vez por contagem nova.
func (w *Watcher) RunOnce(ctx context.Context) int {
	_, count := w.source.WarnUnconfirmedToday()
	if count == 0 || w.notifier == nil {
		return count
	}

	// evita repetir o mesmo alerta a cada volta do loop
	mark := w.source.Today() + "#" + strconv.Itoa(count)
	w.mu.Lock()
	if w.lastSent == mark {
		w.mu.Unlock()
		return count
	}
	w.lastSent = mark
	w.mu.Unlock()

	alert := notify.Alert{
		Title:    "Agendamentos sem confirmação",
		Text:     agenda.UnconfirmedTodayMessage(count),
		Severity: "warning",
	}
	if err := w.notifier.Notify(ctx, alert); err != nil {
		w.logger.Error().Err(err).Msg("watch: falha ao enviar alerta")
	}
	return count
}
