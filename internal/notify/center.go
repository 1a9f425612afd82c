// Package notify guarda o aviso transitório exibido ao usuário após cada ação.
package notify

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Kind distingue avisos de sucesso e de erro.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notice é o aviso corrente. Um aviso novo substitui o anterior.
type Notice struct {
	Kind      Kind      `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Center mantém o último aviso até expirar o TTL.
type Center struct {
	mu      sync.Mutex
	current *Notice
	ttl     time.Duration
	now     func() time.Time
	logger  zerolog.Logger
}

// Option ajusta o Center na criação.
type Option func(*Center)

// WithClock substitui o relógio, usado nos testes.
func WithClock(now func() time.Time) Option {
	return func(c *Center) { c.now = now }
}

// NewCenter cria o centro de avisos; ttl <= 0 usa 4s.
func NewCenter(ttl time.Duration, logger zerolog.Logger, opts ...Option) *Center {
	if ttl <= 0 {
		ttl = 4 * time.Second
	}
	c := &Center{
		ttl:    ttl,
		now:    time.Now,
		logger: logger.With().Str("component", "notify").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Push registra um aviso e devolve a versão gravada.
func (c *Center) Push(kind Kind, message string) Notice {
	now := c.now()
	n := Notice{Kind: kind, Message: message, CreatedAt: now, ExpiresAt: now.Add(c.ttl)}

	c.mu.Lock()
	c.current = &n
	c.mu.Unlock()

	if kind == KindError {
		c.logger.Warn().Str("message", message).Msg("aviso de erro")
	} else {
		c.logger.Debug().Str("message", message).Msg("aviso")
	}
	return n
}

// Success é atalho para Push(KindSuccess, ...).
func (c *Center) Success(message string) Notice { return c.Push(KindSuccess, message) }

// Error é atalho para Push(KindError, ...).
func (c *Center) Error(message string) Notice { return c.Push(KindError, message) }

// Current devolve o aviso ainda válido, se houver.
func (c *Center) Current() (Notice, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Notice{}, false
	}
	if !c.now().Before(c.current.ExpiresAt) {
		c.current = nil
		return Notice{}, false
	}
	return *c.current, true
}
