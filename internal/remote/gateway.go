package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Outcome é o resultado de uma escrita remota. O estado local é gravado em qualquer caso.
type Outcome struct {
	Synced bool
	Reason error
}

// LocalOnly indica que a alteração ficou apenas na cópia local.
func (o Outcome) LocalOnly() bool { return !o.Synced }

// Failed indica falha real do remoto; remoto não configurado não conta como falha.
func (o Outcome) Failed() bool {
	return !o.Synced && o.Reason != nil && !errors.Is(o.Reason, ErrNotConfigured)
}

// Gateway concentra as chamadas ao remoto e transforma erros em Outcome.
type Gateway struct {
	remote Remote
	log    zerolog.Logger
}

// NewGateway cria o gateway; remote nil equivale a Noop.
func NewGateway(r Remote, logger zerolog.Logger) *Gateway {
	if r == nil {
		r = Noop{}
	}
	return &Gateway{remote: r, log: logger.With().Str("component", "remote").Logger()}
}

// Write faz upsert de um registro ou de uma lista de registros.
func (g *Gateway) Write(ctx context.Context, table string, rows any) Outcome {
	payload, err := json.Marshal(rows)
	if err != nil {
		return Outcome{Reason: err}
	}
	if trimmed := bytes.TrimSpace(payload); len(trimmed) > 0 && trimmed[0] == '{' {
		payload = append(append([]byte{'['}, trimmed...), ']')
	}
	if err := g.remote.Upsert(ctx, table, payload); err != nil {
		g.logFailure(err, "upsert", table)
		return Outcome{Reason: err}
	}
	return Outcome{Synced: true}
}

// Remove exclui um registro pela chave.
func (g *Gateway) Remove(ctx context.Context, table, id string) Outcome {
	if err := g.remote.Delete(ctx, table, id); err != nil {
		g.logFailure(err, "delete", table)
		return Outcome{Reason: err}
	}
	return Outcome{Synced: true}
}

// Fetch lê a tabela inteira em dst. Erros são sempre *ReadError.
func (g *Gateway) Fetch(ctx context.Context, table, order string, dst any) error {
	payload, err := g.remote.Select(ctx, table, order)
	if err != nil {
		g.logFailure(err, "select", table)
		return &ReadError{Table: table, Kind: ClassifyRead(err), Err: err}
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		g.log.Warn().Err(err).Str("table", table).Msg("resposta remota inválida")
		return &ReadError{Table: table, Kind: ReadGeneric, Err: fmt.Errorf("decodificar %s: %w", table, err)}
	}
	return nil
}

func (g *Gateway) logFailure(err error, op, table string) {
	if errors.Is(err, ErrNotConfigured) {
		return
	}
	g.log.Warn().Err(err).Str("op", op).Str("table", table).Msg("falha no banco remoto")
}
