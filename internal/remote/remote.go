// Package remote fala com o banco relacional hospedado que espelha os registros locais.
package remote

import (
	"context"
	"encoding/json"
	"errors"
)

// Tabelas remotas, com colunas idênticas aos nomes JSON das entidades.
const (
	TableAppointments = "appointments"
	TableTickets      = "tickets"
)

var (
	ErrNotConfigured = errors.New("banco remoto não configurado")
	ErrUnknownTable  = errors.New("tabela remota desconhecida")
	ErrUnknownColumn = errors.New("coluna de ordenação desconhecida")
)

// Remote é o contrato mínimo exigido do banco remoto.
type Remote interface {
	// Select devolve um array JSON com todas as linhas, em ordem decrescente de order.
	Select(ctx context.Context, table, order string) (json.RawMessage, error)
	// Upsert grava um array JSON de linhas, substituindo pela chave primária.
	Upsert(ctx context.Context, table string, rows json.RawMessage) error
	Delete(ctx context.Context, table, id string) error
}

// Noop é usado quando nenhum DB_DSN foi informado.
type Noop struct{}

func (Noop) Select(context.Context, string, string) (json.RawMessage, error) {
	return nil, ErrNotConfigured
}

func (Noop) Upsert(context.Context, string, json.RawMessage) error {
	return ErrNotConfigured
}

func (Noop) Delete(context.Context, string, string) error {
	return ErrNotConfigured
}
