// Package snapshot grava a cópia local dos registros, reescrita por inteiro a cada alteração.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Chaves fixas das coleções gravadas localmente.
const (
	KeyAppointments = "detran_appointments"
	KeyTickets      = "detran_tickets"
)

// ErrNotFound indica que ainda não existe cópia gravada para a chave.
var ErrNotFound = errors.New("snapshot não encontrado")

// Backend persiste documentos inteiros por chave.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
	Close() error
}

// LoadJSON lê e decodifica a cópia gravada. Ausência não é erro: dst fica intacto.
func LoadJSON(ctx context.Context, b Backend, key string, dst any) (bool, error) {
	payload, err := b.Load(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return false, fmt.Errorf("snapshot %s corrompido: %w", key, err)
	}
	return true, nil
}

// SaveJSON serializa v e reescreve a cópia inteira.
func SaveJSON(ctx context.Context, b Backend, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Save(ctx, key, payload)
}

// Open escolhe o backend conforme o driver configurado.
func Open(driver, path string, redisClient RedisClient) (Backend, error) {
	switch driver {
	case "", "file":
		return NewFile(path)
	case "sqlite":
		return OpenSQLite(path)
	case "redis":
		if redisClient == nil {
			return nil, errors.New("snapshot: cliente redis ausente")
		}
		return NewRedis(redisClient, ""), nil
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("snapshot: driver %s não suportado", driver)
	}
}
