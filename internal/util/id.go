package util

import "github.com/google/uuid"

// NewID gera o identificador opaco de um registro (UUID v4), criado no próprio painel.
func NewID() string {
	return uuid.NewString()
}
