package util

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// DateLayout é o formato de data de calendário usado em todos os registros.
const DateLayout = "2006-01-02"

// ValidationError aponta o campo do formulário rejeitado.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ValidateEmail retorna erro para e-mails inválidos.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email obrigatório")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("email inválido")
	}
	return nil
}

// RequireString garante string não vazia.
func RequireString(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: field + " obrigatório"}
	}
	return nil
}

// ValidateDate exige data no formato AAAA-MM-DD.
func ValidateDate(value, field string) error {
	if err := RequireString(value, field); err != nil {
		return err
	}
	if _, err := time.Parse(DateLayout, strings.TrimSpace(value)); err != nil {
		return &ValidationError{Field: field, Message: field + " inválida"}
	}
	return nil
}
