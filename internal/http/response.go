package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/detranagenda/painel/internal/agenda"
	"github.com/detranagenda/painel/internal/ticket"
	"github.com/detranagenda/painel/internal/util"
)

// SuccessEnvelope padroniza respostas com dados.
type SuccessEnvelope struct {
	Data  any `json:"data"`
	Error any `json:"error"`
}

// ErrorEnvelope padroniza respostas de erro.
type ErrorEnvelope struct {
	Data  any        `json:"data"`
	Error *ErrorBody `json:"error"`
}

// ErrorBody descreve falhas normalizadas.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// WriteJSON escreve envelope de sucesso.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(SuccessEnvelope{Data: data, Error: nil})
}

// WriteError escreve envelope de erro e mantém formato consistente.
func WriteError(w http.ResponseWriter, status int, code, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorEnvelope{
		Data:  nil,
		Error: &ErrorBody{Code: code, Message: message, Details: details},
	})
}

const maxBodyBytes = 10 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return false
	}
	return true
}

// writeDomainError traduz erros do domínio para o envelope HTTP.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		dup       *agenda.DuplicateFieldError
		importErr *agenda.ImportError
		invalid   *util.ValidationError
	)
	switch {
	case errors.As(err, &dup):
		WriteError(w, http.StatusConflict, "CONFLICT", dup.Error(), map[string]string{
			"field":      dup.Field,
			"conflictId": dup.ConflictID,
		})
	case errors.As(err, &importErr):
		details := map[string]any{"reason": importErr.Reason}
		if importErr.Index >= 0 {
			details["index"] = importErr.Index
		}
		WriteError(w, http.StatusBadRequest, "VALIDATION", "Erro ao importar arquivo.", details)
	case errors.As(err, &invalid):
		WriteError(w, http.StatusBadRequest, "VALIDATION", invalid.Message, map[string]string{"field": invalid.Field})
	case errors.Is(err, agenda.ErrNotFound), errors.Is(err, ticket.ErrNotFound):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, agenda.ErrInvalidPhone):
		WriteError(w, http.StatusUnprocessableEntity, "VALIDATION", "Número de telefone inválido ou incompleto.", nil)
	case errors.Is(err, agenda.ErrInvalidExamType),
		errors.Is(err, agenda.ErrInvalidResult),
		errors.Is(err, ticket.ErrInvalidStatus),
		errors.Is(err, ticket.ErrInvalidType):
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("erro inesperado")
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "erro interno", nil)
	}
}
