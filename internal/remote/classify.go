package remote

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ReadKind classifica falhas de leitura para escolher a mensagem exibida.
type ReadKind int

const (
	ReadGeneric ReadKind = iota
	ReadNotConfigured
	ReadMissingTable
	ReadMissingColumn
)

func (k ReadKind) String() string {
	switch k {
	case ReadNotConfigured:
		return "not_configured"
	case ReadMissingTable:
		return "missing_table"
	case ReadMissingColumn:
		return "missing_column"
	default:
		return "generic"
	}
}

// ReadError descreve uma leitura remota que falhou.
type ReadError struct {
	Table string
	Kind  ReadKind
	Err   error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("leitura de %s (%s): %v", e.Table, e.Kind, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Message devolve o texto exibido ao usuário.
func (e *ReadError) Message() string {
	switch e.Kind {
	case ReadNotConfigured:
		return "Banco remoto não configurado. As alterações serão salvas apenas localmente."
	case ReadMissingTable:
		return fmt.Sprintf("Tabela %q não encontrada no banco remoto.", e.Table)
	case ReadMissingColumn:
		column := quotedName(e.Err)
		if column == "" {
			return fmt.Sprintf("Coluna faltando na tabela %q. Verifique o schema remoto.", e.Table)
		}
		return fmt.Sprintf("Coluna %q faltando na tabela %q. Verifique o schema remoto.", column, e.Table)
	default:
		return "Erro ao conectar com o banco remoto."
	}
}

// ClassifyRead usa o SQLSTATE do postgres para distinguir schema incompleto de falha de conexão.
func ClassifyRead(err error) ReadKind {
	if errors.Is(err, ErrNotConfigured) {
		return ReadNotConfigured
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01":
			return ReadMissingTable
		case "42703":
			return ReadMissingColumn
		}
	}
	return ReadGeneric
}

// quotedName extrai o primeiro identificador entre aspas da mensagem do postgres.
func quotedName(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ""
	}
	msg := pgErr.Message
	start := strings.IndexByte(msg, '"')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(msg[start+1:], '"')
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
