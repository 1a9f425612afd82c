package agenda

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ImportError descreve por que um arquivo de backup foi rejeitado por inteiro.
type ImportError struct {
	Index  int
	Reason string
}

func (e *ImportError) Error() string {
	if e.Index < 0 {
		return e.Reason
	}
	return fmt.Sprintf("item %d: %s", e.Index, e.Reason)
}

// BackupFileName nomeia o arquivo exportado com a data corrente.
func BackupFileName(now time.Time) string {
	return "backup_detran_" + now.UTC().Format("2006-01-02") + ".json"
}

// EncodeBackup serializa a coleção inteira com indentação de dois espaços.
func EncodeBackup(list []Appointment) ([]byte, error) {
	if list == nil {
		list = []Appointment{}
	}
	return json.MarshalIndent(list, "", "  ")
}

// importRecord lê as datas de auditoria como texto para aceitar ausência ou vazio.
type importRecord struct {
	Appointment
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// DecodeBackup valida um backup e preenche datas de auditoria ausentes com now.
// Qualquer item inválido rejeita o arquivo todo.
func DecodeBackup(data []byte, now time.Time) ([]Appointment, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &ImportError{Index: -1, Reason: "o arquivo deve conter uma lista de agendamentos"}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &ImportError{Index: -1, Reason: "formato de arquivo inválido"}
	}

	out := make([]Appointment, 0, len(raw))
	for i, item := range raw {
		var rec importRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, &ImportError{Index: i, Reason: "formato de arquivo inválido"}
		}
		app := rec.Appointment
		if strings.TrimSpace(app.ID) == "" || strings.TrimSpace(app.FullName) == "" || strings.TrimSpace(app.CPF) == "" {
			return nil, &ImportError{Index: i, Reason: "id, fullName e cpf são obrigatórios"}
		}

		app.CreatedAt = parseAudit(rec.CreatedAt, now)
		app.UpdatedAt = parseAudit(rec.UpdatedAt, now)
		out = append(out, app)
	}
	return out, nil
}

// auditLayouts são os formatos aceitos em createdAt/updatedAt, do mais ao menos preciso.
var auditLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseAudit nunca rejeita o registro: valor ausente ou ilegível vira now.
// Horários sem fuso são lidos como UTC; só a data vira meia-noite.
func parseAudit(value string, now time.Time) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return now
	}
	for _, layout := range auditLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return now
}
