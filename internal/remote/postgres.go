package remote

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/detranagenda/painel/internal/db"
)

//go:embed schema.sql
var schemaSQL string

// columns lista as colunas aceitas por tabela; a primeira é sempre a chave.
var columns = map[string][]string{
	TableAppointments: {
		"id", "fullName", "cpf", "renach", "appointmentDate", "appointmentTime", "location",
		"contact", "serviceType", "category", "examType", "isFitVision", "isFitPsychologist",
		"isFitH572C", "isFitCP02A", "isFitLegislation", "hasSgaCrtCall", "isConfirmed",
		"result", "observations", "createdAt", "updatedAt",
	},
	TableTickets: {
		"id", "appointmentId", "studentName", "studentCpf", "type", "status",
		"description", "observations", "createdAt", "updatedAt",
	},
}

// Postgres implementa Remote sobre um pool pgx.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres cria o remoto a partir de um pool já conectado.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema cria as tabelas remotas caso ainda não existam.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	return db.WithTx(ctx, p.pool, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, schemaSQL); err != nil {
			return fmt.Errorf("aplicar schema remoto: %w", err)
		}
		return nil
	})
}

func (p *Postgres) Select(ctx context.Context, table, order string) (json.RawMessage, error) {
	cols, err := tableColumns(table)
	if err != nil {
		return nil, err
	}
	if !contains(cols, order) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, order)
	}

	query := fmt.Sprintf(`SELECT COALESCE(json_agg(t ORDER BY t.%s DESC), '[]'::json) FROM %s t`,
		quote(order), table)

	var payload []byte
	if err := p.pool.QueryRow(ctx, query).Scan(&payload); err != nil {
		return nil, err
	}
	return json.RawMessage(payload), nil
}

func (p *Postgres) Upsert(ctx context.Context, table string, rows json.RawMessage) error {
	cols, err := tableColumns(table)
	if err != nil {
		return err
	}

	quoted := make([]string, len(cols))
	updates := make([]string, 0, len(cols)-1)
	for i, col := range cols {
		quoted[i] = quote(col)
		if i > 0 {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", quoted[i], quoted[i]))
		}
	}
	list := strings.Join(quoted, ", ")

	query := fmt.Sprintf(`
        INSERT INTO %s (%s)
        SELECT %s FROM json_populate_recordset(NULL::%s, $1::json)
        ON CONFLICT ("id") DO UPDATE SET %s`,
		table, list, list, table, strings.Join(updates, ", "))

	_, err = p.pool.Exec(ctx, query, string(rows))
	return err
}

func (p *Postgres) Delete(ctx context.Context, table, id string) error {
	if _, err := tableColumns(table); err != nil {
		return err
	}
	_, err := p.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE "id" = $1`, table), id)
	return err
}

func tableColumns(table string) ([]string, error) {
	cols, ok := columns[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	return cols, nil
}

func quote(col string) string {
	return `"` + col + `"`
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
