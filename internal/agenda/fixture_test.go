package agenda

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/detranagenda/painel/internal/notify"
	"github.com/detranagenda/painel/internal/remote"
	"github.com/detranagenda/painel/internal/snapshot"
)

var baseTime = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

const today = "2026-10-15"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type stubRemote struct {
	mu        sync.Mutex
	rows      map[string]json.RawMessage
	selectErr map[string]error
	upsertErr error
	// tableErrs falha apenas as escritas na tabela indicada.
	tableErrs map[string]error
	deleteErr error
	upserts   map[string][]json.RawMessage
	deletes   []string
}

func newStubRemote() *stubRemote {
	return &stubRemote{
		rows:      map[string]json.RawMessage{},
		selectErr: map[string]error{},
		upserts:   map[string][]json.RawMessage{},
	}
}

func (r *stubRemote) Select(_ context.Context, table, _ string) (json.RawMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.selectErr[table]; err != nil {
		return nil, err
	}
	if rows, ok := r.rows[table]; ok {
		return rows, nil
	}
	return json.RawMessage("[]"), nil
}

func (r *stubRemote) Upsert(_ context.Context, table string, rows json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	if err := r.tableErrs[table]; err != nil {
		return err
	}
	r.upserts[table] = append(r.upserts[table], rows)
	return nil
}

func (r *stubRemote) Delete(_ context.Context, table, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deletes = append(r.deletes, table+"/"+id)
	return nil
}

type harness struct {
	svc   *Service
	clock *fakeClock
	snap  *snapshot.Memory
}

// newHarness monta o serviço com remoto opcional; r nil usa o remoto não configurado.
func newHarness(t *testing.T, r remote.Remote) *harness {
	t.Helper()
	clock := &fakeClock{now: baseTime}
	snap := snapshot.NewMemory()
	svc := NewService(Options{
		Snapshot:    snap,
		Gateway:     remote.NewGateway(r, zerolog.Nop()),
		Notices:     notify.NewCenter(time.Hour, zerolog.Nop(), notify.WithClock(clock.Now)),
		Now:         clock.Now,
		Location:    time.UTC,
		OfficeEmail: "agendamento.crt@detran.ba.gov.br",
		Logger:      zerolog.Nop(),
	})
	return &harness{svc: svc, clock: clock, snap: snap}
}

func (h *harness) notice(t *testing.T) notify.Notice {
	t.Helper()
	n, ok := h.svc.Notices().Current()
	if !ok {
		t.Fatalf("nenhum aviso corrente")
	}
	return n
}

func (h *harness) storedAppointments(t *testing.T) []Appointment {
	t.Helper()
	var list []Appointment
	if _, err := snapshot.LoadJSON(context.Background(), h.snap, snapshot.KeyAppointments, &list); err != nil {
		t.Fatalf("ler snapshot: %v", err)
	}
	return list
}

func sampleInput(name, cpf, renach string) AppointmentInput {
	contact := "71983149916"
	return AppointmentInput{
		FullName:        name,
		CPF:             cpf,
		Renach:          renach,
		AppointmentDate: "2026-10-20",
		AppointmentTime: "08:00",
		Location:        "CIRETRAN Nazaré",
		Contact:         &contact,
		ExamType:        ExamRoad,
	}
}

func strPtr(s string) *string { return &s }

func appointmentIDs(list []Appointment) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}
