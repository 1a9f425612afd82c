package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewFixture() []Appointment {
	at := func(h int) time.Time { return baseTime.Add(time.Duration(h) * time.Hour) }
	return []Appointment{
		{ID: "1", FullName: "Álvaro Lima", CPF: "111.111.111-11", Renach: "BA100", AppointmentDate: "2026-10-14", UpdatedAt: at(1)},
		{ID: "2", FullName: "bruna costa", CPF: "222.222.222-22", Renach: "BA200", AppointmentDate: "2026-10-14", IsConfirmed: true, UpdatedAt: at(3)},
		{ID: "3", FullName: "Carlos Dias", CPF: "333.333.333-33", Renach: "ba300", AppointmentDate: today, HasSgaCrtCall: true, UpdatedAt: at(2)},
		{ID: "4", FullName: "Amanda Reis", CPF: "444.444.444-44", Renach: "BA400", AppointmentDate: "2026-10-20", IsConfirmed: true, UpdatedAt: at(0)},
	}
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(viewFixture(), today)
	assert.Equal(t, Stats{Total: 4, Confirmed: 2, Expired: 1, SgaCrt: 1}, stats)
	assert.Equal(t, Stats{}, ComputeStats(nil, today))
}

func TestUnconfirmedToday(t *testing.T) {
	got := UnconfirmedToday(viewFixture(), today)
	assert.Equal(t, []string{"3"}, appointmentIDs(got))
	assert.NotNil(t, UnconfirmedToday(nil, today))
}

func TestGroupByDate(t *testing.T) {
	groups := GroupByDate(viewFixture())
	require.Len(t, groups, 3)
	assert.Equal(t, []DateGroup{
		{Date: "2026-10-20", Count: 1, Confirmed: 1},
		{Date: today, Count: 1},
		{Date: "2026-10-14", Count: 2, Confirmed: 1},
	}, groups)

	total := 0
	for _, g := range groups {
		total += g.Count
	}
	assert.Equal(t, 4, total)
}

func TestFilterAppointments(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{name: "recentes primeiro", q: Query{}, want: []string{"2", "3", "1", "4"}},
		{name: "alfabética com acento", q: Query{Sort: SortAlphabetical}, want: []string{"Álvaro", "Amanda", "bruna", "Carlos"}},
		{name: "confirmados", q: Query{Filter: FilterConfirmed}, want: []string{"2", "4"}},
		{name: "vencidos", q: Query{Filter: FilterExpired}, want: []string{"1"}},
		{name: "sga/crt", q: Query{Filter: FilterSgaCrt}, want: []string{"3"}},
		{name: "busca por nome sem caixa", q: Query{Search: "BRUNA"}, want: []string{"2"}},
		{name: "busca por cpf", q: Query{Search: "333.333"}, want: []string{"3"}},
		{name: "busca por renach sem caixa", q: Query{Search: "BA3"}, want: []string{"3"}},
		{name: "busca e filtro", q: Query{Search: "a", Filter: FilterConfirmed, Sort: SortAlphabetical}, want: []string{"Amanda", "bruna"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAppointments(viewFixture(), tt.q, today)
			if tt.q.Sort == SortAlphabetical {
				names := make([]string, 0, len(got))
				for _, a := range got {
					names = append(names, firstName(a.FullName))
				}
				assert.Equal(t, tt.want, names)
				return
			}
			assert.Equal(t, tt.want, appointmentIDs(got))
		})
	}
}

func TestExpiredFilterAcrossDays(t *testing.T) {
	tests := []struct {
		name  string
		today string
		want  []string
	}{
		{name: "antes de todas as datas", today: "2026-10-01", want: []string{}},
		{name: "no primeiro dia", today: "2026-10-14", want: []string{}},
		{name: "entre datas", today: "2026-10-15", want: []string{"1"}},
		{name: "depois de hoje", today: "2026-10-16", want: []string{"3", "1"}},
		{name: "depois de todas as datas", today: "2026-12-01", want: []string{"3", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := viewFixture()
			got := FilterAppointments(list, Query{Filter: FilterExpired}, tt.today)
			assert.Equal(t, tt.want, appointmentIDs(got))

			returned := map[string]bool{}
			for _, a := range got {
				returned[a.ID] = true
				assert.True(t, a.AppointmentDate < tt.today && !a.IsConfirmed, "item %s não está vencido", a.ID)
			}
			for _, a := range list {
				if a.AppointmentDate < tt.today && !a.IsConfirmed {
					assert.True(t, returned[a.ID], "item vencido %s ficou de fora", a.ID)
				}
			}
			assert.Equal(t, len(got), ComputeStats(list, tt.today).Expired)
		})
	}
}

func firstName(full string) string {
	for i, r := range full {
		if r == ' ' {
			return full[:i]
		}
	}
	return full
}

func TestParseQuery(t *testing.T) {
	f, ok := ParseFilter("")
	assert.True(t, ok)
	assert.Equal(t, FilterAll, f)

	f, ok = ParseFilter(" SGA_CRT ")
	assert.True(t, ok)
	assert.Equal(t, FilterSgaCrt, f)

	_, ok = ParseFilter("pendentes")
	assert.False(t, ok)

	s, ok := ParseSort("")
	assert.True(t, ok)
	assert.Equal(t, SortRecent, s)

	_, ok = ParseSort("zigzag")
	assert.False(t, ok)
}
