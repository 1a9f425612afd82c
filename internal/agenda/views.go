package agenda

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter seleciona a categoria exibida na listagem.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterConfirmed Filter = "confirmed"
	FilterExpired   Filter = "expired"
	FilterSgaCrt    Filter = "sga_crt"
)

// SortOrder define a ordenação da listagem.
type SortOrder string

const (
	SortRecent       SortOrder = "recent"
	SortAlphabetical SortOrder = "alphabetical"
)

// Query reúne busca, filtro e ordenação da listagem.
type Query struct {
	Search string    `json:"search"`
	Filter Filter    `json:"filter"`
	Sort   SortOrder `json:"sort"`
}

// Stats são os contadores do painel.
type Stats struct {
	Total     int `json:"total"`
	Confirmed int `json:"confirmed"`
	Expired   int `json:"expired"`
	SgaCrt    int `json:"sgaCrt"`
}

// DateGroup resume os agendamentos de um dia.
type DateGroup struct {
	Date      string `json:"date"`
	Count     int    `json:"count"`
	Confirmed int    `json:"confirmed"`
}

// ParseFilter aceita vazio como "all".
func ParseFilter(value string) (Filter, bool) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(value))); f {
	case "":
		return FilterAll, true
	case FilterAll, FilterConfirmed, FilterExpired, FilterSgaCrt:
		return f, true
	default:
		return "", false
	}
}

// ParseSort aceita vazio como "recent".
func ParseSort(value string) (SortOrder, bool) {
	switch s := SortOrder(strings.ToLower(strings.TrimSpace(value))); s {
	case "":
		return SortRecent, true
	case SortRecent, SortAlphabetical:
		return s, true
	default:
		return "", false
	}
}

// IsExpired indica agendamento com data passada e não confirmado.
func (a Appointment) IsExpired(today string) bool {
	return a.AppointmentDate < today && !a.IsConfirmed
}

// ComputeStats calcula os contadores do painel para o dia informado (AAAA-MM-DD).
func ComputeStats(list []Appointment, today string) Stats {
	stats := Stats{Total: len(list)}
	for _, app := range list {
		if app.IsConfirmed {
			stats.Confirmed++
		}
		if app.IsExpired(today) {
			stats.Expired++
		}
		if app.HasSgaCrtCall {
			stats.SgaCrt++
		}
	}
	return stats
}

// UnconfirmedToday lista os agendamentos de hoje ainda sem confirmação.
func UnconfirmedToday(list []Appointment, today string) []Appointment {
	out := make([]Appointment, 0)
	for _, app := range list {
		if app.AppointmentDate == today && !app.IsConfirmed {
			out = append(out, app)
		}
	}
	return out
}

// GroupByDate agrupa por data, da mais recente para a mais antiga.
func GroupByDate(list []Appointment) []DateGroup {
	index := make(map[string]int)
	groups := make([]DateGroup, 0)
	for _, app := range list {
		i, ok := index[app.AppointmentDate]
		if !ok {
			i = len(groups)
			index[app.AppointmentDate] = i
			groups = append(groups, DateGroup{Date: app.AppointmentDate})
		}
		groups[i].Count++
		if app.IsConfirmed {
			groups[i].Confirmed++
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Date > groups[j].Date
	})
	return groups
}

// FilterAppointments aplica busca textual, filtro de categoria e ordenação.
func FilterAppointments(list []Appointment, q Query, today string) []Appointment {
	term := strings.ToLower(q.Search)
	out := make([]Appointment, 0, len(list))
	for _, app := range list {
		if !matchesSearch(app, q.Search, term) {
			continue
		}
		if !matchesFilter(app, q.Filter, today) {
			continue
		}
		out = append(out, app)
	}

	if q.Sort == SortAlphabetical {
		col := collate.New(language.BrazilianPortuguese)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].FullName, out[j].FullName) < 0
		})
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

func matchesSearch(app Appointment, raw, lower string) bool {
	if raw == "" {
		return true
	}
	return strings.Contains(strings.ToLower(app.FullName), lower) ||
		strings.Contains(app.CPF, raw) ||
		strings.Contains(strings.ToLower(app.Renach), lower)
}

func matchesFilter(app Appointment, f Filter, today string) bool {
	switch f {
	case FilterConfirmed:
		return app.IsConfirmed
	case FilterExpired:
		return app.IsExpired(today)
	case FilterSgaCrt:
		return app.HasSgaCrtCall
	default:
		return true
	}
}
