package http

import "net/http"

// Stats devolve os contadores do painel.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.agenda.Stats())
}

// Today devolve os agendamentos de hoje ainda não confirmados.
func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	pending := h.agenda.UnconfirmedToday()
	payload := map[string]any{
		"date":         h.agenda.Today(),
		"appointments": pending,
		"count":        len(pending),
	}
	WriteJSON(w, http.StatusOK, payload)
}

// Agenda devolve os agendamentos agrupados por data.
func (h *Handler) Agenda(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"days": h.agenda.Agenda()})
}
