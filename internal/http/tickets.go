package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/detranagenda/painel/internal/ticket"
)

// ListTickets lista os chamados na ordem de criação mais recente.
func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	list := h.agenda.ListTickets()
	if status := r.URL.Query().Get("status"); status != "" {
		want := ticket.NormalizeStatus(status)
		if !want.Valid() {
			WriteError(w, http.StatusBadRequest, "VALIDATION", "status inválido", nil)
			return
		}
		filtered := make([]ticket.Ticket, 0, len(list))
		for _, t := range list {
			if t.Status == want {
				filtered = append(filtered, t)
			}
		}
		list = filtered
	}
	WriteJSON(w, http.StatusOK, map[string]any{"tickets": list, "total": len(list)})
}

// TicketBoard devolve as três colunas do quadro com contadores.
func (h *Handler) TicketBoard(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"columns": h.agenda.Board()})
}

// CreateTicket abre um chamado, opcionalmente ligado a um agendamento.
func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	h.saveTicket(w, r, "")
}

// UpdateTicket edita um chamado existente.
func (h *Handler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	h.saveTicket(w, r, chi.URLParam(r, "id"))
}

func (h *Handler) saveTicket(w http.ResponseWriter, r *http.Request, editingID string) {
	var input ticket.Input
	if !decodeJSON(w, r, &input) {
		return
	}
	change, err := h.agenda.SaveTicket(r.Context(), editingID, input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	status := http.StatusOK
	if editingID == "" {
		status = http.StatusCreated
	}
	WriteJSON(w, status, changePayload("ticket", change.Item, change.Notice, change.Outcome.LocalOnly()))
}

// SetTicketStatus troca apenas o status.
func (h *Handler) SetTicketStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}
	change, err := h.agenda.SetTicketStatus(r.Context(), chi.URLParam(r, "id"), ticket.Status(payload.Status))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, changePayload("ticket", change.Item, change.Notice, change.Outcome.LocalOnly()))
}

// DeleteTicket exclui o chamado.
func (h *Handler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	change, err := h.agenda.DeleteTicket(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, changePayload("ticket", change.Item, change.Notice, change.Outcome.LocalOnly()))
}
