package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/detranagenda/painel/internal/agenda"
	"github.com/detranagenda/painel/internal/notify"
)

// ListAppointments lista agendamentos com busca (q), filtro e ordenação.
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter, ok := agenda.ParseFilter(query.Get("filter"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "filter inválido", nil)
		return
	}
	sort, ok := agenda.ParseSort(query.Get("sort"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "sort inválido", nil)
		return
	}

	list := h.agenda.ListAppointments(agenda.Query{Search: query.Get("q"), Filter: filter, Sort: sort})
	WriteJSON(w, http.StatusOK, map[string]any{"appointments": list, "total": len(list)})
}

// CreateAppointment cadastra um agendamento.
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	h.saveAppointment(w, r, "")
}

// UpdateAppointment edita um agendamento existente.
func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	h.saveAppointment(w, r, chi.URLParam(r, "id"))
}

func (h *Handler) saveAppointment(w http.ResponseWriter, r *http.Request, editingID string) {
	var input agenda.AppointmentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	change, err := h.agenda.SaveAppointment(r.Context(), editingID, input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	status := http.StatusOK
	if editingID == "" {
		status = http.StatusCreated
	}
	WriteJSON(w, status, changePayload("appointment", change.Item, change.Notice, change.Outcome.LocalOnly()))
}

// GetAppointment devolve um agendamento.
func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	app, err := h.agenda.GetAppointment(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"appointment": app})
}

// DeleteAppointment exclui um agendamento.
func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	change, err := h.agenda.DeleteAppointment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, changePayload("appointment", change.Item, change.Notice, change.Outcome.LocalOnly()))
}

// ToggleConfirmation inverte a confirmação.
func (h *Handler) ToggleConfirmation(w http.ResponseWriter, r *http.Request) {
	change, err := h.agenda.ToggleConfirmation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, changePayload("appointment", change.Item, change.Notice, change.Outcome.LocalOnly()))
}

// ToggleResult marca APTO/INAPTO; repetir o valor atual desmarca.
func (h *Handler) ToggleResult(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Result string `json:"result"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}
	result, err := agenda.ParseResult(payload.Result)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	change, err := h.agenda.ToggleResult(r.Context(), chi.URLParam(r, "id"), result)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, changePayload("appointment", change.Item, change.Notice, change.Outcome.LocalOnly()))
}

// AppointmentTemplates devolve assunto, corpo do e-mail e mensagem ao candidato.
func (h *Handler) AppointmentTemplates(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.agenda.Templates(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, tpl)
}

// EmailLink devolve o link de composição no Outlook web.
func (h *Handler) EmailLink(w http.ResponseWriter, r *http.Request) {
	link, err := h.agenda.EmailLink(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"url": link})
}

// WhatsAppLink devolve o link de conversa com o candidato.
func (h *Handler) WhatsAppLink(w http.ResponseWriter, r *http.Request) {
	link, err := h.agenda.WhatsAppLink(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"url": link})
}

// TicketDraft devolve o formulário de chamado pré-preenchido.
func (h *Handler) TicketDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.agenda.TicketDraftFor(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ticket": draft})
}

func changePayload(name string, item any, notice *notify.Notice, localOnly bool) map[string]any {
	payload := map[string]any{
		name:        item,
		"localOnly": localOnly,
	}
	if notice != nil {
		payload["notice"] = notice
	}
	return payload
}
