package http

import (
	"net/http"

	"github.com/detranagenda/painel/internal/mask"
)

// MaskCPF aplica a máscara de CPF ao valor digitado.
func (h *Handler) MaskCPF(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"value": mask.CPF(r.URL.Query().Get("value"))})
}

// MaskPhone aplica a máscara de telefone ao valor digitado.
func (h *Handler) MaskPhone(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"value": mask.Phone(r.URL.Query().Get("value"))})
}
