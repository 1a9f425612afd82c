package http

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/detranagenda/painel/internal/storage"
)

// ExportBackup devolve o JSON de todos os agendamentos como anexo.
func (h *Handler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	name, data, err := h.agenda.Export()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ImportBackup substitui todos os agendamentos pelo conteúdo enviado.
// Aceita o JSON no corpo ou num campo "file" multipart.
func (h *Handler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	data, err := readUpload(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "arquivo inválido", nil)
		return
	}
	change, err := h.agenda.Import(r.Context(), data)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	payload := changePayload("appointments", change.Item, change.Notice, change.Outcome.LocalOnly())
	payload["total"] = len(change.Item)
	WriteJSON(w, http.StatusOK, payload)
}

// UploadBackup gera o backup e envia uma cópia ao bucket configurado.
func (h *Handler) UploadBackup(w http.ResponseWriter, r *http.Request) {
	name, data, err := h.agenda.Export()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	stored, err := h.uploader.Put(r.Context(), storage.Object{
		Key:         storage.BackupKey(name),
		Body:        data,
		ContentType: "application/json",
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			WriteError(w, http.StatusServiceUnavailable, "INTERNAL", "destino de backup não configurado", nil)
			return
		}
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"file": name, "stored": stored})
}

func readUpload(r *http.Request) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	}
	if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
		return nil, err
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(io.LimitReader(file, maxBodyBytes))
}
