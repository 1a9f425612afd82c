package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/detranagenda/painel/internal/agenda"
	"github.com/detranagenda/painel/internal/config"
	httpmiddleware "github.com/detranagenda/painel/internal/http/middleware"
	"github.com/detranagenda/painel/internal/storage"
)

// Check verifica uma dependência externa para o /ready.
type Check = func(ctx context.Context) error

// Deps reúne o que o roteador precisa para montar os handlers.
type Deps struct {
	Agenda       *agenda.Service
	Uploader     storage.Uploader
	Checks       map[string]Check
	AllowOrigins []string
	RateLimit    config.RateLimitConfig
	Logger       zerolog.Logger
}

// Handler agrupa os handlers do painel.
type Handler struct {
	agenda   *agenda.Service
	uploader storage.Uploader
	checks   map[string]Check
}

// NewRouter devolve roteador configurado.
func NewRouter(deps Deps) http.Handler {
	uploader := deps.Uploader
	if uploader == nil {
		uploader = storage.Noop{}
	}
	h := &Handler{agenda: deps.Agenda, uploader: uploader, checks: deps.Checks}

	rps, burst := deps.RateLimit.RequestsPerSecond, deps.RateLimit.Burst
	if rps <= 0 {
		rps, burst = 10, 20
	}
	limiter := httpmiddleware.NewRateLimiter(rps, burst)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging(deps.Logger))
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(deps.AllowOrigins))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Group(func(api chi.Router) {
		api.Use(httpmiddleware.IPRateLimit(limiter))

		api.Get("/notifications/current", h.CurrentNotice)
		api.Post("/sync", h.Sync)

		api.Route("/appointments", func(a chi.Router) {
			a.Get("/", h.ListAppointments)
			a.Post("/", h.CreateAppointment)
			a.Route("/{id}", func(one chi.Router) {
				one.Get("/", h.GetAppointment)
				one.Put("/", h.UpdateAppointment)
				one.Delete("/", h.DeleteAppointment)
				one.Post("/confirmation", h.ToggleConfirmation)
				one.Post("/result", h.ToggleResult)
				one.Get("/templates", h.AppointmentTemplates)
				one.Get("/email-link", h.EmailLink)
				one.Get("/whatsapp-link", h.WhatsAppLink)
				one.Get("/ticket-draft", h.TicketDraft)
			})
		})

		api.Route("/views", func(v chi.Router) {
			v.Get("/stats", h.Stats)
			v.Get("/today", h.Today)
			v.Get("/agenda", h.Agenda)
		})

		api.Route("/tickets", func(t chi.Router) {
			t.Get("/", h.ListTickets)
			t.Post("/", h.CreateTicket)
			t.Get("/board", h.TicketBoard)
			t.Put("/{id}", h.UpdateTicket)
			t.Patch("/{id}/status", h.SetTicketStatus)
			t.Delete("/{id}", h.DeleteTicket)
		})

		api.Route("/backup", func(b chi.Router) {
			b.Get("/export", h.ExportBackup)
			b.Post("/import", h.ImportBackup)
			b.Post("/upload", h.UploadBackup)
		})

		api.Get("/mask/cpf", h.MaskCPF)
		api.Get("/mask/phone", h.MaskPhone)
	})

	return r
}

// Health responde status simples.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready verifica as dependências configuradas e informa o estado do banco remoto.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	failures := map[string]string{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			failures[name] = err.Error()
		}
	}
	if len(failures) > 0 {
		WriteError(w, http.StatusServiceUnavailable, "INTERNAL", "dependências indisponíveis", failures)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"ready": true, "db": h.agenda.DBStatus()})
}

// CurrentNotice devolve o aviso transitório ainda válido, ou null.
func (h *Handler) CurrentNotice(w http.ResponseWriter, r *http.Request) {
	notice, ok := h.agenda.Notices().Current()
	if !ok {
		WriteJSON(w, http.StatusOK, nil)
		return
	}
	WriteJSON(w, http.StatusOK, notice)
}

// Sync relê o banco remoto, caindo para a cópia local em caso de falha.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	report, err := h.agenda.Load(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}
