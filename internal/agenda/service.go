package agenda

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/detranagenda/painel/internal/notify"
	"github.com/detranagenda/painel/internal/record"
	"github.com/detranagenda/painel/internal/remote"
	"github.com/detranagenda/painel/internal/snapshot"
	"github.com/detranagenda/painel/internal/ticket"
	"github.com/detranagenda/painel/internal/util"
)

// DBStatus resume a última leitura do banco remoto.
type DBStatus string

const (
	DBConnected    DBStatus = "connected"
	DBDisconnected DBStatus = "disconnected"
	DBError        DBStatus = "error"
)

// Change descreve o efeito de uma ação de escrita.
type Change[T any] struct {
	Item    T              `json:"item"`
	Outcome remote.Outcome `json:"-"`
	Notice  *notify.Notice `json:"notice,omitempty"`
}

// LoadReport resume uma sincronização inicial.
type LoadReport struct {
	Status       DBStatus       `json:"status"`
	Source       string         `json:"source"`
	Appointments int            `json:"appointments"`
	Tickets      int            `json:"tickets"`
	Notice       *notify.Notice `json:"notice,omitempty"`
}

// Options reúne as dependências do serviço.
type Options struct {
	Snapshot    snapshot.Backend
	Gateway     *remote.Gateway
	Notices     *notify.Center
	Now         func() time.Time
	Location    *time.Location
	OfficeEmail string
	Logger      zerolog.Logger
}

// Service é o dono do estado: agendamentos, chamados e suas cópias local e remota.
// Cada ação roda inteira sob o mutex, uma de cada vez.
type Service struct {
	mu           sync.Mutex
	appointments *record.Collection[Appointment]
	tickets      *record.Collection[ticket.Ticket]
	status       DBStatus

	snapshot    snapshot.Backend
	gateway     *remote.Gateway
	notices     *notify.Center
	now         func() time.Time
	loc         *time.Location
	officeEmail string
	logger      zerolog.Logger
}

// NewService cria o serviço com coleções vazias; chame Load para preencher.
func NewService(opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Snapshot == nil {
		opts.Snapshot = snapshot.NewMemory()
	}
	if opts.Gateway == nil {
		opts.Gateway = remote.NewGateway(nil, opts.Logger)
	}
	if opts.Notices == nil {
		opts.Notices = notify.NewCenter(0, opts.Logger)
	}
	return &Service{
		appointments: record.New(func(a Appointment) string { return a.ID }),
		tickets:      record.New(func(t ticket.Ticket) string { return t.ID }),
		status:       DBDisconnected,
		snapshot:     opts.Snapshot,
		gateway:      opts.Gateway,
		notices:      opts.Notices,
		now:          opts.Now,
		loc:          opts.Location,
		officeEmail:  opts.OfficeEmail,
		logger:       opts.Logger.With().Str("component", "agenda").Logger(),
	}
}

// Notices expõe o centro de avisos.
func (s *Service) Notices() *notify.Center { return s.notices }

// Today devolve a data corrente (YYYY-MM-DD) no fuso configurado.
func (s *Service) Today() string {
	return s.now().In(s.loc).Format(util.DateLayout)
}

// DBStatus devolve o estado da última leitura remota.
func (s *Service) DBStatus() DBStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Load lê o remoto e cai para a cópia local quando ele falha ou volta vazio.
func (s *Service) Load(ctx context.Context) (LoadReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var localApps []Appointment
	if _, err := snapshot.LoadJSON(ctx, s.snapshot, snapshot.KeyAppointments, &localApps); err != nil {
		s.logger.Error().Err(err).Msg("snapshot de agendamentos ilegível")
	}
	var localTickets []ticket.Ticket
	if _, err := snapshot.LoadJSON(ctx, s.snapshot, snapshot.KeyTickets, &localTickets); err != nil {
		s.logger.Error().Err(err).Msg("snapshot de chamados ilegível")
	}

	report := LoadReport{Source: "snapshot"}
	apps, tickets := localApps, localTickets

	var remoteApps []Appointment
	err := s.gateway.Fetch(ctx, remote.TableAppointments, "updatedAt", &remoteApps)
	switch {
	case err != nil:
		var readErr *remote.ReadError
		if errors.As(err, &readErr) && readErr.Kind == remote.ReadNotConfigured {
			s.status = DBDisconnected
		} else {
			s.status = DBError
		}
		message := "Erro ao conectar com o banco remoto."
		if readErr != nil {
			message = readErr.Message()
		}
		n := s.notices.Error(message)
		report.Notice = &n
	default:
		s.status = DBConnected
		if len(remoteApps) > 0 {
			apps = remoteApps
			report.Source = "remote"
		}
		var remoteTickets []ticket.Ticket
		if err := s.gateway.Fetch(ctx, remote.TableTickets, "createdAt", &remoteTickets); err != nil {
			s.logger.Warn().Err(err).Msg("chamados remotos indisponíveis, usando cópia local")
		} else {
			tickets = remoteTickets
		}
	}
	report.Status = s.status

	s.appointments.Reset(apps)
	s.tickets.Reset(tickets)
	s.persistAppointments(ctx)
	s.persistTickets(ctx)

	if n, ok := s.warnUnconfirmedToday(); ok {
		report.Notice = &n
	}
	report.Appointments = s.appointments.Len()
	report.Tickets = s.tickets.Len()

	s.logger.Info().
		Str("status", string(report.Status)).
		Str("source", report.Source).
		Int("appointments", report.Appointments).
		Int("tickets", report.Tickets).
		Msg("dados carregados")
	return report, nil
}

// SaveAppointment cria (editingID vazio) ou edita um agendamento.
func (s *Service) SaveAppointment(ctx context.Context, editingID string, in AppointmentInput) (Change[Appointment], error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return Change[Appointment]{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	id, createdAt := util.NewID(), now
	if editingID != "" {
		existing, ok := s.appointments.Find(editingID)
		if !ok {
			return Change[Appointment]{}, ErrNotFound
		}
		id, createdAt = existing.ID, existing.CreatedAt
	}

	if err := FindDuplicate(s.appointments.List(), in.CPF, in.Renach, editingID); err != nil {
		s.notices.Error(err.Error())
		return Change[Appointment]{}, err
	}

	app := in.build(id, createdAt, now)
	outcome := s.gateway.Write(ctx, remote.TableAppointments, app)
	s.appointments.MoveToFront(app)
	s.persistAppointments(ctx)

	message := "Agendamento cadastrado com sucesso!"
	if editingID != "" {
		message = "Agendamento atualizado com sucesso!"
	}
	n := s.report(outcome, message, "Erro ao salvar no banco de dados. Salvando localmente...")
	return Change[Appointment]{Item: app, Outcome: outcome, Notice: &n}, nil
}

// DeleteAppointment remove o agendamento; chamados ligados a ele não são tocados.
func (s *Service) DeleteAppointment(ctx context.Context, id string) (Change[Appointment], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.appointments.Find(id)
	if !ok {
		return Change[Appointment]{}, ErrNotFound
	}

	outcome := s.gateway.Remove(ctx, remote.TableAppointments, id)
	s.appointments.Remove(id)
	s.persistAppointments(ctx)

	n := s.report(outcome, "Agendamento excluído com sucesso.", "Erro ao excluir no banco de dados. Removendo localmente...")
	return Change[Appointment]{Item: app, Outcome: outcome, Notice: &n}, nil
}

// ToggleConfirmation inverte isConfirmed e leva o agendamento ao topo.
func (s *Service) ToggleConfirmation(ctx context.Context, id string) (Change[Appointment], error) {
	return s.touch(ctx, id, func(app *Appointment) {
		app.IsConfirmed = !app.IsConfirmed
	})
}

// ToggleResult grava o resultado; repetir o mesmo resultado o desmarca.
func (s *Service) ToggleResult(ctx context.Context, id string, result Result) (Change[Appointment], error) {
	if !result.Valid() {
		return Change[Appointment]{}, ErrInvalidResult
	}
	return s.touch(ctx, id, func(app *Appointment) {
		if app.Result != nil && *app.Result == result {
			app.Result = nil
			return
		}
		r := result
		app.Result = &r
	})
}

// touch aplica uma alteração rápida. O sucesso é silencioso; a falha remota gera aviso.
func (s *Service) touch(ctx context.Context, id string, mutate func(*Appointment)) (Change[Appointment], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.appointments.Find(id)
	if !ok {
		return Change[Appointment]{}, ErrNotFound
	}
	mutate(&app)
	app.UpdatedAt = s.now().UTC()

	outcome := s.gateway.Write(ctx, remote.TableAppointments, app)
	s.appointments.MoveToFront(app)
	s.persistAppointments(ctx)
	n := s.reportFailure(outcome, "Erro ao atualizar no banco de dados. Salvando localmente...")
	return Change[Appointment]{Item: app, Outcome: outcome, Notice: n}, nil
}

// GetAppointment busca um agendamento pelo id.
func (s *Service) GetAppointment(id string) (Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.appointments.Find(id)
	if !ok {
		return Appointment{}, ErrNotFound
	}
	return app, nil
}

// ListAppointments aplica busca, filtro e ordenação.
func (s *Service) ListAppointments(q Query) []Appointment {
	s.mu.Lock()
	list := s.appointments.List()
	s.mu.Unlock()
	return FilterAppointments(list, q, s.Today())
}

func (s *Service) Stats() Stats {
	s.mu.Lock()
	list := s.appointments.List()
	s.mu.Unlock()
	return ComputeStats(list, s.Today())
}

func (s *Service) UnconfirmedToday() []Appointment {
	s.mu.Lock()
	list := s.appointments.List()
	s.mu.Unlock()
	return UnconfirmedToday(list, s.Today())
}

// Agenda agrupa os agendamentos por data, da mais recente para a mais antiga.
func (s *Service) Agenda() []DateGroup {
	s.mu.Lock()
	list := s.appointments.List()
	s.mu.Unlock()
	return GroupByDate(list)
}

// WarnUnconfirmedToday publica o aviso de pendências do dia, se houver.
func (s *Service) WarnUnconfirmedToday() (notify.Notice, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, _ := s.warnUnconfirmedToday()
	return n, len(UnconfirmedToday(s.appointments.List(), s.Today()))
}

func (s *Service) warnUnconfirmedToday() (notify.Notice, bool) {
	pending := UnconfirmedToday(s.appointments.List(), s.Today())
	if len(pending) == 0 {
		return notify.Notice{}, false
	}
	return s.notices.Error(UnconfirmedTodayMessage(len(pending))), true
}

// UnconfirmedTodayMessage é o texto do alerta de pendências do dia.
func UnconfirmedTodayMessage(count int) string {
	return fmt.Sprintf("Atenção: %d agendamento(s) para hoje não foram confirmados. Solicite uma nova data.", count)
}

// TicketDraftFor devolve o formulário de chamado pré-preenchido com o candidato.
func (s *Service) TicketDraftFor(appointmentID string) (ticket.Input, error) {
	app, err := s.GetAppointment(appointmentID)
	if err != nil {
		return ticket.Input{}, err
	}
	id := app.ID
	obs := ""
	return ticket.Input{
		AppointmentID: &id,
		StudentName:   app.FullName,
		StudentCPF:    app.CPF,
		Type:          ticket.TypeSGA,
		Status:        ticket.StatusOpen,
		Observations:  &obs,
	}, nil
}

// SaveTicket cria (editingID vazio) ou edita um chamado. Na criação, o agendamento
// ligado, se existir, é marcado com hasSgaCrtCall e sobe para o topo.
func (s *Service) SaveTicket(ctx context.Context, editingID string, in ticket.Input) (Change[ticket.Ticket], error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return Change[ticket.Ticket]{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	var t ticket.Ticket
	if editingID != "" {
		existing, ok := s.tickets.Find(editingID)
		if !ok {
			return Change[ticket.Ticket]{}, ticket.ErrNotFound
		}
		t = in.Apply(existing, now)
	} else {
		t = in.Build(util.NewID(), now)
	}

	outcome := s.gateway.Write(ctx, remote.TableTickets, t)
	linked := remote.Outcome{Synced: true}
	if editingID != "" {
		s.tickets.Replace(t)
	} else {
		s.tickets.Prepend(t)
		if t.AppointmentID != nil {
			linked = s.markSgaCrtCall(ctx, *t.AppointmentID, now)
		}
	}
	s.persistTickets(ctx)

	message := "Chamado aberto com sucesso!"
	if editingID != "" {
		message = "Chamado atualizado com sucesso!"
	}
	n := s.report(outcome, message, "Erro ao salvar chamado no banco de dados. Salvando localmente...")
	if !outcome.Failed() && linked.Failed() {
		n = s.notices.Error("Erro ao atualizar o agendamento no banco de dados. Salvando localmente...")
	}
	return Change[ticket.Ticket]{Item: t, Outcome: outcome, Notice: &n}, nil
}

// markSgaCrtCall ignora ids que não apontam para nenhum agendamento.
func (s *Service) markSgaCrtCall(ctx context.Context, appointmentID string, now time.Time) remote.Outcome {
	app, ok := s.appointments.Find(appointmentID)
	if !ok {
		s.logger.Debug().Str("appointment_id", appointmentID).Msg("chamado ligado a agendamento inexistente")
		return remote.Outcome{Synced: true}
	}
	app.HasSgaCrtCall = true
	app.UpdatedAt = now
	outcome := s.gateway.Write(ctx, remote.TableAppointments, app)
	s.appointments.MoveToFront(app)
	s.persistAppointments(ctx)
	return outcome
}

// SetTicketStatus troca apenas o status, mantendo a posição do chamado.
func (s *Service) SetTicketStatus(ctx context.Context, id string, status ticket.Status) (Change[ticket.Ticket], error) {
	status = ticket.NormalizeStatus(string(status))
	if !status.Valid() {
		return Change[ticket.Ticket]{}, ticket.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tickets.Find(id)
	if !ok {
		return Change[ticket.Ticket]{}, ticket.ErrNotFound
	}
	t.Status = status
	t.UpdatedAt = s.now().UTC()

	outcome := s.gateway.Write(ctx, remote.TableTickets, t)
	s.tickets.Replace(t)
	s.persistTickets(ctx)
	n := s.reportFailure(outcome, "Erro ao atualizar chamado no banco de dados. Salvando localmente...")
	return Change[ticket.Ticket]{Item: t, Outcome: outcome, Notice: n}, nil
}

// DeleteTicket remove o chamado sem alterar o agendamento ligado.
func (s *Service) DeleteTicket(ctx context.Context, id string) (Change[ticket.Ticket], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tickets.Find(id)
	if !ok {
		return Change[ticket.Ticket]{}, ticket.ErrNotFound
	}
	outcome := s.gateway.Remove(ctx, remote.TableTickets, id)
	s.tickets.Remove(id)
	s.persistTickets(ctx)

	n := s.report(outcome, "Chamado excluído.", "Erro ao excluir chamado no banco de dados. Removendo localmente...")
	return Change[ticket.Ticket]{Item: t, Outcome: outcome, Notice: &n}, nil
}

// ListTickets devolve os chamados na ordem da coleção.
func (s *Service) ListTickets() []ticket.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tickets.List()
}

// Board devolve o quadro de chamados por status.
func (s *Service) Board() []ticket.Column {
	return ticket.Board(s.ListTickets())
}

// Export serializa todos os agendamentos para o arquivo de backup.
func (s *Service) Export() (string, []byte, error) {
	s.mu.Lock()
	list := s.appointments.List()
	s.mu.Unlock()

	data, err := EncodeBackup(list)
	if err != nil {
		s.notices.Error("Erro ao exportar backup.")
		return "", nil, err
	}
	s.notices.Success("Backup exportado com sucesso!")
	return BackupFileName(s.now()), data, nil
}

// Import substitui a coleção inteira pelo conteúdo do backup e tenta enviá-lo ao remoto.
// Um arquivo inválido é rejeitado sem alterar nada.
func (s *Service) Import(ctx context.Context, data []byte) (Change[[]Appointment], error) {
	list, err := DecodeBackup(data, s.now().UTC())
	if err != nil {
		s.notices.Error("Erro ao importar arquivo ou sincronizar com banco.")
		return Change[[]Appointment]{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := remote.Outcome{Synced: true}
	if len(list) > 0 {
		outcome = s.gateway.Write(ctx, remote.TableAppointments, list)
	}
	s.appointments.Reset(list)
	s.persistAppointments(ctx)

	n := s.report(outcome, "Dados importados e sincronizados com sucesso!", "Erro ao importar arquivo ou sincronizar com banco.")
	if warn, ok := s.warnUnconfirmedToday(); ok {
		n = warn
	}
	return Change[[]Appointment]{Item: list, Outcome: outcome, Notice: &n}, nil
}

// Templates devolve os textos prontos do agendamento.
func (s *Service) Templates(id string) (Templates, error) {
	app, err := s.GetAppointment(id)
	if err != nil {
		return Templates{}, err
	}
	return Render(app), nil
}

// EmailLink monta o link de composição para o e-mail do setor.
func (s *Service) EmailLink(id string) (string, error) {
	app, err := s.GetAppointment(id)
	if err != nil {
		return "", err
	}
	return EmailLink(s.officeEmail, app), nil
}

// WhatsAppLink monta o link de conversa com o candidato.
func (s *Service) WhatsAppLink(id string) (string, error) {
	app, err := s.GetAppointment(id)
	if err != nil {
		return "", err
	}
	link, err := WhatsAppLink(app)
	if err != nil {
		s.notices.Error("Número de telefone inválido ou incompleto.")
		return "", err
	}
	return link, nil
}

func (s *Service) report(outcome remote.Outcome, success, failure string) notify.Notice {
	if outcome.Failed() {
		return s.notices.Error(failure)
	}
	return s.notices.Success(success)
}

// reportFailure só publica aviso quando a escrita remota falhou.
func (s *Service) reportFailure(outcome remote.Outcome, failure string) *notify.Notice {
	if !outcome.Failed() {
		return nil
	}
	n := s.notices.Error(failure)
	return &n
}

func (s *Service) persistAppointments(ctx context.Context) {
	if err := snapshot.SaveJSON(ctx, s.snapshot, snapshot.KeyAppointments, s.appointments.List()); err != nil {
		s.logger.Error().Err(err).Msg("falha ao gravar snapshot de agendamentos")
	}
}

func (s *Service) persistTickets(ctx context.Context) {
	if err := snapshot.SaveJSON(ctx, s.snapshot, snapshot.KeyTickets, s.tickets.List()); err != nil {
		s.logger.Error().Err(err).Msg("falha ao gravar snapshot de chamados")
	}
}
