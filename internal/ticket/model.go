package ticket

import (
	"errors"
	"strings"
	"time"

	"github.com/detranagenda/painel/internal/mask"
	"github.com/detranagenda/painel/internal/util"
)

var (
	ErrNotFound      = errors.New("chamado não encontrado")
	ErrInvalidStatus = errors.New("status inválido")
	ErrInvalidType   = errors.New("tipo de chamado inválido")
)

// Type identifica o sistema ao qual o chamado se refere.
type Type string

const (
	TypeSGA   Type = "SGA"
	TypeCRT   Type = "CRT"
	TypeOther Type = "Outro"
)

// Status é um rótulo livre: qualquer status pode seguir qualquer outro.
type Status string

const (
	StatusOpen       Status = "Aberto"
	StatusInProgress Status = "Em Andamento"
	StatusResolved   Status = "Resolvido"
)

// Statuses lista as colunas do quadro, na ordem de exibição.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusResolved}

// Ticket representa um chamado SGA/CRT de acompanhamento.
// AppointmentID é uma referência fraca: pode apontar para um agendamento já excluído.
type Ticket struct {
	ID            string    `json:"id"`
	AppointmentID *string   `json:"appointmentId"`
	StudentName   string    `json:"studentName"`
	StudentCPF    string    `json:"studentCpf"`
	Type          Type      `json:"type"`
	Status        Status    `json:"status"`
	Description   string    `json:"description"`
	Observations  *string   `json:"observations"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Input é o conteúdo do formulário de chamado.
type Input struct {
	AppointmentID *string `json:"appointmentId"`
	StudentName   string  `json:"studentName"`
	StudentCPF    string  `json:"studentCpf"`
	Type          Type    `json:"type"`
	Status        Status  `json:"status"`
	Description   string  `json:"description"`
	Observations  *string `json:"observations"`
}

// Normalize aplica trims e defaults (SGA, Aberto).
func (in *Input) Normalize() {
	in.StudentName = strings.TrimSpace(in.StudentName)
	in.StudentCPF = mask.CPF(in.StudentCPF)
	in.Description = strings.TrimSpace(in.Description)
	if in.Type == "" {
		in.Type = TypeSGA
	}
	in.Status = NormalizeStatus(string(in.Status))
	if in.AppointmentID != nil {
		id := strings.TrimSpace(*in.AppointmentID)
		if id == "" {
			in.AppointmentID = nil
		} else {
			in.AppointmentID = &id
		}
	}
	if in.Observations != nil {
		obs := strings.TrimSpace(*in.Observations)
		in.Observations = &obs
	}
}

// Validate confere campos obrigatórios e rótulos aceitos.
func (in Input) Validate() error {
	if err := util.RequireString(in.StudentName, "nome do aluno"); err != nil {
		return err
	}
	if err := util.RequireString(in.StudentCPF, "CPF do aluno"); err != nil {
		return err
	}
	if err := util.RequireString(in.Description, "descrição"); err != nil {
		return err
	}
	if !in.Type.Valid() {
		return ErrInvalidType
	}
	if !in.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// Build cria um chamado novo a partir do formulário.
func (in Input) Build(id string, now time.Time) Ticket {
	return Ticket{
		ID:            id,
		AppointmentID: in.AppointmentID,
		StudentName:   in.StudentName,
		StudentCPF:    in.StudentCPF,
		Type:          in.Type,
		Status:        in.Status,
		Description:   in.Description,
		Observations:  in.Observations,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Apply sobrepõe o formulário a um chamado existente, preservando id e createdAt.
func (in Input) Apply(t Ticket, now time.Time) Ticket {
	if in.AppointmentID != nil {
		t.AppointmentID = in.AppointmentID
	}
	t.StudentName = in.StudentName
	t.StudentCPF = in.StudentCPF
	t.Type = in.Type
	t.Status = in.Status
	t.Description = in.Description
	t.Observations = in.Observations
	t.UpdatedAt = now
	return t
}

// NormalizeStatus aceita variações de caixa e usa Aberto como padrão.
func NormalizeStatus(status string) Status {
	status = strings.TrimSpace(status)
	if status == "" {
		return StatusOpen
	}
	for _, s := range Statuses {
		if strings.EqualFold(status, string(s)) {
			return s
		}
	}
	return Status(status)
}

// Valid indica se o status é aceito.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Valid indica se o tipo é aceito.
func (t Type) Valid() bool {
	return t == TypeSGA || t == TypeCRT || t == TypeOther
}
