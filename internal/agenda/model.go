package agenda

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/detranagenda/painel/internal/mask"
	"github.com/detranagenda/painel/internal/util"
)

var (
	ErrNotFound        = errors.New("agendamento não encontrado")
	ErrInvalidExamType = errors.New("tipo de exame inválido")
	ErrInvalidResult   = errors.New("resultado inválido")
	ErrInvalidPhone    = errors.New("número de telefone inválido ou incompleto")
)

// ExamType classifica a prova agendada.
type ExamType string

const (
	ExamLegislation ExamType = "Legislação"
	ExamRoad        ExamType = "Rua"
)

// Result é o veredito final do candidato.
type Result string

const (
	ResultApt   Result = "APTO"
	ResultUnfit Result = "INAPTO"
)

const (
	DefaultServiceType = "151 – 1ª Habilitação Veicular (2 e 4 rodas)"
	DefaultCategory    = "AB"
)

// Appointment representa o agendamento de prova de um candidato.
// Os nomes JSON coincidem com as colunas da tabela remota e com o backup exportado.
type Appointment struct {
	ID                string    `json:"id"`
	FullName          string    `json:"fullName"`
	CPF               string    `json:"cpf"`
	Renach            string    `json:"renach"`
	AppointmentDate   string    `json:"appointmentDate"`
	AppointmentTime   string    `json:"appointmentTime"`
	Location          string    `json:"location"`
	Contact           *string   `json:"contact"`
	ServiceType       string    `json:"serviceType"`
	Category          string    `json:"category"`
	ExamType          ExamType  `json:"examType"`
	IsFitVision       bool      `json:"isFitVision"`
	IsFitPsychologist bool      `json:"isFitPsychologist"`
	IsFitH572C        bool      `json:"isFitH572C"`
	IsFitCP02A        bool      `json:"isFitCP02A"`
	IsFitLegislation  bool      `json:"isFitLegislation"`
	HasSgaCrtCall     bool      `json:"hasSgaCrtCall"`
	IsConfirmed       bool      `json:"isConfirmed"`
	Result            *Result   `json:"result"`
	Observations      *string   `json:"observations"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// AppointmentInput é o conteúdo do formulário de agendamento.
type AppointmentInput struct {
	FullName          string   `json:"fullName"`
	CPF               string   `json:"cpf"`
	Renach            string   `json:"renach"`
	AppointmentDate   string   `json:"appointmentDate"`
	AppointmentTime   string   `json:"appointmentTime"`
	Location          string   `json:"location"`
	Contact           *string  `json:"contact"`
	ServiceType       string   `json:"serviceType"`
	Category          string   `json:"category"`
	ExamType          ExamType `json:"examType"`
	IsFitVision       bool     `json:"isFitVision"`
	IsFitPsychologist bool     `json:"isFitPsychologist"`
	IsFitH572C        bool     `json:"isFitH572C"`
	IsFitCP02A        bool     `json:"isFitCP02A"`
	IsFitLegislation  bool     `json:"isFitLegislation"`
	HasSgaCrtCall     bool     `json:"hasSgaCrtCall"`
	IsConfirmed       bool     `json:"isConfirmed"`
	Result            *Result  `json:"result"`
	Observations      *string  `json:"observations"`
}

// Normalize aplica trims, máscaras e valores padrão do formulário.
func (in *AppointmentInput) Normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.CPF = mask.CPF(in.CPF)
	in.Renach = strings.TrimSpace(in.Renach)
	in.AppointmentDate = strings.TrimSpace(in.AppointmentDate)
	in.AppointmentTime = strings.TrimSpace(in.AppointmentTime)
	in.Location = strings.TrimSpace(in.Location)
	if in.Contact != nil {
		masked := mask.Phone(*in.Contact)
		in.Contact = &masked
	}
	in.ServiceType = strings.TrimSpace(in.ServiceType)
	if in.ServiceType == "" {
		in.ServiceType = DefaultServiceType
	}
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		in.Category = DefaultCategory
	}
	in.ExamType = ExamType(strings.TrimSpace(string(in.ExamType)))
	if in.ExamType == "" {
		in.ExamType = ExamLegislation
	}
	if in.Observations != nil {
		obs := strings.TrimSpace(*in.Observations)
		in.Observations = &obs
	}
}

// Validate confere os campos obrigatórios do formulário.
func (in AppointmentInput) Validate() error {
	if err := util.RequireString(in.FullName, "nome"); err != nil {
		return err
	}
	if err := util.RequireString(in.CPF, "CPF"); err != nil {
		return err
	}
	if err := util.RequireString(in.Renach, "RENACH"); err != nil {
		return err
	}
	if err := util.ValidateDate(in.AppointmentDate, "data do agendamento"); err != nil {
		return err
	}
	if err := util.RequireString(in.AppointmentTime, "horário"); err != nil {
		return err
	}
	if err := util.RequireString(in.Location, "local"); err != nil {
		return err
	}
	if !in.ExamType.Valid() {
		return ErrInvalidExamType
	}
	if in.Result != nil && !in.Result.Valid() {
		return ErrInvalidResult
	}
	return nil
}

func (in AppointmentInput) build(id string, createdAt, now time.Time) Appointment {
	return Appointment{
		ID:                id,
		FullName:          in.FullName,
		CPF:               in.CPF,
		Renach:            in.Renach,
		AppointmentDate:   in.AppointmentDate,
		AppointmentTime:   in.AppointmentTime,
		Location:          in.Location,
		Contact:           in.Contact,
		ServiceType:       in.ServiceType,
		Category:          in.Category,
		ExamType:          in.ExamType,
		IsFitVision:       in.IsFitVision,
		IsFitPsychologist: in.IsFitPsychologist,
		IsFitH572C:        in.IsFitH572C,
		IsFitCP02A:        in.IsFitCP02A,
		IsFitLegislation:  in.IsFitLegislation,
		HasSgaCrtCall:     in.HasSgaCrtCall,
		IsConfirmed:       in.IsConfirmed,
		Result:            in.Result,
		Observations:      in.Observations,
		CreatedAt:         createdAt,
		UpdatedAt:         now,
	}
}

// Valid indica se o tipo de exame é aceito.
func (e ExamType) Valid() bool {
	return e == ExamLegislation || e == ExamRoad
}

// Valid indica se o resultado é aceito.
func (r Result) Valid() bool {
	return r == ResultApt || r == ResultUnfit
}

// ParseResult converte texto livre (apto, INAPTO...) no resultado correspondente.
func ParseResult(value string) (Result, error) {
	r := Result(strings.ToUpper(strings.TrimSpace(value)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidResult, value)
	}
	return r, nil
}

// DuplicateFieldError indica colisão de CPF ou RENACH com outro candidato.
type DuplicateFieldError struct {
	Field        string
	ConflictID   string
	ConflictName string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("Este %s já está cadastrado para %s.", e.Field, e.ConflictName)
}
