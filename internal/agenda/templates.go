package agenda

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/detranagenda/painel/internal/util"
)

var weekdays = [7]string{
	"DOMINGO",
	"SEGUNDA-FEIRA",
	"TERÇA-FEIRA",
	"QUARTA-FEIRA",
	"QUINTA-FEIRA",
	"SEXTA-FEIRA",
	"SÁBADO",
}

const separator = "-----------------------------------------"

// Templates agrupa os textos gerados para um agendamento.
type Templates struct {
	Subject        string `json:"subject"`
	RequestBody    string `json:"requestBody"`
	StudentMessage string `json:"studentMessage"`
}

// Render gera todos os textos de um agendamento.
func Render(app Appointment) Templates {
	return Templates{
		Subject:        Subject(app),
		RequestBody:    RequestBody(app),
		StudentMessage: StudentMessage(app),
	}
}

// Subject monta o assunto do e-mail de solicitação.
// O prefixo fixo é concatenado ao tipo de exame como está gravado.
func Subject(app Appointment) string {
	first := ""
	if fields := strings.Fields(app.FullName); len(fields) > 0 {
		first = fields[0]
	}
	return fmt.Sprintf("PROVA DE %s - %s %s", upper(string(app.ExamType)), upper(app.Renach), upper(first))
}

// RequestBody monta o corpo do e-mail enviado à banca examinadora.
func RequestBody(app Appointment) string {
	date, weekday := formatDate(app.AppointmentDate)

	var b strings.Builder
	b.WriteString("Prezados,\n")
	fmt.Fprintf(&b, "Solicito o agendamento de Prova Teórica de %s para o candidato abaixo, conforme data previamente alinhada com a Banca Examinadora local.\n", app.ExamType)
	fmt.Fprintf(&b, "DATA DO AGENDAMENTO: %s (%s)\n", date, weekday)
	b.WriteString(separator + "\n")
	b.WriteString("**Dados do candidato:**\n\n")
	fmt.Fprintf(&b, "NOME: %s\n", upper(app.FullName))
	fmt.Fprintf(&b, "CPF: %s\n", app.CPF)
	fmt.Fprintf(&b, "RENACH: %s\n", upper(app.Renach))
	fmt.Fprintf(&b, "TIPO DE EXAME: %s\n", upper(string(app.ExamType)))
	fmt.Fprintf(&b, "DATA: %s\n", date)
	fmt.Fprintf(&b, "LOCAL: %s\n", app.Location)
	fmt.Fprintf(&b, "CONTATO: %s\n", deref(app.Contact))
	b.WriteString(separator + "\n")
	b.WriteString("**STATUS DE APTIDÃO:**\n\n")
	fmt.Fprintf(&b, "- VISTA: %s\n", fitness(app.IsFitVision))
	fmt.Fprintf(&b, "- PSICÓLOGO: %s\n", fitness(app.IsFitPsychologist))
	fmt.Fprintf(&b, "- TELA H572C: %s\n", fitness(app.IsFitH572C))
	fmt.Fprintf(&b, "- TELA CP02A: %s", fitness(app.IsFitCP02A))
	if app.ExamType == ExamRoad {
		fmt.Fprintf(&b, "\n- PROVA LEGISLAÇÃO: %s", fitness(app.IsFitLegislation))
	}
	return b.String()
}

// StudentMessage monta o aviso enviado ao candidato pelo WhatsApp.
func StudentMessage(app Appointment) string {
	date, weekday := formatDate(app.AppointmentDate)
	hour := app.AppointmentTime
	if hour == "" {
		hour = "--:--"
	}

	var b strings.Builder
	b.WriteString("📢 PROVA DE LEGISLAÇÃO – DETRAN-BA\n\n")
	fmt.Fprintf(&b, "%s, informamos que sua prova teórica de legislação está agendada para:\n\n", upper(app.FullName))
	fmt.Fprintf(&b, "📅 %s (%s)\n", date, weekday)
	fmt.Fprintf(&b, "⏰ %s\n", hour)
	fmt.Fprintf(&b, "📍 %s\n\n", app.Location)
	b.WriteString("Dados do candidato:\n")
	fmt.Fprintf(&b, "• CPF: %s\n", app.CPF)
	fmt.Fprintf(&b, "• RENACH: %s\n", upper(app.Renach))
	fmt.Fprintf(&b, "• Serviço: %s\n", app.ServiceType)
	fmt.Fprintf(&b, "• Categoria: %s\n\n", app.Category)
	b.WriteString("➡️ Comparecer com 30 minutos de antecedência, portando documento oficial com foto.\n\n")
	fmt.Fprintf(&b, "%s | DETRAN-BA\n", app.Location)
	b.WriteString("LOCAL: RODOVIARIA DE NAZARÉ-BA")
	return b.String()
}

// Weekday devolve o nome do dia da semana de uma data AAAA-MM-DD.
func Weekday(date string) string {
	_, weekday := formatDate(date)
	return weekday
}

func formatDate(value string) (string, string) {
	t, err := time.Parse(util.DateLayout, value)
	if err != nil {
		return value, ""
	}
	return t.Format("02/01/2006"), weekdays[int(t.Weekday())]
}

func fitness(ok bool) string {
	if ok {
		return string(ResultApt)
	}
	return string(ResultUnfit)
}

func upper(s string) string {
	return cases.Upper(language.BrazilianPortuguese).String(s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
