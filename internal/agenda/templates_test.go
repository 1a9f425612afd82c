package agenda

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func roadAppointment() Appointment {
	return Appointment{
		ID:                "app-1",
		FullName:          "João Silva",
		CPF:               "123.456.789-01",
		Renach:            "ba123456789",
		AppointmentDate:   "2026-10-15",
		AppointmentTime:   "08:00",
		Location:          "CIRETRAN Nazaré",
		Contact:           strPtr("(71) 98314-9916"),
		ServiceType:       DefaultServiceType,
		Category:          DefaultCategory,
		ExamType:          ExamRoad,
		IsFitVision:       true,
		IsFitPsychologist: true,
		IsFitCP02A:        true,
		IsFitLegislation:  true,
	}
}

func legislationAppointment() Appointment {
	return Appointment{
		ID:              "app-2",
		FullName:        "Maria das Graças",
		CPF:             "987.654.321-00",
		Renach:          "BA987654321",
		AppointmentDate: "2026-10-17",
		Location:        "CIRETRAN Nazaré",
		ServiceType:     DefaultServiceType,
		Category:        DefaultCategory,
		ExamType:        ExamLegislation,
		IsFitVision:     true,
		IsFitH572C:      true,
		IsFitCP02A:      true,
	}
}

func TestTemplatesGolden(t *testing.T) {
	g := goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".golden"))

	fixtures := map[string]Appointment{
		"road":        roadAppointment(),
		"legislation": legislationAppointment(),
	}
	for name, app := range fixtures {
		t.Run(name, func(t *testing.T) {
			g.Assert(t, "request_body_"+name, []byte(RequestBody(app)))
			g.Assert(t, "student_message_"+name, []byte(StudentMessage(app)))
		})
	}
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "PROVA DE RUA - BA123456789 JOÃO", Subject(roadAppointment()))
	assert.Equal(t, "PROVA DE LEGISLAÇÃO - BA987654321 MARIA", Subject(legislationAppointment()))

	// registros antigos gravaram o rótulo completo no tipo de exame
	legacy := roadAppointment()
	legacy.ExamType = "Prova de Rua"
	assert.Equal(t, "PROVA DE PROVA DE RUA - BA123456789 JOÃO", Subject(legacy))

	blank := roadAppointment()
	blank.FullName = "   "
	assert.Equal(t, "PROVA DE RUA - BA123456789 ", Subject(blank))
}

func TestLegislationLineOnlyForRoad(t *testing.T) {
	assert.Contains(t, RequestBody(roadAppointment()), "PROVA LEGISLAÇÃO: APTO")
	assert.NotContains(t, RequestBody(legislationAppointment()), "PROVA LEGISLAÇÃO")
}

func TestWeekday(t *testing.T) {
	tests := map[string]string{
		"2026-10-11": "DOMINGO",
		"2026-10-13": "TERÇA-FEIRA",
		"2026-10-15": "QUINTA-FEIRA",
		"2026-10-17": "SÁBADO",
		"15/10/2026": "",
	}
	for date, want := range tests {
		assert.Equal(t, want, Weekday(date), date)
	}
}

func TestRenderUnparsableDate(t *testing.T) {
	app := roadAppointment()
	app.AppointmentDate = "em breve"

	body := RequestBody(app)
	assert.Contains(t, body, "DATA DO AGENDAMENTO: em breve ()")
	assert.Equal(t, Subject(app), Render(app).Subject)
}
