package agenda

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailLink(t *testing.T) {
	app := roadAppointment()
	link := EmailLink("agendamento.crt@detran.ba.gov.br", app)

	require.True(t, strings.HasPrefix(link, "https://outlook.office.com/mail/deeplink/compose?to=agendamento.crt@detran.ba.gov.br&subject="))
	assert.Contains(t, link, "subject=PROVA%20DE%20RUA%20-%20BA123456789%20JO%C3%83O&body=")
	assert.NotContains(t, link, "+")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, RequestBody(app), u.Query().Get("body"))
}

func TestWhatsAppLink(t *testing.T) {
	tests := []struct {
		name    string
		contact *string
		prefix  string
		wantErr bool
	}{
		{name: "adiciona código do país", contact: strPtr("(71) 98314-9916"), prefix: "https://wa.me/5571983149916?text="},
		{name: "mantém código do país", contact: strPtr("55 71 98314-9916"), prefix: "https://wa.me/5571983149916?text="},
		{name: "fixo com dez dígitos", contact: strPtr("(71) 3333-4444"), prefix: "https://wa.me/557133334444?text="},
		{name: "incompleto", contact: strPtr("(71) 9831"), wantErr: true},
		{name: "vazio", contact: strPtr(""), wantErr: true},
		{name: "ausente", contact: nil, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := roadAppointment()
			app.Contact = tt.contact

			link, err := WhatsAppLink(app)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPhone)
				assert.Empty(t, link)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(link, tt.prefix), link)

			u, err := url.Parse(link)
			require.NoError(t, err)
			assert.Equal(t, StudentMessage(app), u.Query().Get("text"))
		})
	}
}
