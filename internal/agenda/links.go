package agenda

import (
	"net/url"
	"strings"

	"github.com/detranagenda/painel/internal/mask"
)

const (
	outlookComposeURL = "https://outlook.office.com/mail/deeplink/compose"
	whatsAppURL       = "https://wa.me/"
	countryCode       = "55"
	minPhoneDigits    = 10
)

// EmailLink monta o link de composição do Outlook Web com assunto e corpo preenchidos.
// Nenhum e-mail é enviado pelo painel.
func EmailLink(to string, app Appointment) string {
	return outlookComposeURL +
		"?to=" + to +
		"&subject=" + encodeComponent(Subject(app)) +
		"&body=" + encodeComponent(RequestBody(app))
}

// WhatsAppLink monta o link wa.me com a mensagem ao candidato.
// O código do país é incluído quando ausente.
func WhatsAppLink(app Appointment) (string, error) {
	phone := mask.Digits(deref(app.Contact))
	if phone != "" && !strings.HasPrefix(phone, countryCode) {
		phone = countryCode + phone
	}
	if len(phone) < minPhoneDigits {
		return "", ErrInvalidPhone
	}
	return whatsAppURL + phone + "?text=" + encodeComponent(StudentMessage(app)), nil
}

// encodeComponent codifica espaços como %20, como os links de mensageria esperam.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
