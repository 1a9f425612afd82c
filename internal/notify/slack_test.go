package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSlack(t *testing.T) {
	tests := []struct {
		alert Alert
		want  string
	}{
		{Alert{Title: "Pendências", Text: "2 agendamentos", Severity: "warning"}, ":warning: *Pendências*\n2 agendamentos"},
		{Alert{Text: "falhou", Severity: "critical"}, ":rotating_light: falhou"},
		{Alert{Text: "ok"}, ":information_source: ok"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSlack(tt.alert))
	}
}

func TestSlackNotifier(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL)
	require.NotNil(t, n)
	require.NoError(t, n.Notify(context.Background(), Alert{Title: "T", Text: "corpo", Severity: "warning"}))
	assert.Equal(t, ":warning: *T*\ncorpo", got["text"])
}

func TestSlackNotifierErrors(t *testing.T) {
	assert.Nil(t, NewSlackNotifier(""))

	var nilNotifier *SlackNotifier
	assert.Error(t, nilNotifier.Notify(context.Background(), Alert{}))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := NewSlackNotifier(srv.URL).Notify(context.Background(), Alert{Text: "x"})
	assert.ErrorContains(t, err, "403")
}
