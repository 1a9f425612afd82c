package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Notifier envia alertas para canais externos.
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}

// Alert é a mensagem enviada ao canal externo.
type Alert struct {
	Title    string
	Text     string
	Severity string
}

// SlackNotifier publica alertas num webhook de entrada do Slack.
type SlackNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewSlackNotifier devolve nil quando o webhook não foi configurado.
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	if webhookURL == "" {
		return nil
	}
	return &SlackNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *SlackNotifier) Notify(ctx context.Context, alert Alert) error {
	if s == nil || s.webhookURL == "" {
		return errors.New("slack não configurado")
	}

	body, err := json.Marshal(map[string]string{"text": FormatSlack(alert)})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("slack respondeu %d", resp.StatusCode)
	}
	return nil
}

// FormatSlack monta o texto com emoji de severidade e título em negrito.
func FormatSlack(alert Alert) string {
	emoji := ":information_source:"
	switch alert.Severity {
	case "warning":
		emoji = ":warning:"
	case "critical":
		emoji = ":rotating_light:"
	}
	if alert.Title != "" {
		return emoji + " *" + alert.Title + "*\n" + alert.Text
	}
	return emoji + " " + alert.Text
}
