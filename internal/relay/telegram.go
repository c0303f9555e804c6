package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"

	"github.com/osa911/uplink/internal/contact"
)

const (
	providerTelegram = "telegram"

	defaultTelegramAPI = "https://api.telegram.org"
)

// Telegram delivers forms as messages from a bot to a chat
type Telegram struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
}

// NewTelegram creates a Telegram relay. A nil client uses http.DefaultClient.
func NewTelegram(botToken, chatID string, client *http.Client) *Telegram {
	if client == nil {
		client = http.DefaultClient
	}
	return &Telegram{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  defaultTelegramAPI,
		client:   client,
	}
}

// WithAPIBase points the relay at another Bot API host
func (t *Telegram) WithAPIBase(base string) *Telegram {
	t.apiBase = base
	return t
}

// telegramMessage represents a Telegram API message
type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// telegramResponse is the envelope every Bot API call returns
type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// FormatMessage renders the form as Telegram HTML
func FormatMessage(form contact.Form) string {
	return fmt.Sprintf(
		"🆕 <b>New Contact Form Submission</b>\n\n"+
			"<b>Name:</b> %s\n"+
			"<b>Email:</b> %s\n"+
			"<b>Message:</b>\n%s",
		html.EscapeString(form.Name),
		html.EscapeString(form.ReturnAddress),
		html.EscapeString(form.Message),
	)
}

// Send posts the form to the configured chat
func (t *Telegram) Send(ctx context.Context, form contact.Form) error {
	if t.botToken == "" || t.chatID == "" {
		return contact.AsRelayError(providerTelegram, fmt.Errorf("telegram bot token or chat ID not configured"))
	}

	payload := telegramMessage{
		ChatID:    t.chatID,
		Text:      FormatMessage(form),
		ParseMode: "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return contact.AsRelayError(providerTelegram, fmt.Errorf("failed to marshal telegram message: %w", err))
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return contact.AsRelayError(providerTelegram, fmt.Errorf("failed to create telegram request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		// the request URL carries the bot token, keep it out of the error
		return contact.AsRelayError(providerTelegram, fmt.Errorf("failed to send telegram message: %w", stripURL(err)))
	}
	defer resp.Body.Close()

	var result telegramResponse
	_ = json.NewDecoder(resp.Body).Decode(&result)

	if resp.StatusCode != http.StatusOK || !result.OK {
		return &contact.RelayError{
			Provider:   providerTelegram,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("telegram API error: %s", result.Description),
		}
	}

	return nil
}

// stripURL drops the request URL, which embeds the bot token, from
// transport errors
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
