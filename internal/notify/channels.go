package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/julianstephens/beastmode/internal/models"
)

type DiscordChannel struct {
	WebhookURL string
	Client     *http.Client
}

func (c *DiscordChannel) Name() string { return "discord" }

func (c *DiscordChannel) Send(ctx context.Context, p models.UserProgress, t MessageType, achievement string) error {
	if c.WebhookURL == "" {
		return errors.New("discord webhook URL is not configured")
	}
	r, err := jsonRequest(c.WebhookURL, RenderDiscord(Compose(p, t, achievement), nowFunc()))
	if err != nil {
		return err
	}
	return do(ctx, c.Client, r)
}

type TelegramChannel struct {
	BaseURL  string
	BotToken string
	ChatID   string
	Client   *http.Client
}

func (c *TelegramChannel) Name() string { return "telegram" }

func (c *TelegramChannel) Send(ctx context.Context, p models.UserProgress, t MessageType, achievement string) error {
	if c.BotToken == "" || c.ChatID == "" {
		return errors.New("telegram bot token and chat id are required")
	}
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(c.BaseURL, "/"), c.BotToken)
	r, err := jsonRequest(endpoint, map[string]string{
		"chat_id":    c.ChatID,
		"text":       RenderTelegram(Compose(p, t, achievement)),
		"parse_mode": "HTML",
	})
	if err != nil {
		return err
	}
	return do(ctx, c.Client, r)
}

type EmailChannel struct {
	Endpoint string
	APIKey   string
	From     string
	To       string
	Client   *http.Client
}

func (c *EmailChannel) Name() string { return "email" }

func (c *EmailChannel) Send(ctx context.Context, p models.UserProgress, t MessageType, achievement string) error {
	if c.To == "" || c.APIKey == "" {
		return errors.New("email address and API key are required")
	}
	subject, body, err := RenderEmail(Compose(p, t, achievement))
	if err != nil {
		return err
	}
	r, err := jsonRequest(c.Endpoint, map[string]any{
		"from":    c.From,
		"to":      []string{c.To},
		"subject": subject,
		"html":    body,
	})
	if err != nil {
		return err
	}
	r.header.Set("Authorization", "Bearer "+c.APIKey)
	return do(ctx, c.Client, r)
}

// WhatsAppChannel sends through the Twilio Messages API.
type WhatsAppChannel struct {
	BaseURL    string
	AccountSID string
	AuthToken  string
	From       string
	To         string
	Client     *http.Client
}

func (c *WhatsAppChannel) Name() string { return "whatsapp" }

func (c *WhatsAppChannel) Send(ctx context.Context, p models.UserProgress, t MessageType, achievement string) error {
	if c.AccountSID == "" || c.AuthToken == "" || c.To == "" || c.From == "" {
		return errors.New("twilio credentials and whatsapp numbers are required")
	}
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", strings.TrimRight(c.BaseURL, "/"), url.PathEscape(c.AccountSID))
	r := formRequest(endpoint, url.Values{
		"From": {whatsappAddress(c.From)},
		"To":   {whatsappAddress(c.To)},
		"Body": {RenderWhatsApp(Compose(p, t, achievement))},
	})
	r.basicUser, r.basicPass = c.AccountSID, c.AuthToken
	return do(ctx, c.Client, r)
}

func whatsappAddress(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
