package notify

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"
	"time"
)

// Embed colours per tone, as Discord decimal RGB.
var toneColors = map[string]int{
	string(TierZeroProgress):  0xE74C3C,
	string(TierFallingShort):  0xE67E22,
	string(TierGoodProgress):  0x3498DB,
	string(TierBeastModeDone): 0x2ECC71,
	string(SeverityGentle):    0x3498DB,
	string(SeverityFirm):      0xF1C40F,
	string(SeverityHarsh):     0xE67E22,
	string(SeverityBrutal):    0x8B0000,
	"celebration":             0xFFD700,
}

// ToneColor returns the embed colour for a tone, grey when unknown.
func ToneColor(tone string) int {
	if c, ok := toneColors[tone]; ok {
		return c
	}
	return 0x95A5A6
}

type DiscordPayload struct {
	Username string         `json:"username,omitempty"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

type DiscordEmbed struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Color       int                 `json:"color"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"`
	Footer      *DiscordFooter      `json:"footer,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type DiscordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordFooter struct {
	Text string `json:"text"`
}

func RenderDiscord(m Message, now time.Time) DiscordPayload {
	fields := make([]DiscordEmbedField, 0, len(m.Highlights))
	for _, h := range m.Highlights {
		fields = append(fields, DiscordEmbedField{Name: h.Label, Value: h.Value, Inline: true})
	}
	return DiscordPayload{
		Username: "Beast Mode Coach",
		Embeds: []DiscordEmbed{{
			Title:       m.Title,
			Description: m.Body,
			Color:       ToneColor(m.Tone),
			Fields:      fields,
			Footer:      &DiscordFooter{Text: strings.ToUpper(strings.ReplaceAll(m.Tone, "_", " "))},
			Timestamp:   now.UTC().Format(time.RFC3339),
		}},
	}
}

// RenderTelegram formats m for Telegram's HTML parse mode.
func RenderTelegram(m Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n\n%s\n", html.EscapeString(m.Title), html.EscapeString(m.Body))
	for _, h := range m.Highlights {
		fmt.Fprintf(&b, "\n<i>%s:</i> %s", html.EscapeString(h.Label), html.EscapeString(h.Value))
	}
	return b.String()
}

// RenderWhatsApp formats m with WhatsApp's lightweight markup.
func RenderWhatsApp(m Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n\n%s\n", m.Title, m.Body)
	for _, h := range m.Highlights {
		fmt.Fprintf(&b, "\n_%s:_ %s", h.Label, h.Value)
	}
	return b.String()
}

// RenderPush is the one-line form used by the desktop tray.
func RenderPush(m Message) string {
	return m.Title + ": " + m.Body
}

var emailTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body style="font-family: Arial, sans-serif; background: #111; color: #eee; padding: 24px;">
  <div style="max-width: 560px; margin: 0 auto; border-top: 6px solid {{.Color}}; background: #1c1c1c; padding: 24px;">
    <h1 style="margin-top: 0;">{{.Title}}</h1>
    <p style="font-size: 16px; line-height: 1.5;">{{.Body}}</p>
    <table style="width: 100%; margin-top: 16px;">
      {{range .Highlights}}<tr><td style="color: #999;">{{.Label}}</td><td style="text-align: right;"><strong>{{.Value}}</strong></td></tr>
      {{end}}
    </table>
  </div>
</body>
</html>`))

// RenderEmail returns the subject and a complete HTML document for m.
func RenderEmail(m Message) (string, string, error) {
	var buf bytes.Buffer
	data := struct {
		Message
		Color string
	}{m, fmt.Sprintf("#%06X", ToneColor(m.Tone))}
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to render email: %w", err)
	}
	return m.Title, buf.String(), nil
}
