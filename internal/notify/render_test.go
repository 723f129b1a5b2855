package notify

import (
	"strings"
	"testing"
	"time"
)

var sample = Message{
	Type:  TypeAccountabilityAlert,
	Tone:  string(SeverityFirm),
	Title: "3 days missed",
	Body:  "Goals <at> 40% & falling",
	Highlights: []Highlight{
		{Label: "Streak", Value: "0 days"},
	},
}

func TestRenderDiscord(t *testing.T) {
	now := time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC)
	p := RenderDiscord(sample, now)
	if len(p.Embeds) != 1 {
		t.Fatalf("expected one embed, got %d", len(p.Embeds))
	}
	e := p.Embeds[0]
	if e.Color != 0xF1C40F {
		t.Errorf("expected firm colour, got %#x", e.Color)
	}
	if e.Footer == nil || e.Footer.Text != "FIRM" {
		t.Errorf("unexpected footer: %+v", e.Footer)
	}
	if e.Timestamp != "2025-03-12T08:00:00Z" {
		t.Errorf("unexpected timestamp %s", e.Timestamp)
	}
	if len(e.Fields) != 1 || !e.Fields[0].Inline {
		t.Errorf("expected inline highlight field, got %+v", e.Fields)
	}
}

func TestRenderTelegramEscapes(t *testing.T) {
	out := RenderTelegram(sample)
	if !strings.HasPrefix(out, "<b>3 days missed</b>") {
		t.Errorf("expected bold title, got %q", out)
	}
	if !strings.Contains(out, "&lt;at&gt;") || !strings.Contains(out, "&amp;") {
		t.Errorf("body should be HTML escaped, got %q", out)
	}
}

func TestRenderEmail(t *testing.T) {
	subject, body, err := RenderEmail(sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subject != sample.Title {
		t.Errorf("expected subject %q, got %q", sample.Title, subject)
	}
	if !strings.HasPrefix(body, "<!DOCTYPE html>") || !strings.Contains(body, "</html>") {
		t.Errorf("expected full HTML document, got %q", body)
	}
	if strings.Contains(body, "<at>") {
		t.Errorf("body text should be escaped in email: %q", body)
	}
}

func TestRenderWhatsAppAndPush(t *testing.T) {
	if out := RenderWhatsApp(sample); !strings.HasPrefix(out, "*3 days missed*") {
		t.Errorf("expected bold markup, got %q", out)
	}
	if out := RenderPush(sample); out != "3 days missed: Goals <at> 40% & falling" {
		t.Errorf("unexpected push text %q", out)
	}
}

func TestToneColorUnknown(t *testing.T) {
	if got := ToneColor("mystery"); got != 0x95A5A6 {
		t.Errorf("expected grey fallback, got %#x", got)
	}
}
