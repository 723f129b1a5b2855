package models

// Settings is the per-user key/value settings document.
type Settings struct {
	UserName   string `json:"user_name"`
	FamilyGoal string `json:"family_goal"`
	TargetDate string `json:"target_date"` // YYYY-MM-DD countdown target
	Timezone   string `json:"timezone"`    // IANA timezone name or "Local"

	MorningReminder string `json:"reminder_morning"` // HH:MM
	MiddayReminder  string `json:"reminder_midday"`
	EveningReminder string `json:"reminder_evening"`
	BedtimeReminder string `json:"reminder_bedtime"`

	NotificationsEnabled bool `json:"notifications_enabled"`

	DiscordEnabled    bool   `json:"discord_enabled"`
	DiscordWebhookURL string `json:"discord_webhook_url,omitempty"`

	TelegramEnabled  bool   `json:"telegram_enabled"`
	TelegramBotToken string `json:"telegram_bot_token,omitempty"`
	TelegramChatID   string `json:"telegram_chat_id,omitempty"`

	EmailEnabled  bool   `json:"email_enabled"`
	EmailAddress  string `json:"email_address,omitempty"`
	EmailFrom     string `json:"email_from,omitempty"`
	EmailAPIKey   string `json:"email_api_key,omitempty"`
	EmailEndpoint string `json:"email_endpoint,omitempty"`

	WhatsAppEnabled  bool   `json:"whatsapp_enabled"`
	WhatsAppTo       string `json:"whatsapp_to,omitempty"`
	WhatsAppFrom     string `json:"whatsapp_from,omitempty"`
	TwilioAccountSID string `json:"twilio_account_sid,omitempty"`
	TwilioAuthToken  string `json:"twilio_auth_token,omitempty"`

	PushEnabled bool `json:"push_enabled"`
}

// ReminderFor returns the configured reminder time for a session.
func (s Settings) ReminderFor(session Session) string {
	switch session {
	case SessionMorning:
		return s.MorningReminder
	case SessionMidday:
		return s.MiddayReminder
	case SessionEvening:
		return s.EveningReminder
	case SessionBedtime:
		return s.BedtimeReminder
	}
	return ""
}

// Redacted returns a copy with credentials masked, for display.
func (s Settings) Redacted() Settings {
	mask := func(v string) string {
		if v == "" {
			return ""
		}
		return "********"
	}
	s.DiscordWebhookURL = mask(s.DiscordWebhookURL)
	s.TelegramBotToken = mask(s.TelegramBotToken)
	s.EmailAPIKey = mask(s.EmailAPIKey)
	s.TwilioAuthToken = mask(s.TwilioAuthToken)
	return s
}
