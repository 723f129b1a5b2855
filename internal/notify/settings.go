package notify

import (
	"net/http"
	"time"

	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/models"
)

// Endpoints overrides the public API hosts, mostly for tests.
type Endpoints struct {
	TelegramAPI string
	TwilioAPI   string
}

// ChannelsFromSettings builds a channel for every enabled integration. Nothing
// is returned when notifications are globally disabled.
func ChannelsFromSettings(s models.Settings, client *http.Client, ep Endpoints) []Channel {
	if !s.NotificationsEnabled {
		return nil
	}
	if ep.TelegramAPI == "" {
		ep.TelegramAPI = constants.DefaultTelegramAPI
	}
	if ep.TwilioAPI == "" {
		ep.TwilioAPI = constants.DefaultTwilioAPI
	}

	var channels []Channel
	if s.DiscordEnabled {
		channels = append(channels, &DiscordChannel{WebhookURL: s.DiscordWebhookURL, Client: client})
	}
	if s.TelegramEnabled {
		channels = append(channels, &TelegramChannel{
			BaseURL:  ep.TelegramAPI,
			BotToken: s.TelegramBotToken,
			ChatID:   s.TelegramChatID,
			Client:   client,
		})
	}
	if s.EmailEnabled {
		endpoint := s.EmailEndpoint
		if endpoint == "" {
			endpoint = constants.DefaultEmailAPI
		}
		channels = append(channels, &EmailChannel{
			Endpoint: endpoint,
			APIKey:   s.EmailAPIKey,
			From:     s.EmailFrom,
			To:       s.EmailAddress,
			Client:   client,
		})
	}
	if s.WhatsAppEnabled {
		channels = append(channels, &WhatsAppChannel{
			BaseURL:    ep.TwilioAPI,
			AccountSID: s.TwilioAccountSID,
			AuthToken:  s.TwilioAuthToken,
			From:       s.WhatsAppFrom,
			To:         s.WhatsAppTo,
			Client:     client,
		})
	}
	if s.PushEnabled {
		channels = append(channels, &PushChannel{Client: client})
	}
	return channels
}

// DispatcherFromSettings wires the enabled channels to one HTTP client with
// the given per-request timeout.
func DispatcherFromSettings(s models.Settings, timeout time.Duration, ep Endpoints, m *Metrics) *Dispatcher {
	client := &http.Client{Timeout: timeout}
	return NewDispatcher(ChannelsFromSettings(s, client, ep), m)
}
