package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/julianstephens/beastmode/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Unknown keys are ignored.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingUserName:
			settings.UserName = value
		case constants.SettingFamilyGoal:
			settings.FamilyGoal = value
		case constants.SettingTargetDate:
			settings.TargetDate = value
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingMorningReminder:
			settings.MorningReminder = value
		case constants.SettingMiddayReminder:
			settings.MiddayReminder = value
		case constants.SettingEveningReminder:
			settings.EveningReminder = value
		case constants.SettingBedtimeReminder:
			settings.BedtimeReminder = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingDiscordEnabled:
			settings.DiscordEnabled = value == "true"
		case constants.SettingDiscordWebhookURL:
			settings.DiscordWebhookURL = value
		case constants.SettingTelegramEnabled:
			settings.TelegramEnabled = value == "true"
		case constants.SettingTelegramBotToken:
			settings.TelegramBotToken = value
		case constants.SettingTelegramChatID:
			settings.TelegramChatID = value
		case constants.SettingEmailEnabled:
			settings.EmailEnabled = value == "true"
		case constants.SettingEmailAddress:
			settings.EmailAddress = value
		case constants.SettingEmailFrom:
			settings.EmailFrom = value
		case constants.SettingEmailAPIKey:
			settings.EmailAPIKey = value
		case constants.SettingEmailEndpoint:
			settings.EmailEndpoint = value
		case constants.SettingWhatsAppEnabled:
			settings.WhatsAppEnabled = value == "true"
		case constants.SettingWhatsAppTo:
			settings.WhatsAppTo = value
		case constants.SettingWhatsAppFrom:
			settings.WhatsAppFrom = value
		case constants.SettingTwilioAccountSID:
			settings.TwilioAccountSID = value
		case constants.SettingTwilioAuthToken:
			settings.TwilioAuthToken = value
		case constants.SettingPushEnabled:
			settings.PushEnabled = value == "true"
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingUserName:             settings.UserName,
		constants.SettingFamilyGoal:           settings.FamilyGoal,
		constants.SettingTargetDate:           settings.TargetDate,
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingMorningReminder:      settings.MorningReminder,
		constants.SettingMiddayReminder:       settings.MiddayReminder,
		constants.SettingEveningReminder:      settings.EveningReminder,
		constants.SettingBedtimeReminder:      settings.BedtimeReminder,
		constants.SettingNotificationsEnabled: strconv.FormatBool(settings.NotificationsEnabled),
		constants.SettingDiscordEnabled:       strconv.FormatBool(settings.DiscordEnabled),
		constants.SettingDiscordWebhookURL:    settings.DiscordWebhookURL,
		constants.SettingTelegramEnabled:      strconv.FormatBool(settings.TelegramEnabled),
		constants.SettingTelegramBotToken:     settings.TelegramBotToken,
		constants.SettingTelegramChatID:       settings.TelegramChatID,
		constants.SettingEmailEnabled:         strconv.FormatBool(settings.EmailEnabled),
		constants.SettingEmailAddress:         settings.EmailAddress,
		constants.SettingEmailFrom:            settings.EmailFrom,
		constants.SettingEmailAPIKey:          settings.EmailAPIKey,
		constants.SettingEmailEndpoint:        settings.EmailEndpoint,
		constants.SettingWhatsAppEnabled:      strconv.FormatBool(settings.WhatsAppEnabled),
		constants.SettingWhatsAppTo:           settings.WhatsAppTo,
		constants.SettingWhatsAppFrom:         settings.WhatsAppFrom,
		constants.SettingTwilioAccountSID:     settings.TwilioAccountSID,
		constants.SettingTwilioAuthToken:      settings.TwilioAuthToken,
		constants.SettingPushEnabled:          strconv.FormatBool(settings.PushEnabled),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.UserName == "" {
		settings.UserName = constants.DefaultUserName
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.MorningReminder == "" {
		settings.MorningReminder = constants.DefaultMorningReminder
	}
	if settings.MiddayReminder == "" {
		settings.MiddayReminder = constants.DefaultMiddayReminder
	}
	if settings.EveningReminder == "" {
		settings.EveningReminder = constants.DefaultEveningReminder
	}
	if settings.BedtimeReminder == "" {
		settings.BedtimeReminder = constants.DefaultBedtimeReminder
	}
	if settings.EmailEndpoint == "" {
		settings.EmailEndpoint = constants.DefaultEmailAPI
	}
}

// DefaultSettings returns a fresh settings document with defaults applied.
func DefaultSettings() Settings {
	s := Settings{NotificationsEnabled: constants.DefaultNotificationsEnabled}
	ApplyDefaultSettings(&s)
	return s
}

// ValidateSetting checks a single key/value pair before it is stored.
func ValidateSetting(key, value string) error {
	switch key {
	case constants.SettingTargetDate:
		if value == "" {
			return nil
		}
		if _, err := time.Parse(constants.DateFormat, value); err != nil {
			return fmt.Errorf("invalid date format for %s (expected YYYY-MM-DD): %w", key, err)
		}
	case constants.SettingMorningReminder, constants.SettingMiddayReminder,
		constants.SettingEveningReminder, constants.SettingBedtimeReminder:
		if _, err := time.Parse(constants.TimeFormat, value); err != nil {
			return fmt.Errorf("invalid time format for %s (expected HH:MM): %w", key, err)
		}
	case constants.SettingTimezone:
		if value != "Local" {
			if _, err := time.LoadLocation(value); err != nil {
				return fmt.Errorf("invalid timezone %q: %w", value, err)
			}
		}
	case constants.SettingNotificationsEnabled, constants.SettingDiscordEnabled,
		constants.SettingTelegramEnabled, constants.SettingEmailEnabled,
		constants.SettingWhatsAppEnabled, constants.SettingPushEnabled:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("invalid boolean for %s: %q", key, value)
		}
	default:
		if _, ok := SettingsToMap(Settings{})[key]; !ok {
			return fmt.Errorf("unknown setting: %s", key)
		}
	}
	return nil
}

// Location resolves the configured timezone, falling back to the system zone.
func (s Settings) Location() *time.Location {
	if s.Timezone == "" || s.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
