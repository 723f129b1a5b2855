package constants

const (
	// Profile settings
	SettingUserName   = "user_name"
	SettingFamilyGoal = "family_goal"
	SettingTargetDate = "target_date"
	SettingTimezone   = "timezone"

	// Reminder times, one per session
	SettingMorningReminder = "reminder_morning"
	SettingMiddayReminder  = "reminder_midday"
	SettingEveningReminder = "reminder_evening"
	SettingBedtimeReminder = "reminder_bedtime"

	// Notification channels
	SettingNotificationsEnabled = "notifications_enabled"
	SettingDiscordEnabled       = "discord_enabled"
	SettingDiscordWebhookURL    = "discord_webhook_url"
	SettingTelegramEnabled      = "telegram_enabled"
	SettingTelegramBotToken     = "telegram_bot_token"
	SettingTelegramChatID       = "telegram_chat_id"
	SettingEmailEnabled         = "email_enabled"
	SettingEmailAddress         = "email_address"
	SettingEmailFrom            = "email_from"
	SettingEmailAPIKey          = "email_api_key"
	SettingEmailEndpoint        = "email_endpoint"
	SettingWhatsAppEnabled      = "whatsapp_enabled"
	SettingWhatsAppTo           = "whatsapp_to"
	SettingWhatsAppFrom         = "whatsapp_from"
	SettingTwilioAccountSID     = "twilio_account_sid"
	SettingTwilioAuthToken      = "twilio_auth_token"
	SettingPushEnabled          = "push_enabled"

	// Default Settings Values
	DefaultUserName             = "Champion"
	DefaultMorningReminder      = "07:00"
	DefaultMiddayReminder       = "12:30"
	DefaultEveningReminder      = "18:00"
	DefaultBedtimeReminder      = "22:00"
	DefaultNotificationsEnabled = true
	DefaultTimezone             = "Local"
)

// SecretSettings are the setting keys that may be resolved from the OS keyring
// when their stored value is empty.
var SecretSettings = []string{
	SettingDiscordWebhookURL,
	SettingTelegramBotToken,
	SettingEmailAPIKey,
	SettingTwilioAuthToken,
}
