package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/julianstephens/beastmode/internal/cli"
	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/keyring"
	"github.com/julianstephens/beastmode/internal/models"
)

type SettingsShowCmd struct {
	JSON bool `help:"Print settings as JSON."`
}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	settings = settings.Redacted()

	if c.JSON {
		data, err := json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	ctx.Println("Profile:")
	ctx.Printf("  Name:        %s\n", settings.UserName)
	ctx.Printf("  Family goal: %s\n", settings.FamilyGoal)
	ctx.Printf("  Target date: %s\n", settings.TargetDate)
	ctx.Printf("  Timezone:    %s\n", settings.Timezone)

	ctx.Println("\nReminders:")
	for _, s := range models.Sessions {
		ctx.Printf("  %-8s %s\n", s, settings.ReminderFor(s))
	}

	ctx.Println("\nNotifications:")
	ctx.Printf("  Enabled:  %v\n", settings.NotificationsEnabled)
	ctx.Printf("  Discord:  %v\n", settings.DiscordEnabled)
	ctx.Printf("  Telegram: %v\n", settings.TelegramEnabled)
	ctx.Printf("  Email:    %v\n", settings.EmailEnabled)
	ctx.Printf("  WhatsApp: %v\n", settings.WhatsAppEnabled)
	ctx.Printf("  Push:     %v\n", settings.PushEnabled)
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting key, e.g. user_name or reminder_morning."`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	if err := models.ValidateSetting(c.Key, c.Value); err != nil {
		return err
	}
	value := c.Value
	if b, err := strconv.ParseBool(value); err == nil && isBoolSetting(c.Key) {
		value = strconv.FormatBool(b)
	}

	bg := context.Background()
	settings, err := ctx.Store.GetSettings(bg)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	m := models.SettingsToMap(settings)
	m[c.Key] = value
	updated, err := models.MapToSettings(m)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(bg, updated); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.PerformAutomaticBackup()

	if keyring.IsSecret(c.Key) {
		ctx.Printf("✓ %s updated\n", c.Key)
		ctx.Println("  Consider 'beastmode secret set " + c.Key + "' to keep it out of the database.")
		return nil
	}
	ctx.Printf("✓ %s = %s\n", c.Key, value)
	return nil
}

func isBoolSetting(key string) bool {
	return slices.Contains([]string{
		constants.SettingNotificationsEnabled,
		constants.SettingDiscordEnabled,
		constants.SettingTelegramEnabled,
		constants.SettingEmailEnabled,
		constants.SettingWhatsAppEnabled,
		constants.SettingPushEnabled,
	}, key)
}
