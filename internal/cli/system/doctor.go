package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/beastmode/internal/backup"
	"github.com/julianstephens/beastmode/internal/cli"
	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/keyring"
	"github.com/julianstephens/beastmode/internal/models"
	"github.com/julianstephens/beastmode/internal/notify"
	"github.com/julianstephens/beastmode/internal/progress"
	"github.com/julianstephens/beastmode/internal/storage/sqlite"
)

// Swapped in tests.
var keyringAvailable = keyring.IsAvailable

type DoctorCmd struct{}

type check struct {
	name string
	// needsDB checks are skipped when the database cannot be reached.
	needsDB bool
	// warnOnly failures do not fail the command.
	warnOnly bool
	run      func(*cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Settings", needsDB: true, run: checkSettings},
	{name: "Entry integrity", needsDB: true, run: checkEntries},
	{name: "Achievements", needsDB: true, run: checkAchievements},
	{name: "Notification channels", needsDB: true, warnOnly: true, run: checkChannels},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "OS keyring", warnOnly: true, run: checkKeyring},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	failed := 0
	dbReachable := true
	if err := ctx.Store.Load(); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n   Error: %v\n", err)
		dbReachable = false
		failed++
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			failed++
		}
	}

	ctx.Println()
	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	ctx.Println("All checks passed.")
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}
	current, latest, err := m.SchemaVersion(context.Background())
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("schema version %d is behind %d, run 'beastmode migrate'", current, latest)
	}
	if current > latest {
		return fmt.Errorf("schema version %d is newer than this build supports (%d)", current, latest)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	s, err := ctx.Store.GetSettings(context.Background())
	if err != nil {
		return err
	}
	var errs []error
	for key, value := range models.SettingsToMap(s) {
		if value == "" {
			continue
		}
		if err := models.ValidateSetting(key, value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// checkEntries verifies stored derived fields match the session flags.
func checkEntries(ctx *cli.Context) error {
	entries, err := ctx.Store.ListRecentEntries(context.Background(), constants.MaxHistoryLimit)
	if err != nil {
		return err
	}
	var errs []error
	for _, e := range entries {
		if _, err := e.Day(); err != nil {
			errs = append(errs, fmt.Errorf("entry %s has invalid date %q", e.ID, e.Date))
			continue
		}
		if want := progress.CompletionPercentage(e); e.CompletionPercentage != want {
			errs = append(errs, fmt.Errorf("entry %s: completion %d%%, expected %d%%", e.Date, e.CompletionPercentage, want))
		}
		if want := progress.Status(e); e.DailyStatus != want {
			errs = append(errs, fmt.Errorf("entry %s: status %s, expected %s", e.Date, e.DailyStatus, want))
		}
	}
	return errors.Join(errs...)
}

func checkAchievements(ctx *cli.Context) error {
	_, err := ctx.Store.ListAchievements(context.Background())
	return err
}

// checkChannels reports enabled channels that are missing credentials.
func checkChannels(ctx *cli.Context) error {
	s, err := ctx.Store.GetSettings(context.Background())
	if err != nil {
		return err
	}
	if !s.NotificationsEnabled {
		return nil
	}
	_ = keyring.ResolveSecrets(&s)

	var missing []error
	need := func(enabled bool, channel, field, value string) {
		if enabled && value == "" {
			missing = append(missing, fmt.Errorf("%s is enabled but %s is not set", channel, field))
		}
	}
	need(s.DiscordEnabled, "discord", constants.SettingDiscordWebhookURL, s.DiscordWebhookURL)
	need(s.TelegramEnabled, "telegram", constants.SettingTelegramBotToken, s.TelegramBotToken)
	need(s.TelegramEnabled, "telegram", constants.SettingTelegramChatID, s.TelegramChatID)
	need(s.EmailEnabled, "email", constants.SettingEmailAPIKey, s.EmailAPIKey)
	need(s.EmailEnabled, "email", constants.SettingEmailAddress, s.EmailAddress)
	need(s.WhatsAppEnabled, "whatsapp", constants.SettingTwilioAccountSID, s.TwilioAccountSID)
	need(s.WhatsAppEnabled, "whatsapp", constants.SettingTwilioAuthToken, s.TwilioAuthToken)
	need(s.WhatsAppEnabled, "whatsapp", constants.SettingWhatsAppTo, s.WhatsAppTo)
	if s.PushEnabled {
		if _, err := notify.TrayAppConfigDir(); err != nil {
			missing = append(missing, fmt.Errorf("push is enabled but the tray app config dir is unavailable: %v", err))
		}
	}
	return errors.Join(missing...)
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s, run 'beastmode backup create'", mgr.Dir())
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyringAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Time()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if _, err := time.LoadLocation("America/New_York"); err != nil {
		return fmt.Errorf("timezone database unavailable: %w", err)
	}
	return nil
}
