package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/beastmode/internal/cli"
	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/models"
	"github.com/julianstephens/beastmode/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	var out bytes.Buffer
	return &cli.Context{Store: store, Out: &out}, &out
}

func TestSettingsShow(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SettingsShowCmd{}).Run(ctx); err != nil {
		t.Fatalf("settings show failed: %v", err)
	}
	if !strings.Contains(out.String(), constants.DefaultMorningReminder) {
		t.Errorf("expected default reminder in output:\n%s", out.String())
	}
}

func TestSettingsShow_RedactsSecrets(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SettingsSetCmd{Key: constants.SettingTelegramBotToken, Value: "123:abc"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&SettingsShowCmd{JSON: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "123:abc") {
		t.Error("secret leaked into settings output")
	}
	var s models.Settings
	if err := json.Unmarshal(out.Bytes(), &s); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if s.TelegramBotToken != "********" {
		t.Errorf("expected masked token, got %q", s.TelegramBotToken)
	}
}

func TestSettingsSet(t *testing.T) {
	ctx, _ := setupTestDB(t)

	cases := []struct {
		key, value string
	}{
		{constants.SettingUserName, "Sam"},
		{constants.SettingMorningReminder, "06:15"},
		{constants.SettingTargetDate, "2025-09-01"},
		{constants.SettingDiscordEnabled, "1"},
	}
	for _, tc := range cases {
		if err := (&SettingsSetCmd{Key: tc.key, Value: tc.value}).Run(ctx); err != nil {
			t.Fatalf("set %s failed: %v", tc.key, err)
		}
	}

	s, err := ctx.Store.GetSettings(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s.UserName != "Sam" || s.MorningReminder != "06:15" || s.TargetDate != "2025-09-01" {
		t.Errorf("settings not saved: %+v", s)
	}
	if !s.DiscordEnabled {
		t.Error(`"1" should enable the discord channel`)
	}
	if s.MiddayReminder != constants.DefaultMiddayReminder {
		t.Errorf("unrelated settings changed: midday %q", s.MiddayReminder)
	}
}

func TestSettingsSet_Invalid(t *testing.T) {
	ctx, _ := setupTestDB(t)

	tests := []struct {
		name       string
		key, value string
	}{
		{"unknown key", "favourite_colour", "blue"},
		{"bad time", constants.SettingEveningReminder, "6pm"},
		{"bad date", constants.SettingTargetDate, "next year"},
		{"bad bool", constants.SettingPushEnabled, "sometimes"},
		{"bad timezone", constants.SettingTimezone, "Mars/Olympus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := (&SettingsSetCmd{Key: tt.key, Value: tt.value}).Run(ctx); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
