package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/models"
)

func TestConnectionStringRoundTrip(t *testing.T) {
	gokeyring.MockInit()

	conn := "postgres://beast@localhost:5432/beastmode?sslmode=disable"
	if err := SetConnectionString(conn); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != conn {
		t.Errorf("GetConnectionString() = %q, want %q", got, conn)
	}

	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete, error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want %v", err, ErrNotFound)
	}
}

func TestSetEmptyValue(t *testing.T) {
	gokeyring.MockInit()
	if err := SetConnectionString(""); err == nil {
		t.Error("expected error for empty connection string")
	}
	if err := SetSecret(constants.SettingEmailAPIKey, ""); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestSecrets(t *testing.T) {
	gokeyring.MockInit()

	if err := SetSecret(constants.SettingTelegramBotToken, "123:abc"); err != nil {
		t.Fatalf("SetSecret() failed: %v", err)
	}
	got, err := GetSecret(constants.SettingTelegramBotToken)
	if err != nil || got != "123:abc" {
		t.Errorf("GetSecret() = %q, %v", got, err)
	}
	if err := DeleteSecret(constants.SettingTelegramBotToken); err != nil {
		t.Fatalf("DeleteSecret() failed: %v", err)
	}

	for _, name := range []string{constants.SettingUserName, "bogus"} {
		if err := SetSecret(name, "x"); !errors.Is(err, ErrUnknownSecret) {
			t.Errorf("SetSecret(%q) error = %v, want ErrUnknownSecret", name, err)
		}
	}
}

func TestResolveSecrets(t *testing.T) {
	gokeyring.MockInit()

	if err := SetSecret(constants.SettingDiscordWebhookURL, "https://keyring.example/hook"); err != nil {
		t.Fatal(err)
	}
	if err := SetSecret(constants.SettingEmailAPIKey, "from-keyring"); err != nil {
		t.Fatal(err)
	}

	s := models.DefaultSettings()
	s.EmailAPIKey = "from-settings"
	if err := ResolveSecrets(&s); err != nil {
		t.Fatalf("ResolveSecrets() failed: %v", err)
	}
	if s.DiscordWebhookURL != "https://keyring.example/hook" {
		t.Errorf("expected webhook from keyring, got %q", s.DiscordWebhookURL)
	}
	if s.EmailAPIKey != "from-settings" {
		t.Errorf("stored value should win, got %q", s.EmailAPIKey)
	}
	if s.TwilioAuthToken != "" {
		t.Errorf("missing keyring entry should stay empty, got %q", s.TwilioAuthToken)
	}
}

func TestResolveSecretsUnavailable(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("dbus closed"))
	t.Cleanup(gokeyring.MockInit)

	s := models.DefaultSettings()
	if err := ResolveSecrets(&s); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("expected ErrKeyringUnavailable, got %v", err)
	}
	if IsAvailable() {
		t.Error("IsAvailable() should be false when the keyring errors")
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("IsAvailable() = false, want true in mock mode")
	}
}
