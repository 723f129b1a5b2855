// Package keyring keeps credentials out of the database. It stores the
// PostgreSQL connection string and notification channel secrets in the OS
// keyring under the application service name.
package keyring

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/models"
)

var (
	// ErrNotFound is returned when nothing is stored under the requested name.
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be reached.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	// ErrUnknownSecret is returned for names that are not secret settings.
	ErrUnknownSecret = errors.New("not a secret setting")
)

func get(user string) (string, error) {
	v, err := keyring.Get(constants.AppName, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

func set(user, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", user)
	}
	if err := keyring.Set(constants.AppName, user, value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", user, err)
	}
	return nil
}

func del(user string) error {
	err := keyring.Delete(constants.AppName, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s from keyring: %w", user, err)
	}
	return nil
}

func GetConnectionString() (string, error) {
	return get(constants.DefaultKeyringUser)
}

func SetConnectionString(connStr string) error {
	return set(constants.DefaultKeyringUser, connStr)
}

func DeleteConnectionString() error {
	return del(constants.DefaultKeyringUser)
}

// IsSecret reports whether name is a setting that may live in the keyring.
func IsSecret(name string) bool {
	return slices.Contains(constants.SecretSettings, name)
}

func GetSecret(name string) (string, error) {
	if !IsSecret(name) {
		return "", fmt.Errorf("%w: %s", ErrUnknownSecret, name)
	}
	return get(name)
}

func SetSecret(name, value string) error {
	if !IsSecret(name) {
		return fmt.Errorf("%w: %s", ErrUnknownSecret, name)
	}
	return set(name, value)
}

func DeleteSecret(name string) error {
	if !IsSecret(name) {
		return fmt.Errorf("%w: %s", ErrUnknownSecret, name)
	}
	return del(name)
}

// ResolveSecrets fills empty credential fields of s from the keyring. Values
// already present in the settings win. Missing keyring entries are skipped;
// the first other keyring failure is returned after all fields are tried.
func ResolveSecrets(s *models.Settings) error {
	fields := map[string]*string{
		constants.SettingDiscordWebhookURL: &s.DiscordWebhookURL,
		constants.SettingTelegramBotToken:  &s.TelegramBotToken,
		constants.SettingEmailAPIKey:       &s.EmailAPIKey,
		constants.SettingTwilioAuthToken:   &s.TwilioAuthToken,
	}
	var firstErr error
	for _, name := range constants.SecretSettings {
		dst := fields[name]
		if dst == nil || *dst != "" {
			continue
		}
		v, err := get(name)
		switch {
		case err == nil:
			*dst = v
		case errors.Is(err, ErrNotFound):
		default:
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// IsAvailable is a best-effort probe: a read that fails with anything other
// than "not found" means the keyring cannot be used.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
