package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/beastmode/internal/cli"
	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/keyring"
	"github.com/julianstephens/beastmode/internal/storage"
	"github.com/julianstephens/beastmode/internal/storage/postgres"
)

// SecretSetCmd stores a notification credential in the OS keyring.
type SecretSetCmd struct {
	Name  string `arg:"" help:"Secret setting: discord_webhook_url, telegram_bot_token, email_api_key or twilio_auth_token."`
	Value string `arg:"" help:"Secret value."`
}

func (cmd *SecretSetCmd) Run(ctx *cli.Context) error {
	if err := keyring.SetSecret(cmd.Name, cmd.Value); err != nil {
		return err
	}
	ctx.Printf("✓ %s stored in OS keyring\n", cmd.Name)
	ctx.Println("  It is used whenever the matching setting is left empty.")
	return nil
}

type SecretDeleteCmd struct {
	Name string `arg:"" help:"Secret setting to remove."`
}

func (cmd *SecretDeleteCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteSecret(cmd.Name)
	if errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("no %s stored in keyring", cmd.Name)
	}
	if err != nil {
		return err
	}
	ctx.Printf("✓ %s deleted from OS keyring\n", cmd.Name)
	return nil
}

// SecretSetDBCmd stores the PostgreSQL connection string used by --db keyring.
type SecretSetDBCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring."`
}

func (cmd *SecretSetDBCmd) Run(ctx *cli.Context) error {
	conn := cmd.ConnectionString
	if !storage.IsPostgres(conn) && !strings.Contains(conn, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}
	if err := postgres.ValidateConnString(conn); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// The keyring is encrypted, so an embedded password is acceptable here.
		ctx.Println("⚠️  Connection string contains embedded credentials; storing it in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(conn); err != nil {
		return err
	}
	ctx.Println("✓ Connection string stored successfully in OS keyring")
	ctx.Printf("  Use it with: beastmode --db %s\n", cli.KeyringDB)
	return nil
}

type SecretDeleteDBCmd struct{}

func (cmd *SecretDeleteDBCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string found in keyring")
	}
	if err != nil {
		return err
	}
	ctx.Println("✓ Connection string deleted from OS keyring")
	return nil
}

// SecretStatusCmd reports which secrets are stored without printing them.
type SecretStatusCmd struct{}

func (cmd *SecretStatusCmd) Run(ctx *cli.Context) error {
	if !keyringAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.Println("✓ OS keyring is available")

	if conn, err := keyring.GetConnectionString(); err == nil {
		ctx.Printf("✓ %-20s %s\n", "connection string", maskPassword(conn))
	} else {
		ctx.Printf("ℹ %-20s not stored\n", "connection string")
	}
	for _, name := range constants.SecretSettings {
		if _, err := keyring.GetSecret(name); err == nil {
			ctx.Printf("✓ %-20s stored\n", name)
		} else {
			ctx.Printf("ℹ %-20s not stored\n", name)
		}
	}
	return nil
}

// maskPassword hides the password in URL or key=value connection strings.
func maskPassword(connStr string) string {
	if storage.IsPostgres(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return "postgres://****"
		}
		if _, ok := u.User.Password(); !ok {
			return connStr
		}
		// url.UserPassword would percent-encode the asterisks.
		userinfo := u.User.Username() + ":****@"
		u.User = nil
		return strings.Replace(u.String(), "://", "://"+userinfo, 1)
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		if key, _, ok := strings.Cut(part, "="); ok && strings.EqualFold(key, "password") {
			parts[i] = key + "=****"
		}
	}
	return strings.Join(parts, " ")
}
