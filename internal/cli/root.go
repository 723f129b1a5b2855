package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/beastmode/internal/backup"
	"github.com/julianstephens/beastmode/internal/config"
	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/dashboard"
	apperrors "github.com/julianstephens/beastmode/internal/errors"
	"github.com/julianstephens/beastmode/internal/keyring"
	"github.com/julianstephens/beastmode/internal/logger"
	"github.com/julianstephens/beastmode/internal/models"
	"github.com/julianstephens/beastmode/internal/notify"
	"github.com/julianstephens/beastmode/internal/storage"
	"github.com/julianstephens/beastmode/internal/storage/postgres"
	"github.com/julianstephens/beastmode/internal/storage/sqlite"
)

// KeyringDB is the --db value that reads the PostgreSQL connection string
// from the OS keyring.
const KeyringDB = "keyring"

type Context struct {
	Store   storage.Provider
	Config  *config.Config
	Metrics *notify.Metrics

	// Out receives command output; stdout when nil.
	Out io.Writer
	// In answers confirmation prompts; stdin when nil.
	In io.Reader
	// Now is the clock; time.Now when nil.
	Now func() time.Time
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Confirm asks a yes/no question and defaults to no.
func (c *Context) Confirm(question string) (bool, error) {
	c.Printf("%s [y/N]: ", question)
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

func (c *Context) Time() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Context) Cfg() *config.Config {
	if c.Config == nil {
		return config.Default()
	}
	return c.Config
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors.
// Only SQLite databases are backed up.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// LoadDashboard builds a dashboard over the store and loads today.
func (c *Context) LoadDashboard(ctx context.Context) (*dashboard.Dashboard, error) {
	cfg := c.Cfg()
	dash := dashboard.New(c.Store, dashboard.WithDemo(cfg.Demo.Seed, cfg.Demo.Days))
	if err := dash.Load(ctx, c.Time()); err != nil {
		return nil, err
	}
	return dash, nil
}

// Dispatcher builds a dispatcher for settings, pulling empty channel secrets
// from the OS keyring first.
func (c *Context) Dispatcher(s models.Settings) *notify.Dispatcher {
	if err := keyring.ResolveSecrets(&s); err != nil {
		logger.Warn("Failed to resolve secrets from keyring", "error", err)
	}
	cfg := c.Cfg()
	ep := notify.Endpoints{TelegramAPI: cfg.Notify.TelegramAPI, TwilioAPI: cfg.Notify.TwilioAPI}
	return notify.DispatcherFromSettings(s, cfg.Notify.Timeout, ep, c.Metrics)
}

// NewStore picks a backend for the --db value: a PostgreSQL URL, the keyring
// sentinel, or a SQLite file path.
func NewStore(db string) (storage.Provider, error) {
	if db == KeyringDB {
		connStr, err := keyring.GetConnectionString()
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, apperrors.WithHint(err, "store one with `beastmode secret set-db <connection-string>`")
		}
		if err != nil {
			return nil, err
		}
		return postgres.New(connStr), nil
	}

	if storage.IsPostgres(db) {
		if err := postgres.ValidateConnString(db); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, apperrors.WithHint(err,
					"keep the password in ~/.pgpass or PGPASSWORD, or store the full string with `beastmode secret set-db` and pass --db keyring")
			}
			return nil, err
		}
		return postgres.New(db), nil
	}

	path, err := ExpandPath(db)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path), nil
}

// ExpandPath resolves a leading ~ to the home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Today is the current date in the configured timezone.
func (c *Context) Today() string {
	loc := time.Local
	if c.Store != nil {
		if s, err := c.Store.GetSettings(context.Background()); err == nil {
			loc = s.Location()
		}
	}
	return c.Time().In(loc).Format(constants.DateFormat)
}

// ParseDate validates a YYYY-MM-DD flag value. Empty means today; future
// dates are rejected.
func (c *Context) ParseDate(s string) (string, error) {
	today := c.Today()
	if s == "" {
		return today, nil
	}
	if _, err := time.Parse(constants.DateFormat, s); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	if s > today {
		return "", fmt.Errorf("cannot log %s: date is in the future", s)
	}
	return s, nil
}
