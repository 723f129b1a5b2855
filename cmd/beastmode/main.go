package main

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/julianstephens/beastmode/internal/cli"
	"github.com/julianstephens/beastmode/internal/cli/backups"
	"github.com/julianstephens/beastmode/internal/cli/entries"
	"github.com/julianstephens/beastmode/internal/cli/goals"
	"github.com/julianstephens/beastmode/internal/cli/settings"
	"github.com/julianstephens/beastmode/internal/cli/system"
	"github.com/julianstephens/beastmode/internal/config"
	"github.com/julianstephens/beastmode/internal/constants"
	apperrors "github.com/julianstephens/beastmode/internal/errors"
	"github.com/julianstephens/beastmode/internal/logger"
	"github.com/julianstephens/beastmode/internal/notify"
	"github.com/julianstephens/beastmode/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `name:"db" help:"SQLite path, PostgreSQL connection string without credentials, or 'keyring'." env:"BEASTMODE_DB" default:"${default_db}"`
	Config  string `help:"YAML config file path." type:"path" env:"BEASTMODE_CONFIG"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize beastmode storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Serve   system.ServeCmd   `cmd:"" help:"Serve the dashboard over HTTP."`

	Today   entries.TodayCmd   `cmd:"" help:"Show today's sessions and progress."`
	Mark    entries.MarkCmd    `cmd:"" help:"Mark a session as completed."`
	Log     entries.LogCmd     `cmd:"" help:"Record ratings, notes and counters for a day."`
	History entries.HistoryCmd `cmd:"" help:"Show recent days."`
	Stats   entries.StatsCmd   `cmd:"" help:"Show streaks, averages and totals."`

	Calendar system.CalendarCmd `cmd:"" help:"Export session reminders and goal deadlines as iCalendar."`
	Demo     system.DemoCmd     `cmd:"" help:"Preview generated demo data."`
	Notify   system.NotifyCmd   `cmd:"" help:"Compose and send a notification to every enabled channel."`

	Goal struct {
		Add  goals.GoalAddCmd  `cmd:"" help:"Add a goal."`
		List goals.GoalListCmd `cmd:"" help:"List goals." default:"1"`
		Set  goals.GoalSetCmd  `cmd:"" help:"Update a goal."`
	} `cmd:"" help:"Manage goals."`
	Achievement struct {
		Add  goals.AchievementAddCmd  `cmd:"" help:"Define an achievement."`
		List goals.AchievementListCmd `cmd:"" help:"List achievements and whether they are unlocked." default:"1"`
	} `cmd:"" help:"Manage achievements."`
	Settings struct {
		Show settings.SettingsShowCmd `cmd:"" help:"Show settings." default:"1"`
		Set  settings.SettingsSetCmd  `cmd:"" help:"Change a setting."`
	} `cmd:"" help:"Manage profile, reminder and notification settings."`
	Secret struct {
		Set      system.SecretSetCmd      `cmd:"" help:"Store a notification credential in the OS keyring."`
		Delete   system.SecretDeleteCmd   `cmd:"" help:"Remove a notification credential from the OS keyring."`
		SetDB    system.SecretSetDBCmd    `cmd:"" name:"set-db" help:"Store the PostgreSQL connection string in the OS keyring."`
		DeleteDB system.SecretDeleteDBCmd `cmd:"" name:"delete-db" help:"Remove the PostgreSQL connection string from the OS keyring."`
		Status   system.SecretStatusCmd   `cmd:"" help:"Show which secrets are stored."`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

// Commands that never touch the database.
var storeless = map[string]bool{"secret": true, "demo": true}

// Commands that open the database themselves: init creates it, migrate
// upgrades a schema Load would reject, doctor reports Load failures.
var selfLoading = map[string]bool{"init": true, "migrate": true, "doctor": true}

// Commands that render the dashboard and fall back to demo data when storage fails.
var dashboardCommands = map[string]bool{"tui": true, "serve": true, "today": true, "stats": true, "calendar": true}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily accountability tracker: four sessions a day, streaks and nudges."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":    constants.Version,
			"default_db": constants.DefaultConfigPath,
			"demo_seed":  strconv.FormatInt(constants.DefaultDemoSeed, 10),
			"demo_days":  strconv.Itoa(constants.DefaultDemoDays),
		},
	)

	cfgPath := CLI.Config
	if cfgPath == "" {
		var err error
		if cfgPath, err = config.DefaultPath(); err != nil {
			apperrors.Fatal(err)
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		apperrors.Fatal(err)
	}
	if err := logger.Init(logger.Config{
		Debug:      CLI.Debug,
		Dir:        filepath.Dir(cfgPath),
		Level:      cfg.Log.Level,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}

	command := strings.Fields(ctx.Command())[0]
	var store storage.Provider
	if !storeless[command] {
		if store, err = cli.NewStore(CLI.DB); err != nil {
			apperrors.Fatal(err)
		}
		if !selfLoading[command] {
			if err := store.Load(); err != nil {
				if !dashboardCommands[command] {
					apperrors.Fatal(err)
				}
				logger.Warn("Failed to load storage", "command", command, "error", err)
				store = storage.Unavailable(err)
			}
		}
	}

	appCtx := &cli.Context{
		Store:   store,
		Config:  cfg,
		Metrics: notify.NewMetrics(prometheus.DefaultRegisterer),
	}

	err = ctx.Run(appCtx)
	if store != nil {
		store.Close()
	}
	apperrors.Fatal(err)
}
