package constants

import "time"

const (
	AppName            = "beastmode"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/beastmode/beastmode.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "beastmode-"
	BackupFileSuffix = ".db"

	// Tray notifier constants
	NotifierLockfileName   = "beastmode-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.beastmode"

	// Notification transport
	DefaultNotifyTimeout  = 10 * time.Second
	DefaultNotifyRatePerM = 6
	DefaultTelegramAPI    = "https://api.telegram.org"
	DefaultEmailAPI       = "https://api.resend.com/emails"
	DefaultTwilioAPI      = "https://api.twilio.com"

	// Demo mode
	DefaultDemoSeed = 42
	DefaultDemoDays = 90

	// HTTP server
	DefaultServerHost = "localhost"
	DefaultServerPort = 8420

	// Log rotation
	DefaultLogLevel      = "warn"
	DefaultLogMaxSize    = 10 // MB
	DefaultLogMaxBackups = 3
	DefaultLogMaxAge     = 28 // days
)
