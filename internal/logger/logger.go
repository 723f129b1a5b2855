// Package logger is the process-wide structured logger. Every helper is a
// no-op until Init or InitWriter runs, so packages can log unconditionally.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/beastmode/internal/constants"
)

var Logger *log.Logger

// Config describes where logs go and how the file rotates. Zero rotation
// values fall back to the package defaults.
type Config struct {
	// Debug lowers the level to debug, mirrors output to stderr and reports callers.
	Debug bool
	// Dir holds the logs/ directory, normally the config directory.
	Dir string
	// Level is debug, info, warn or error.
	Level string

	MaxSize    int
	MaxBackups int
	MaxAge     int
}

// File is the active log file under dir.
func File(dir string) string {
	return filepath.Join(dir, "logs", constants.AppName+".log")
}

// Init sets up the rotating file logger described by cfg.
func Init(cfg Config) error {
	path := File(cfg.Dir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	level, err := log.ParseLevel(orDefault(cfg.Level, constants.DefaultLogLevel))
	if err != nil {
		return err
	}

	rotating := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    positive(cfg.MaxSize, constants.DefaultLogMaxSize),
		MaxBackups: positive(cfg.MaxBackups, constants.DefaultLogMaxBackups),
		MaxAge:     positive(cfg.MaxAge, constants.DefaultLogMaxAge),
		Compress:   true,
	}

	var w io.Writer = rotating
	if cfg.Debug {
		level = log.DebugLevel
		w = io.MultiWriter(os.Stderr, rotating)
	}

	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

// InitWriter points the logger at w without rotation.
func InitWriter(w io.Writer, level log.Level) {
	Logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func positive(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs at fatal level and exits with status 1.
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}
