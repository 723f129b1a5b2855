package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/models"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// PushChannel delivers desktop notifications through the beastmode tray app,
// which listens on a loopback port advertised in its lockfile.
type PushChannel struct {
	Client *http.Client
}

type TrayPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func (c *PushChannel) Name() string { return "push" }

func (c *PushChannel) Send(ctx context.Context, p models.UserProgress, t MessageType, achievement string) error {
	trayDir, err := TrayAppConfigDir()
	if err != nil {
		return err
	}

	port, secret, err := findTrayProcess(filepath.Join(trayDir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	r, err := jsonRequest("http://127.0.0.1:"+port, TrayPayload{
		Text:       RenderPush(Compose(p, t, achievement)),
		DurationMs: constants.NotificationDurationMs,
	})
	if err != nil {
		return err
	}
	r.header.Set("X-Beastmode-Secret", secret)
	return do(ctx, c.Client, r)
}

// TrayAppConfigDir returns the directory holding the tray app lockfile. The
// tray's settings.json may point it elsewhere via lockfile_dir.
func TrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err == nil {
		if dir := store.Settings.LockfileDir; dir != nil && *dir != "" {
			return *dir, nil
		}
	}
	return trayConfigDir, nil
}

// findTrayProcess reads "port|pid|secret" from the lockfile and checks the pid
// belongs to a running tray app.
func findTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("beastmode-tray is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := strings.TrimSpace(parts[0])
	if port == "" {
		return "", "", errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New("beastmode-tray process not running")
	}
	if !strings.HasPrefix(process.Executable(), "beastmode-tray") {
		return "", "", fmt.Errorf("process with PID %d is not beastmode-tray (is %s)", pid, process.Executable())
	}

	return port, secret, nil
}
