package backups

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/beastmode/internal/cli"
	"github.com/julianstephens/beastmode/internal/storage/memory"
	"github.com/julianstephens/beastmode/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	var out bytes.Buffer
	return &cli.Context{Store: store, Out: &out}, dbPath, &out
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, dbPath, out := setupTestDB(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No backups found") {
		t.Errorf("expected empty list, got %q", out.String())
	}

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "1 total") || !strings.Contains(out.String(), filepath.Join(filepath.Dir(dbPath), "backups")) {
		t.Errorf("unexpected list output %q", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, dbPath, _ := setupTestDB(t)
	bg := context.Background()

	if _, err := ctx.Store.CreateEntry(bg, "2025-03-10"); err != nil {
		t.Fatal(err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Store.CreateEntry(bg, "2025-03-11"); err != nil {
		t.Fatal(err)
	}

	backups, err := backupNames(t, dbPath)
	if err != nil || len(backups) != 1 {
		t.Fatalf("expected one backup, got %v (%v)", backups, err)
	}

	ctx.In = strings.NewReader("n\n")
	if err := (&BackupRestoreCmd{BackupFile: backups[0]}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Store.GetEntry(bg, "2025-03-11"); err != nil {
		t.Fatal("declined restore must leave the database untouched")
	}

	if err := (&BackupRestoreCmd{BackupFile: backups[0], Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	restored := sqlite.NewStore(dbPath)
	if err := restored.Load(); err != nil {
		t.Fatal(err)
	}
	defer restored.Close()
	if _, err := restored.GetEntry(bg, "2025-03-10"); err != nil {
		t.Errorf("expected backed-up entry: %v", err)
	}
	if _, err := restored.GetEntry(bg, "2025-03-11"); err == nil {
		t.Error("entry created after the backup should be gone")
	}
}

func TestBackupRestore_NotFound(t *testing.T) {
	ctx, _, _ := setupTestDB(t)
	if err := (&BackupRestoreCmd{BackupFile: "beastmode-nope.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error for missing backup")
	}
}

func TestBackups_RequireSQLite(t *testing.T) {
	ctx := &cli.Context{Store: memory.New(), Out: &bytes.Buffer{}}
	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("expected error for non-SQLite store")
	}
}

func backupNames(t *testing.T, dbPath string) ([]string, error) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(filepath.Dir(dbPath), "backups", "beastmode-*.db"))
	for i, m := range matches {
		matches[i] = filepath.Base(m)
	}
	return matches, err
}
