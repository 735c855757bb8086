package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kamal-hamza/vsx-cli/internal/core/domain"
)

func tempLedger(t *testing.T) (*FileLedgerRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "downloads.json")
	return NewFileLedgerRepository(path), path
}

func testRecord(id string) domain.DownloadRecord {
	asset, _ := domain.Synthesize(id, "", "")
	return domain.NewDownloadRecord(id, asset, "downloads/"+asset.FileName, "")
}

func TestLedgerUpsertCreatesFile(t *testing.T) {
	repo, path := tempLedger(t)
	ctx := context.Background()

	if err := repo.Upsert(ctx, testRecord("golang.go")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("ledger file not created: %v", err)
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != "golang.go" {
		t.Errorf("records = %+v, want one golang.go entry", records)
	}
}

func TestLedgerUpsertReplacesSameID(t *testing.T) {
	repo, _ := tempLedger(t)
	ctx := context.Background()

	first := testRecord("golang.go")
	first.Version = "1.0.0"
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}

	second := testRecord("golang.go")
	second.Version = "2.0.0"
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("records len = %d, want 1 after duplicate upsert", len(records))
	}
	if records[0].Version != "2.0.0" {
		t.Errorf("Version = %q, want the second record's fields", records[0].Version)
	}
}

func TestLedgerUpsertKeepsOtherRecords(t *testing.T) {
	repo, _ := tempLedger(t)
	ctx := context.Background()

	for _, id := range []string{"golang.go", "ms-python.python", "esbenp.prettier-vscode"} {
		if err := repo.Upsert(ctx, testRecord(id)); err != nil {
			t.Fatalf("Upsert(%s) failed: %v", id, err)
		}
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records len = %d, want 3", len(records))
	}
	if records[0].ID != "golang.go" || records[2].ID != "esbenp.prettier-vscode" {
		t.Errorf("records out of insertion order: %+v", records)
	}
}

func TestLedgerUpsertToleratesCorruptFile(t *testing.T) {
	repo, path := tempLedger(t)
	ctx := context.Background()

	if err := os.WriteFile(path, []byte("not json at all"), 0644); err != nil {
		t.Fatalf("failed to seed corrupt file: %v", err)
	}

	if err := repo.Upsert(ctx, testRecord("golang.go")); err != nil {
		t.Fatalf("Upsert on corrupt ledger failed: %v", err)
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records len = %d, want 1 (corrupt content treated as empty)", len(records))
	}
}

func TestLedgerUpdateStatus(t *testing.T) {
	repo, _ := tempLedger(t)
	ctx := context.Background()

	if err := repo.Upsert(ctx, testRecord("golang.go")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if err := repo.UpdateStatus(ctx, "golang.go", true); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !records[0].Success {
		t.Error("Success = false, want true after update")
	}
	if records[0].Time().IsZero() {
		t.Error("Timestamp should remain a valid RFC3339 value")
	}
}

func TestLedgerUpdateStatusUnknownIDIsNoOp(t *testing.T) {
	repo, path := tempLedger(t)
	ctx := context.Background()

	if err := repo.Upsert(ctx, testRecord("golang.go")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read ledger: %v", err)
	}

	if err := repo.UpdateStatus(ctx, "unknown.extension", true); err != nil {
		t.Fatalf("UpdateStatus on unknown ID should not fail: %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read ledger: %v", err)
	}
	if string(before) != string(after) {
		t.Error("ledger file changed by a no-op status update")
	}
}

func TestLedgerUpdateStatusAbsentFileIsQuiet(t *testing.T) {
	repo, path := tempLedger(t)

	if err := repo.UpdateStatus(context.Background(), "golang.go", true); err != nil {
		t.Fatalf("UpdateStatus with absent file should be quiet: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("UpdateStatus should not create the ledger file")
	}
}

func TestLedgerUpdateStatusCorruptFileFails(t *testing.T) {
	repo, path := tempLedger(t)

	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatalf("failed to seed corrupt file: %v", err)
	}

	err := repo.UpdateStatus(context.Background(), "golang.go", true)
	if err == nil {
		t.Fatal("UpdateStatus on corrupt ledger expected error, got none")
	}
	if !errors.Is(err, domain.ErrLedgerCorrupt) {
		t.Errorf("error = %v, want ErrLedgerCorrupt", err)
	}
}

func TestLedgerListAbsentFile(t *testing.T) {
	repo, _ := tempLedger(t)

	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List with absent file failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records len = %d, want 0", len(records))
	}
}
