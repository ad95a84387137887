package usage

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	repo := NewRepository(db)
	if err := repo.AutoMigrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return repo
}

func TestRecordUsageAccumulates(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if err := repo.RecordUsage(ctx, 10, 20, 1, day); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.RecordUsage(ctx, 5, 7, 1, day); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	usage, err := repo.GetDailyUsage(ctx, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usage == nil {
		t.Fatalf("expected usage row")
	}
	if usage.InputTokens != 15 || usage.OutputTokens != 27 {
		t.Fatalf("unexpected totals: %+v", usage)
	}
	if usage.RequestCount != 2 {
		t.Fatalf("expected request count 2, got %d", usage.RequestCount)
	}
	if usage.TotalTokens() != 42 {
		t.Fatalf("expected total 42, got %d", usage.TotalTokens())
	}
}

func TestRecordUsageSkipsEmpty(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if err := repo.RecordUsage(ctx, 0, 0, 0, day); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	usage, err := repo.GetDailyUsage(ctx, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usage != nil {
		t.Fatalf("expected no usage row, got %+v", usage)
	}
}

func TestGetRecentUsageOrders(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	dayOne := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	dayTwo := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	if err := repo.RecordUsage(ctx, 1, 1, 1, dayOne); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.RecordUsage(ctx, 2, 2, 1, dayTwo); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	usages, err := repo.GetRecentUsage(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(usages) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(usages))
	}
	if !usages[0].UsageDate.After(usages[1].UsageDate) {
		t.Fatalf("expected newest first: %+v", usages)
	}
}
