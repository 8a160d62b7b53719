package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/internal/metrics"
)

func sampleRecord(name string, kind calculator.Kind, created time.Time) Record {
	return Record{
		Name:      name,
		CreatedAt: created,
		Parameters: calculator.Parameters{
			Kind: kind, Principal: 1000000, RatePercent: 10, TenureMonths: 60,
		},
		Summary: calculator.Summary{
			{Name: "Monthly EMI", Value: 21247, Unit: calculator.UnitCurrency},
		},
	}
}

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

	first, err := store.Save(ctx, sampleRecord("Home loan", calculator.KindEMI, base))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if first.ID == uuid.Nil {
		t.Fatalf("Save() did not assign an ID")
	}
	if first.Kind != calculator.KindEMI {
		t.Errorf("Save() kind = %q, expected emi", first.Kind)
	}

	second, err := store.Save(ctx, sampleRecord("Retirement", calculator.KindSWP, base.Add(time.Hour)))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	third, err := store.Save(ctx, sampleRecord("Car loan", calculator.KindEMI, base.Add(2*time.Hour)))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if loaded.Name != "Home loan" || !loaded.CreatedAt.Equal(base) {
		t.Errorf("Get() = %+v", loaded)
	}
	if loaded.Parameters != first.Parameters {
		t.Errorf("parameters changed in storage: %+v vs %+v", loaded.Parameters, first.Parameters)
	}
	if value, _ := loaded.Summary.Value("Monthly EMI"); value != 21247 {
		t.Errorf("summary changed in storage: %+v", loaded.Summary)
	}

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 || all[0].ID != third.ID || all[2].ID != first.ID {
		t.Errorf("List() should return newest first, got %v", names(all))
	}

	loansOnly, err := store.List(ctx, calculator.KindEMI)
	if err != nil {
		t.Fatalf("List(emi) error = %v", err)
	}
	if len(loansOnly) != 2 {
		t.Errorf("List(emi) returned %v", names(loansOnly))
	}

	renamed := loaded
	renamed.Name = "Home loan (revised)"
	if _, err := store.Save(ctx, renamed); err != nil {
		t.Fatalf("Save() update error = %v", err)
	}
	if again, _ := store.Get(ctx, first.ID); again.Name != "Home loan (revised)" {
		t.Errorf("update not persisted, got %q", again.Name)
	}

	if err := store.Delete(ctx, second.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, second.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, expected ErrNotFound", err)
	}
	if err := store.Delete(ctx, second.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, expected ErrNotFound", err)
	}
	if _, err := store.Get(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() of unknown ID error = %v, expected ErrNotFound", err)
	}
}

func names(records []Record) []string {
	out := make([]string, len(records))
	for i, record := range records {
		out[i] = record.Name
	}
	return out
}

func TestMemoryStore(t *testing.T) {
	store := NewMemory()
	defer store.Close()
	exerciseStore(t, store)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	store, err := OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer store.Close()
	exerciseStore(t, store)

	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	saved, err := store.Save(ctx, sampleRecord("Kept", calculator.KindEMI, time.Time{}))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()
	if record, err := reopened.Get(ctx, saved.ID); err != nil || record.Name != "Kept" {
		t.Errorf("Get() after reopen = %+v, %v", record, err)
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("FINCALC_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("FINCALC_TEST_REDIS_ADDR not set")
	}

	prefix := "fincalc:test:" + uuid.NewString()
	store, err := OpenRedis(context.Background(), addr, 0, prefix)
	if err != nil {
		t.Fatalf("OpenRedis() error = %v", err)
	}
	defer func() {
		ctx := context.Background()
		records, _ := store.List(ctx, "")
		for _, record := range records {
			_ = store.Delete(ctx, record.ID)
		}
		_ = store.Close()
	}()
	exerciseStore(t, store)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"Default is memory", Config{}, false},
		{"Memory", Config{Backend: "memory"}, false},
		{"SQLite", Config{Backend: "sqlite", Path: filepath.Join(t.TempDir(), "h.db")}, false},
		{"SQLite without path", Config{Backend: "sqlite"}, true},
		{"Redis without address", Config{Backend: "redis"}, true},
		{"Unknown backend", Config{Backend: "postgres"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(ctx, tt.cfg, nil, zap.NewNop())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if store != nil {
				_ = store.Close()
			}
		})
	}
}

func TestInstrumentedStoreCountsOperations(t *testing.T) {
	recorder := metrics.New()
	store, err := Open(context.Background(), Config{Backend: "memory"}, recorder, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	ctx := context.Background()
	saved, _ := store.Save(ctx, sampleRecord("Counted", calculator.KindSIP, time.Time{}))
	_, _ = store.Get(ctx, saved.ID)
	_, _ = store.Get(ctx, uuid.New())
	_, _ = store.List(ctx, "")
	_ = store.Delete(ctx, saved.ID)

	checks := []struct {
		operation string
		status    string
		expected  float64
	}{
		{"save", metrics.StatusOK, 1},
		{"get", metrics.StatusOK, 1},
		{"get", metrics.StatusError, 1},
		{"list", metrics.StatusOK, 1},
		{"delete", metrics.StatusOK, 1},
	}
	for _, check := range checks {
		got := testutil.ToFloat64(recorder.HistoryOperations.WithLabelValues("memory", check.operation, check.status))
		if got != check.expected {
			t.Errorf("%s/%s = %v, expected %v", check.operation, check.status, got, check.expected)
		}
	}
}

func TestNewRecordDefaultsName(t *testing.T) {
	result := &calculator.Result{
		Kind:       calculator.KindGoal,
		Title:      calculator.KindGoal.Title(),
		Parameters: calculator.Parameters{Kind: calculator.KindGoal, Target: 1000000},
	}

	record := NewRecord("", result)
	if record.Name != "Goal planner" || record.Kind != calculator.KindGoal {
		t.Errorf("NewRecord() = %+v", record)
	}
	if record.StoredParameters() != result.Parameters {
		t.Errorf("StoredParameters() does not return the original parameters")
	}
}
