// Package history persists named calculations. Only the parameters and the
// headline summary are stored; schedules are recomputed on demand.
package history

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/internal/metrics"
	"github.com/iwvelando/finance-calculators/pkg/constants"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("calculation not found")

// Record is a saved calculation.
type Record struct {
	ID         uuid.UUID             `json:"id"`
	Name       string                `json:"name"`
	Kind       calculator.Kind       `json:"kind"`
	CreatedAt  time.Time             `json:"createdAt"`
	Parameters calculator.Parameters `json:"parameters"`
	Summary    calculator.Summary    `json:"summary"`
}

// StoredParameters lets a Record be recomputed by the calculator.
func (r Record) StoredParameters() calculator.Parameters {
	return r.Parameters
}

// NewRecord captures a finished calculation under name.
func NewRecord(name string, result *calculator.Result) Record {
	if name == "" {
		name = result.Title
	}
	return Record{
		Name:       name,
		Kind:       result.Kind,
		Parameters: result.Parameters,
		Summary:    result.Summary,
	}
}

// Store is a saved calculation backend.
type Store interface {
	// Save assigns an ID and creation time when missing and stores the record.
	Save(ctx context.Context, record Record) (Record, error)
	Get(ctx context.Context, id uuid.UUID) (Record, error)
	// List returns records newest first. An empty kind lists every record.
	List(ctx context.Context, kind calculator.Kind) ([]Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Close() error
}

// Config selects and configures the backend.
type Config struct {
	Backend   string `mapstructure:"backend" yaml:"backend"`
	Path      string `mapstructure:"path" yaml:"path"`
	RedisAddr string `mapstructure:"redisAddr" yaml:"redisAddr"`
	RedisDB   int    `mapstructure:"redisDB" yaml:"redisDB"`
	KeyPrefix string `mapstructure:"keyPrefix" yaml:"keyPrefix"`
}

// Open builds the configured backend. recorder may be nil.
func Open(ctx context.Context, cfg Config, recorder *metrics.Recorder, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		store Store
		err   error
	)
	backend := cfg.Backend
	switch backend {
	case "", constants.HistoryBackendMemory:
		backend = constants.HistoryBackendMemory
		store = NewMemory()
	case constants.HistoryBackendSQLite:
		store, err = OpenSQLite(ctx, cfg.Path)
	case constants.HistoryBackendRedis:
		store, err = OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.KeyPrefix)
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s history store: %w", backend, err)
	}

	logger.Debug("history store opened",
		zap.String("op", "history.Open"),
		zap.String("backend", backend))
	return Instrument(store, backend, recorder), nil
}

// prepare fills the fields Save is responsible for.
func prepare(record Record) Record {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if record.Kind == "" {
		record.Kind = record.Parameters.Kind
	}
	return record
}

func encode(record Record) ([]byte, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record %s: %w", record.ID, err)
	}
	return data, nil
}

func decode(data []byte) (Record, error) {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return Record{}, fmt.Errorf("failed to decode record: %w", err)
	}
	return record, nil
}

func newestFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID.String() < records[j].ID.String()
	})
}

type instrumented struct {
	Store
	backend  string
	recorder *metrics.Recorder
}

// Instrument counts every store operation on recorder. A nil recorder
// returns store unchanged.
func Instrument(store Store, backend string, recorder *metrics.Recorder) Store {
	if recorder == nil {
		return store
	}
	return &instrumented{Store: store, backend: backend, recorder: recorder}
}

func (s *instrumented) Save(ctx context.Context, record Record) (Record, error) {
	saved, err := s.Store.Save(ctx, record)
	s.recorder.ObserveHistory(s.backend, "save", err)
	return saved, err
}

func (s *instrumented) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	record, err := s.Store.Get(ctx, id)
	s.recorder.ObserveHistory(s.backend, "get", err)
	return record, err
}

func (s *instrumented) List(ctx context.Context, kind calculator.Kind) ([]Record, error) {
	records, err := s.Store.List(ctx, kind)
	s.recorder.ObserveHistory(s.backend, "list", err)
	return records, err
}

func (s *instrumented) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.Store.Delete(ctx, id)
	s.recorder.ObserveHistory(s.backend, "delete", err)
	return err
}
