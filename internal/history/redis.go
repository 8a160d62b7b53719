package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/constants"
)

// Redis keeps each record as a JSON string under <prefix>:<id> and indexes
// the IDs in a sorted set scored by creation time.
type Redis struct {
	client *redis.Client
	prefix string
}

// OpenRedis connects to addr and verifies the connection.
func OpenRedis(ctx context.Context, addr string, db int, prefix string) (*Redis, error) {
	if addr == "" {
		return nil, errors.New("redis history needs an address")
	}
	if prefix == "" {
		prefix = constants.DefaultHistoryKeyPrefix
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", addr, err)
	}
	return &Redis{client: client, prefix: prefix}, nil
}

func (r *Redis) recordKey(id uuid.UUID) string {
	return r.prefix + ":" + id.String()
}

func (r *Redis) indexKey() string {
	return r.prefix + ":index"
}

func (r *Redis) Save(ctx context.Context, record Record) (Record, error) {
	record = prepare(record)
	data, err := encode(record)
	if err != nil {
		return Record{}, err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.recordKey(record.ID), data, 0)
		pipe.ZAdd(ctx, r.indexKey(), redis.Z{
			Score:  float64(record.CreatedAt.UnixNano()),
			Member: record.ID.String(),
		})
		return nil
	})
	if err != nil {
		return Record{}, fmt.Errorf("failed to save record %s: %w", record.ID, err)
	}
	return record, nil
}

func (r *Redis) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	data, err := r.client.Get(ctx, r.recordKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to load record %s: %w", id, err)
	}
	return decode(data)
}

func (r *Redis) List(ctx context.Context, kind calculator.Kind) ([]Record, error) {
	ids, err := r.client.ZRevRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	records := []Record{}
	if len(ids) == 0 {
		return records, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.prefix + ":" + id
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	for _, value := range values {
		data, ok := value.(string)
		if !ok {
			// Index entry without a record; skip it.
			continue
		}
		record, err := decode([]byte(data))
		if err != nil {
			return nil, err
		}
		if kind == "" || record.Kind == kind {
			records = append(records, record)
		}
	}

	newestFirst(records)
	return records, nil
}

func (r *Redis) Delete(ctx context.Context, id uuid.UUID) error {
	var deleted *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, r.recordKey(id))
		pipe.ZRem(ctx, r.indexKey(), id.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete record %s: %w", id, err)
	}
	if deleted.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the client connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
