// Package seeder replaces the products table with an expanded catalog.
package seeder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fashionnova610-sys/Minerhaolan/internal/catalog"
	"github.com/fashionnova610-sys/Minerhaolan/internal/model"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	LockKey          = "lock:catalog:seed"
	DefaultBatchSize = 50

	lockTTL = 10 * time.Minute
)

var ErrSeedInProgress = errors.New("another seed run holds the catalog lock")

// Store is the part of the product repository a seed run writes through.
type Store interface {
	EnsureSchema(ctx context.Context) error
	DeleteAll(ctx context.Context) (int64, error)
	InsertBatch(ctx context.Context, products []model.Product) (int64, error)
}

// Locker is satisfied by cache.RedisClient.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}

// Publisher is satisfied by broker.KafkaProducer.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

type Config struct {
	BatchSize    int
	EnsureSchema bool
}

type Report struct {
	RunID    string `json:"run_id"`
	Total    int    `json:"total"`
	Deleted  int64  `json:"deleted"`
	Batches  int    `json:"batches"`
	Inserted int64  `json:"inserted"`
	Ignored  int64  `json:"ignored"`
}

type Seeder struct {
	store     Store
	locker    Locker
	publisher Publisher
	cfg       Config
	logger    logger.ZapLogger
}

// New wires a seeder. locker and publisher are optional.
func New(store Store, locker Locker, publisher Publisher, cfg Config, log logger.ZapLogger) *Seeder {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &Seeder{
		store:     store,
		locker:    locker,
		publisher: publisher,
		cfg:       cfg,
		logger:    log,
	}
}

// Seed deletes every product row and inserts records in batches. Batches
// commit independently, so on failure the report carries what was committed.
func (s *Seeder) Seed(ctx context.Context, records []catalog.ProductRecord) (Report, error) {
	report := Report{RunID: uuid.NewString(), Total: len(records)}
	log := s.logger.With(zap.String("run_id", report.RunID))

	// 1. Lock
	if s.locker != nil {
		ok, err := s.locker.AcquireLock(ctx, LockKey, report.RunID, lockTTL)
		if err != nil {
			return report, fmt.Errorf("acquire seed lock: %w", err)
		}
		if !ok {
			return report, ErrSeedInProgress
		}
		defer func() {
			if err := s.locker.ReleaseLock(context.WithoutCancel(ctx), LockKey, report.RunID); err != nil {
				log.Warn("Failed to release seed lock", zap.Error(err))
			}
		}()
	}

	// 2. Schema
	if s.cfg.EnsureSchema {
		if err := s.store.EnsureSchema(ctx); err != nil {
			return report, fmt.Errorf("ensure schema: %w", err)
		}
	}

	// 3. Clear
	deleted, err := s.store.DeleteAll(ctx)
	if err != nil {
		return report, fmt.Errorf("delete products: %w", err)
	}
	report.Deleted = deleted
	log.Info("Cleared products table", zap.Int64("deleted", deleted))

	// 4. Insert
	rows := ToRows(records)
	for start := 0; start < len(rows); start += s.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		end := min(start+s.cfg.BatchSize, len(rows))

		n, err := s.store.InsertBatch(ctx, rows[start:end])
		if err != nil {
			return report, fmt.Errorf("insert batch %d (rows %d-%d): %w", report.Batches+1, start+1, end, err)
		}
		report.Batches++
		report.Inserted += n
		log.Info("Inserted batch",
			zap.Int("batch", report.Batches),
			zap.Int64("inserted", n),
			zap.Int("progress", end),
			zap.Int("total", len(rows)),
		)
	}
	report.Ignored = int64(report.Total) - report.Inserted

	// 5. Notify
	s.publish(ctx, log, report)

	log.Info("Seed completed",
		zap.Int("total", report.Total),
		zap.Int64("inserted", report.Inserted),
		zap.Int64("ignored", report.Ignored),
	)
	return report, nil
}

func (s *Seeder) publish(ctx context.Context, log logger.ZapLogger, report Report) {
	if s.publisher == nil {
		return
	}

	event := catalog.SeededEvent{
		EventID:   uuid.NewString(),
		EventType: catalog.EventCatalogSeeded,
		RunID:     report.RunID,
		Count:     report.Inserted,
		Timestamp: time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Error("Failed to marshal catalog event", zap.Error(err))
		return
	}
	// the rows are committed either way
	if err := s.publisher.Publish(ctx, report.RunID, data); err != nil {
		log.Warn("Failed to publish catalog event", zap.Error(err))
	}
}
