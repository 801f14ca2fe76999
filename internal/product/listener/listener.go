package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fashionnova610-sys/Minerhaolan/internal/catalog"
	"github.com/fashionnova610-sys/Minerhaolan/internal/product"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Consumer is satisfied by broker.KafkaConsumer.
type Consumer interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type CatalogListener struct {
	consumer Consumer
	uc       product.UseCase
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewCatalogListener(consumer Consumer, uc product.UseCase, logger logger.ZapLogger) *CatalogListener {
	return &CatalogListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
		backoff:  time.Second,
	}
}

func (l *CatalogListener) Start(ctx context.Context) {
	l.logger.Info("Starting Catalog Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Catalog Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				// Don't log context canceled error as error
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(l.backoff)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *CatalogListener) processMessage(ctx context.Context, value []byte) {
	var event catalog.SeededEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != catalog.EventCatalogSeeded {
		return
	}

	l.logger.Info("Processing CatalogSeeded event",
		zap.String("run_id", event.RunID),
		zap.Int64("count", event.Count),
	)

	if err := l.uc.InvalidateCache(ctx); err != nil {
		l.logger.Error("Failed to invalidate catalog cache", zap.String("run_id", event.RunID), zap.Error(err))
	}

	n, err := l.uc.Reindex(ctx)
	if err != nil {
		l.logger.Error("Failed to reindex catalog", zap.String("run_id", event.RunID), zap.Error(err))
		return
	}
	l.logger.Info("Catalog reindexed", zap.String("run_id", event.RunID), zap.Int("documents", n))
}
