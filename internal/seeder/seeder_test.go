package seeder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fashionnova610-sys/Minerhaolan/internal/catalog"
	"github.com/fashionnova610-sys/Minerhaolan/internal/model"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/logger"
)

type fakeStore struct {
	calls     []string
	batches   [][]model.Product
	failAt    int // 1-based batch number, 0 never
	duplicate map[string]bool
}

func (f *fakeStore) EnsureSchema(ctx context.Context) error {
	f.calls = append(f.calls, "schema")
	return nil
}

func (f *fakeStore) DeleteAll(ctx context.Context) (int64, error) {
	f.calls = append(f.calls, "delete")
	return 7, nil
}

func (f *fakeStore) InsertBatch(ctx context.Context, products []model.Product) (int64, error) {
	f.calls = append(f.calls, "insert")
	if f.failAt == len(f.batches)+1 {
		return 0, errors.New("connection reset")
	}
	f.batches = append(f.batches, products)
	var n int64
	for _, p := range products {
		if !f.duplicate[p.Slug] {
			n++
		}
	}
	return n, nil
}

type fakeLocker struct {
	held     bool
	acquired string
	released string
}

func (l *fakeLocker) AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if l.held {
		return false, nil
	}
	l.acquired = value
	return true, nil
}

func (l *fakeLocker) ReleaseLock(ctx context.Context, key, value string) error {
	l.released = value
	return nil
}

type fakePublisher struct {
	messages [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, key string, value []byte) error {
	p.messages = append(p.messages, value)
	return nil
}

func records(n int) []catalog.ProductRecord {
	out := make([]catalog.ProductRecord, n)
	for i := range out {
		out[i] = catalog.ProductRecord{
			ID:       fmt.Sprintf("miner-%d", i),
			Name:     fmt.Sprintf("Miner %d", i),
			Price:    100,
			Category: []string{"bitcoin-miner"},
			Stock:    1,
		}
	}
	return out
}

func TestSeedBatches(t *testing.T) {
	store := &fakeStore{duplicate: map[string]bool{"miner-3": true}}
	locker := &fakeLocker{}
	pub := &fakePublisher{}
	s := New(store, locker, pub, Config{EnsureSchema: true}, logger.NewNop())

	report, err := s.Seed(context.Background(), records(120))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if report.Total != 120 || report.Batches != 3 || report.Inserted != 119 || report.Ignored != 1 {
		t.Errorf("Unexpected report %+v", report)
	}
	if report.Deleted != 7 {
		t.Errorf("Expected 7 deleted, got %d", report.Deleted)
	}
	if got := len(store.batches[2]); got != 20 {
		t.Errorf("Expected last batch of 20, got %d", got)
	}
	want := []string{"schema", "delete", "insert", "insert", "insert"}
	if fmt.Sprint(store.calls) != fmt.Sprint(want) {
		t.Errorf("Expected calls %v, got %v", want, store.calls)
	}

	if locker.acquired == "" || locker.released != locker.acquired || locker.acquired != report.RunID {
		t.Errorf("Expected lock held with run id, got %+v", locker)
	}

	if len(pub.messages) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(pub.messages))
	}
	var event catalog.SeededEvent
	if err := json.Unmarshal(pub.messages[0], &event); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if event.EventType != catalog.EventCatalogSeeded || event.Count != 119 || event.RunID != report.RunID {
		t.Errorf("Unexpected event %+v", event)
	}
}

func TestSeedStopsAtFailingBatch(t *testing.T) {
	store := &fakeStore{failAt: 2}
	pub := &fakePublisher{}
	s := New(store, nil, pub, Config{BatchSize: 10}, logger.NewNop())

	report, err := s.Seed(context.Background(), records(35))
	if err == nil {
		t.Fatal("Expected error from failing batch")
	}
	if report.Batches != 1 || report.Inserted != 10 {
		t.Errorf("Expected one committed batch, got %+v", report)
	}
	if len(store.calls) != 3 {
		t.Errorf("Expected no batch after the failure, got calls %v", store.calls)
	}
	if len(pub.messages) != 0 {
		t.Error("Expected no event for a failed run")
	}
}

func TestSeedLocked(t *testing.T) {
	store := &fakeStore{}
	s := New(store, &fakeLocker{held: true}, nil, Config{}, logger.NewNop())

	_, err := s.Seed(context.Background(), records(1))
	if !errors.Is(err, ErrSeedInProgress) {
		t.Errorf("Expected ErrSeedInProgress, got %v", err)
	}
	if len(store.calls) != 0 {
		t.Errorf("Expected store untouched, got %v", store.calls)
	}
}

func TestSeedEmptyCatalog(t *testing.T) {
	store := &fakeStore{}
	s := New(store, nil, nil, Config{}, logger.NewNop())

	report, err := s.Seed(context.Background(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if report.Batches != 0 || len(store.calls) != 1 || store.calls[0] != "delete" {
		t.Errorf("Expected only the delete, got %+v %v", report, store.calls)
	}
}

func TestSeedCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &fakeStore{}
	_, err := New(store, nil, nil, Config{}, logger.NewNop()).Seed(ctx, records(3))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if len(store.batches) != 0 {
		t.Error("Expected no batches after cancellation")
	}
}
