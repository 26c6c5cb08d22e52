package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"inflation/internal/amqp"
	"inflation/internal/rates"
)

type fakeStore struct {
	loads       int
	loadErr     error
	snapshotErr error
}

func (s *fakeStore) Load(ctx context.Context) error {
	s.loads++
	return s.loadErr
}

func (s *fakeStore) Snapshot(ctx context.Context) (*rates.Table, error) {
	if s.snapshotErr != nil {
		return nil, s.snapshotErr
	}
	return rates.NewTable(map[int]decimal.Decimal{
		2022: decimal.RequireFromString("6.5"),
	}), nil
}

func reloadMessage() *amqp.RatesReloadMessage {
	return &amqp.RatesReloadMessage{
		Source:    "importer",
		Timestamp: time.Now().UTC(),
	}
}

func TestHandleReloadMessage(t *testing.T) {
	store := &fakeStore{}
	w := NewReloadWorker(store)

	if err := w.HandleReloadMessage(context.Background(), reloadMessage()); err != nil {
		t.Fatalf("HandleReloadMessage() error = %v", err)
	}
	if store.loads != 1 {
		t.Errorf("store loaded %d times, want 1", store.loads)
	}
}

func TestHandleReloadMessage_LoadError(t *testing.T) {
	loadErr := errors.New("source unavailable")
	store := &fakeStore{loadErr: loadErr}
	w := NewReloadWorker(store)

	err := w.HandleReloadMessage(context.Background(), reloadMessage())
	if !errors.Is(err, loadErr) {
		t.Fatalf("HandleReloadMessage() error = %v, want wrapped %v", err, loadErr)
	}
}

func TestHandleReloadMessage_SnapshotError(t *testing.T) {
	snapErr := errors.New("no table")
	store := &fakeStore{snapshotErr: snapErr}
	w := NewReloadWorker(store)

	err := w.HandleReloadMessage(context.Background(), reloadMessage())
	if !errors.Is(err, snapErr) {
		t.Fatalf("HandleReloadMessage() error = %v, want wrapped %v", err, snapErr)
	}
}
