package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/horolog/horolog/application/port/outbound"
	"github.com/horolog/horolog/application/query"
	"github.com/horolog/horolog/domain/entity"
	"github.com/horolog/horolog/infrastructure/service/logger"
)

// capturingRepo records inserted entries; insert, when set, runs first and
// can fail or block the write.
type capturingRepo struct {
	mu      sync.Mutex
	entries []entity.AuditEntry
	insert  func(e *entity.AuditEntry) error
}

func (r *capturingRepo) Insert(ctx context.Context, e *entity.AuditEntry) error {
	if r.insert != nil {
		if err := r.insert(e); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *e)
	return nil
}

func (r *capturingRepo) List(ctx context.Context, f query.AuditFilter, s query.Sort, pg query.Page) ([]entity.AuditEntry, int64, error) {
	return nil, 0, nil
}

func (r *capturingRepo) ListActors(ctx context.Context) ([]outbound.AuditActor, error) {
	return nil, nil
}

func (r *capturingRepo) snapshot() []entity.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.AuditEntry(nil), r.entries...)
}

var actor = entity.Principal{ID: "admin-1", Name: "Ada", Email: "ada@example.com"}

func TestRecorder_RecordReturnsImmediately(t *testing.T) {
	release := make(chan struct{})
	repo := &capturingRepo{insert: func(*entity.AuditEntry) error {
		<-release
		return nil
	}}
	r := NewRecorder(repo, logger.NewNop(), 4)

	start := time.Now()
	r.Record(entity.ActionCreate, &entity.Product{ID: "p-1"}, actor, nil)
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 100*time.Millisecond, "Record must not wait on the store")

	close(release)
	r.Close()
	assert.Len(t, repo.snapshot(), 1)
}

func TestRecorder_SnapshotsProductAndActor(t *testing.T) {
	repo := &capturingRepo{}
	r := NewRecorder(repo, logger.NewNop(), 4)

	p := &entity.Product{ID: "p-1", Brand: "Seiko", SKU: "SRPD55K1"}
	r.Record(entity.ActionUpdate, p, actor, map[string]entity.FieldChange{
		"price": {From: 295.0, To: 279.5},
	})

	// Later edits to the product must not leak into the queued entry.
	p.Brand = "Casio"
	p.SKU = "changed"

	r.Close()

	entries := repo.snapshot()
	if assert.Len(t, entries, 1) {
		e := entries[0]
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, "Seiko", e.Brand)
		assert.Equal(t, "SRPD55K1", e.SKU)
		assert.Equal(t, "admin-1", e.ActorID)
		assert.Equal(t, "Ada", e.ActorName)
		assert.Equal(t, "ada@example.com", e.ActorEmail)
		assert.Contains(t, e.Changes, "price")
	}
}

func TestRecorder_PreservesMutationOrder(t *testing.T) {
	repo := &capturingRepo{}
	r := NewRecorder(repo, logger.NewNop(), 16)

	p := &entity.Product{ID: "p-1", Brand: "Seiko"}
	r.Record(entity.ActionCreate, p, actor, nil)
	r.Record(entity.ActionUpdate, p, actor, nil)
	r.Record(entity.ActionUpdate, p, actor, nil)
	r.Record(entity.ActionDelete, p, actor, nil)

	r.Close()

	entries := repo.snapshot()
	if assert.Len(t, entries, 4) {
		got := []string{entries[0].ActionType, entries[1].ActionType, entries[2].ActionType, entries[3].ActionType}
		assert.Equal(t, []string{"CREATE", "UPDATE", "UPDATE", "DELETE"}, got)
	}
}

func TestRecorder_SwallowsWriteFailures(t *testing.T) {
	calls := 0
	repo := &capturingRepo{insert: func(*entity.AuditEntry) error {
		calls++
		if calls == 1 {
			return errors.New("store down")
		}
		return nil
	}}
	r := NewRecorder(repo, logger.NewNop(), 4)

	// Neither call panics or reports anything; the second still lands.
	r.Record(entity.ActionCreate, &entity.Product{ID: "p-1"}, actor, nil)
	r.Record(entity.ActionCreate, &entity.Product{ID: "p-2"}, actor, nil)

	r.Close()

	entries := repo.snapshot()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "p-2", entries[0].ProductID)
	}
}

func TestRecorder_DropsWhenQueueFull(t *testing.T) {
	release := make(chan struct{})
	repo := &capturingRepo{insert: func(*entity.AuditEntry) error {
		<-release
		return nil
	}}
	r := NewRecorder(repo, logger.NewNop(), 1)

	// First entry occupies the worker, second fills the queue, the rest are
	// dropped without blocking.
	for i := 0; i < 5; i++ {
		r.Record(entity.ActionCreate, &entity.Product{ID: "p"}, actor, nil)
	}

	close(release)
	r.Close()

	assert.LessOrEqual(t, len(repo.snapshot()), 2)
}

func TestRecorder_CloseDrainsPending(t *testing.T) {
	repo := &capturingRepo{}
	r := NewRecorder(repo, logger.NewNop(), 16)

	for i := 0; i < 10; i++ {
		r.Record(entity.ActionCreate, &entity.Product{ID: "p"}, actor, nil)
	}
	r.Close()

	assert.Len(t, repo.snapshot(), 10)
}
