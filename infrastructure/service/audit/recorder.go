// Package audit decouples audit persistence from the mutations that trigger
// it. Callers hand a completed mutation to the recorder and move on; a
// background worker owns the write, and its failures never travel back.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/horolog/horolog/application/port/outbound"
	"github.com/horolog/horolog/domain/entity"
	"github.com/horolog/horolog/infrastructure/service/logger"
	"github.com/horolog/horolog/metrics"
)

const (
	defaultQueueSize    = 256
	defaultWriteTimeout = 5 * time.Second
)

// Recorder queues audit entries on a bounded channel and persists them from
// a single worker goroutine. A full queue drops the entry (logged and
// counted) instead of blocking the caller; the trail is best-effort by
// contract.
type Recorder struct {
	repo    outbound.AuditRepository
	log     logger.Logger
	queue   chan *entity.AuditEntry
	timeout time.Duration

	closeOnce sync.Once
	done      chan struct{}
}

// NewRecorder starts the worker. queueSize <= 0 selects the default.
func NewRecorder(repo outbound.AuditRepository, log logger.Logger, queueSize int) *Recorder {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	r := &Recorder{
		repo:    repo,
		log:     log,
		queue:   make(chan *entity.AuditEntry, queueSize),
		timeout: defaultWriteTimeout,
		done:    make(chan struct{}),
	}
	go r.run()
	return r
}

// Record enqueues an entry and returns immediately. The product's id, brand,
// and sku and the actor's identity are copied now so later edits to either
// cannot alter the entry.
func (r *Recorder) Record(action string, product *entity.Product, actor entity.Principal, changes map[string]entity.FieldChange) {
	e := &entity.AuditEntry{
		ID:         uuid.NewString(),
		ActionType: action,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		ActorEmail: actor.Email,
		Changes:    changes,
	}
	if product != nil {
		e.ProductID = product.ID
		e.Brand = product.Brand
		e.SKU = product.SKU
	}

	select {
	case r.queue <- e:
		metrics.AuditQueued()
	default:
		metrics.AuditDropped()
		r.log.Warn(context.Background(), "audit queue full, entry dropped", map[string]interface{}{
			"action":     action,
			"product_id": e.ProductID,
		})
	}
}

// Close stops accepting entries, drains the queue, and returns once every
// pending write has been attempted.
func (r *Recorder) Close() {
	r.closeOnce.Do(func() {
		close(r.queue)
	})
	<-r.done
}

func (r *Recorder) run() {
	defer close(r.done)
	for e := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		if err := r.repo.Insert(ctx, e); err != nil {
			// Swallowed on purpose: the triggering mutation already
			// succeeded and must stay successful.
			metrics.AuditWriteFailed()
			r.log.Error(ctx, "audit write failed", err, map[string]interface{}{
				"action":     e.ActionType,
				"product_id": e.ProductID,
				"actor_id":   e.ActorID,
			})
		}
		cancel()
	}
}
