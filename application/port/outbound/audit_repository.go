package outbound

import (
	"context"
	"time"

	"github.com/horolog/horolog/application/query"
	"github.com/horolog/horolog/domain/entity"
)

// AuditActor is a distinct acting admin observed in the audit trail, with
// the identity snapshot from their most recent entry.
type AuditActor struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	LastActivity time.Time `json:"lastActivity"`
}

// AuditRepository persists and queries immutable audit entries. Entries are
// never updated or deleted once written.
type AuditRepository interface {
	// Insert stamps the entry with the write time and persists it.
	Insert(ctx context.Context, e *entity.AuditEntry) error

	List(ctx context.Context, f query.AuditFilter, s query.Sort, pg query.Page) ([]entity.AuditEntry, int64, error)

	// ListActors returns the distinct acting admins, most recently active
	// first.
	ListActors(ctx context.Context) ([]AuditActor, error)
}

// AuditRecorder accepts completed mutations for asynchronous audit
// persistence. Record returns immediately: persistence failures are logged
// and counted internally and never reach the caller, so a mutation's
// outcome is independent of audit durability.
type AuditRecorder interface {
	Record(action string, product *entity.Product, actor entity.Principal, changes map[string]entity.FieldChange)
}
