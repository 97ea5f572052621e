package inbound

import (
	"context"

	"github.com/horolog/horolog/application/port/outbound"
	"github.com/horolog/horolog/application/query"
	"github.com/horolog/horolog/domain/entity"
)

// AuditService exposes read access to the audit trail.
type AuditService interface {
	List(ctx context.Context, f query.AuditFilter, s query.Sort, pg query.Page) ([]entity.AuditEntry, int64, error)
	Actors(ctx context.Context) ([]outbound.AuditActor, error)
}
