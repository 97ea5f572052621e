package usecase

import (
	"context"

	"github.com/horolog/horolog/application/port/outbound"
	"github.com/horolog/horolog/application/query"
	"github.com/horolog/horolog/domain/entity"
)

// AuditUseCase reads the audit trail. Writing happens exclusively through
// the asynchronous recorder.
type AuditUseCase struct {
	audit outbound.AuditRepository
}

func NewAuditUseCase(audit outbound.AuditRepository) *AuditUseCase {
	return &AuditUseCase{audit: audit}
}

func (uc *AuditUseCase) List(ctx context.Context, f query.AuditFilter, s query.Sort, pg query.Page) ([]entity.AuditEntry, int64, error) {
	return uc.audit.List(ctx, f, s, pg)
}

func (uc *AuditUseCase) Actors(ctx context.Context) ([]outbound.AuditActor, error) {
	return uc.audit.ListActors(ctx)
}
