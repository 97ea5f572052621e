package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/horolog/horolog/application/port/outbound"
	"github.com/horolog/horolog/application/query"
	"github.com/horolog/horolog/domain/apperror"
	"github.com/horolog/horolog/domain/entity"
)

var auditColumns = []string{
	"id", "action_type", "product_id", "actor_id", "actor_name", "actor_email",
	"brand", "sku", "changes", "created_at",
}

// AuditRepository persists the append-only audit trail on PostgreSQL.
type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) outbound.AuditRepository {
	return &AuditRepository{db: db}
}

// Insert stamps the entry with the write time. Entries are never touched
// again after this.
func (r *AuditRepository) Insert(ctx context.Context, e *entity.AuditEntry) error {
	var changes []byte
	if len(e.Changes) > 0 {
		var err error
		changes, err = json.Marshal(e.Changes)
		if err != nil {
			return apperror.Internal("marshal changes", err)
		}
	}

	e.Timestamp = time.Now().UTC()
	q, args, err := psql.Insert("audit_entries").
		Columns(auditColumns...).
		Values(e.ID, e.ActionType, e.ProductID, e.ActorID, e.ActorName, e.ActorEmail,
			e.Brand, e.SKU, changes, e.Timestamp).
		ToSql()
	if err != nil {
		return apperror.Internal("build audit insert", err)
	}

	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return mapStoreError("audit insert", err)
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, f query.AuditFilter, s query.Sort, pg query.Page) ([]entity.AuditEntry, int64, error) {
	pred := auditPredicate(f)

	countQuery := psql.Select("COUNT(*)").From("audit_entries")
	if pred != nil {
		countQuery = countQuery.Where(pred)
	}
	q, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, apperror.Internal("build audit count", err)
	}
	var total int64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return nil, 0, mapStoreError("audit count", err)
	}

	sel := psql.Select(auditColumns...).
		From("audit_entries").
		OrderBy(orderClause(query.AuditSortColumns[s.Field], s.Desc)...).
		Limit(uint64(pg.Limit)).
		Offset(uint64(pg.Offset()))
	if pred != nil {
		sel = sel.Where(pred)
	}
	q, args, err = sel.ToSql()
	if err != nil {
		return nil, 0, apperror.Internal("build audit list", err)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, mapStoreError("audit list", err)
	}
	defer rows.Close()

	entries := []entity.AuditEntry{}
	for rows.Next() {
		e, err := scanAuditEntry(rows)
		if err != nil {
			return nil, 0, mapStoreError("audit list", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapStoreError("audit list", err)
	}
	return entries, total, nil
}

// ListActors surfaces each distinct actor with the identity snapshot from
// their most recent entry, ordered by last activity.
func (r *AuditRepository) ListActors(ctx context.Context) ([]outbound.AuditActor, error) {
	const q = `
		SELECT actor_id, actor_name, actor_email, last_activity FROM (
			SELECT DISTINCT ON (actor_id)
				actor_id, actor_name, actor_email, created_at AS last_activity
			FROM audit_entries
			ORDER BY actor_id, created_at DESC
		) actors
		ORDER BY last_activity DESC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, mapStoreError("audit actors", err)
	}
	defer rows.Close()

	actors := []outbound.AuditActor{}
	for rows.Next() {
		var a outbound.AuditActor
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.LastActivity); err != nil {
			return nil, mapStoreError("audit actors", err)
		}
		actors = append(actors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError("audit actors", err)
	}
	return actors, nil
}

// auditPredicate combines every supplied filter conjunctively. Brand and sku
// are exact case-insensitive matches; search is a substring over brand or
// sku only.
func auditPredicate(f query.AuditFilter) sq.Sqlizer {
	and := sq.And{}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		and = append(and, sq.Or{
			sq.ILike{"brand": pattern},
			sq.ILike{"sku": pattern},
		})
	}
	if f.Brand != "" {
		and = append(and, sq.Expr("LOWER(brand) = LOWER(?)", f.Brand))
	}
	if f.SKU != "" {
		and = append(and, sq.Expr("LOWER(sku) = LOWER(?)", f.SKU))
	}
	if f.ActionType != "" {
		and = append(and, sq.Eq{"action_type": f.ActionType})
	}
	if f.ActorID != "" {
		and = append(and, sq.Eq{"actor_id": f.ActorID})
	}
	if f.From != nil {
		and = append(and, sq.GtOrEq{"created_at": *f.From})
	}
	if f.To != nil {
		and = append(and, sq.LtOrEq{"created_at": *f.To})
	}
	if len(and) == 0 {
		return nil
	}
	return and
}

func scanAuditEntry(row rowScanner) (*entity.AuditEntry, error) {
	var (
		e           entity.AuditEntry
		changesJSON []byte
	)
	err := row.Scan(
		&e.ID, &e.ActionType, &e.ProductID, &e.ActorID, &e.ActorName, &e.ActorEmail,
		&e.Brand, &e.SKU, &changesJSON, &e.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	if len(changesJSON) > 0 {
		if err := json.Unmarshal(changesJSON, &e.Changes); err != nil {
			return nil, err
		}
	}
	return &e, nil
}
