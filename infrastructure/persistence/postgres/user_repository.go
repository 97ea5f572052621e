package postgres

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/horolog/horolog/application/port/outbound"
	"github.com/horolog/horolog/domain/apperror"
	"github.com/horolog/horolog/domain/entity"
)

var userColumns = []string{"id", "name", "email", "password_hash", "role", "created_at"}

// UserRepository stores admin accounts on PostgreSQL.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) outbound.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id}, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, sq.Expr("LOWER(email) = LOWER(?)", email), email)
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	q, args, err := psql.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.CreatedAt).
		ToSql()
	if err != nil {
		return apperror.Internal("build user insert", err)
	}

	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return mapStoreError("user create", err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, pred sq.Sqlizer, ref string) (*entity.User, error) {
	q, args, err := psql.Select(userColumns...).From("users").Where(pred).ToSql()
	if err != nil {
		return nil, apperror.Internal("build user select", err)
	}

	var u entity.User
	err = r.db.QueryRowContext(ctx, q, args...).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", ref)
		}
		return nil, mapStoreError("user find", err)
	}
	return &u, nil
}
