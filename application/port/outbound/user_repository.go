package outbound

import (
	"context"

	"github.com/horolog/horolog/domain/entity"
)

// UserRepository stores admin accounts. Login and the principal lookup are
// the only consumers; account management happens through the CLI tools.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
}
