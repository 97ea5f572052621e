package inbound

import (
	"context"

	"github.com/horolog/horolog/domain/entity"
)

// LoginResult is a successful authentication: a signed access token plus the
// account it identifies.
type LoginResult struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Me resolves the full account behind an authenticated principal.
	Me(ctx context.Context, principal entity.Principal) (*entity.User, error)
}
