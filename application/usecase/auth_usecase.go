package usecase

import (
	"context"

	"github.com/horolog/horolog/application/port/inbound"
	"github.com/horolog/horolog/application/port/outbound"
	"github.com/horolog/horolog/domain/apperror"
	"github.com/horolog/horolog/domain/entity"
	"github.com/horolog/horolog/infrastructure/service/logger"
)

// AuthUseCase authenticates admins and resolves the principal behind a
// request. It exists to supply the actor identity the audit trail snapshots;
// account management lives in the CLI tools.
type AuthUseCase struct {
	users    outbound.UserRepository
	tokens   outbound.TokenService
	password outbound.PasswordService
	log      logger.Logger
}

func NewAuthUseCase(users outbound.UserRepository, tokens outbound.TokenService, password outbound.PasswordService, log logger.Logger) *AuthUseCase {
	return &AuthUseCase{users: users, tokens: tokens, password: password, log: log}
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*inbound.LoginResult, error) {
	if email == "" || password == "" {
		return nil, apperror.InvalidInput("email and password are required")
	}

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if apperror.Is(err, apperror.CodeNotFound) {
			// Same response as a bad password so accounts cannot be probed.
			return nil, apperror.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	if err := uc.password.ComparePassword(user.PasswordHash, password); err != nil {
		uc.log.Warn(ctx, "failed login attempt", map[string]interface{}{"email": email})
		return nil, apperror.Unauthorized("invalid credentials")
	}

	token, err := uc.tokens.GenerateAccessToken(outbound.TokenClaims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, apperror.Internal("failed to issue token", err)
	}

	return &inbound.LoginResult{Token: token, User: *user}, nil
}

func (uc *AuthUseCase) Me(ctx context.Context, principal entity.Principal) (*entity.User, error) {
	return uc.users.FindByID(ctx, principal.ID)
}
