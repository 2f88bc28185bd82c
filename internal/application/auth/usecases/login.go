package usecases

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/shared/errors"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     *identity.Identity
}

type LoginUseCase struct {
	identityRepo identity.Repository
	hasher       PasswordHasher
	tokens       TokenService
	logger       logger.Interface
}

func NewLoginUseCase(
	identityRepo identity.Repository,
	hasher PasswordHasher,
	tokens TokenService,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		identityRepo: identityRepo,
		hasher:       hasher,
		tokens:       tokens,
		logger:       logger,
	}
}

// Execute signs an admin in. Unknown email, non-admin identity, missing hash
// and wrong password all return the same invalid-credentials error.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || cmd.Password == "" {
		return nil, errors.NewInvalidCredentialsError()
	}

	admin, err := uc.identityRepo.FindByEmail(ctx, email)
	if err != nil && !stderrors.Is(err, identity.ErrNotFound) {
		uc.logger.Errorw("failed to look up admin", "error", err)
		return nil, errors.NewInternalError("Failed to sign in")
	}

	if admin == nil || !admin.IsAdmin() || admin.PasswordHash == nil {
		_ = uc.hasher.VerifyNothing(cmd.Password)
		uc.logger.Infow("admin login rejected", "reason", "no admin with this email")
		return nil, errors.NewInvalidCredentialsError()
	}

	if err := uc.hasher.Verify(cmd.Password, *admin.PasswordHash); err != nil {
		uc.logger.Infow("admin login rejected", "reason", "password mismatch", "admin_id", admin.ID)
		return nil, errors.NewInvalidCredentialsError()
	}

	token, exp, err := uc.tokens.GenerateAccess(admin.ID, admin.Role.String())
	if err != nil {
		uc.logger.Errorw("failed to issue access token", "error", err, "admin_id", admin.ID)
		return nil, errors.NewInternalError("Failed to sign in")
	}

	if err := uc.identityRepo.SetLoggedIn(ctx, admin.ID, true); err != nil {
		uc.logger.Warnw("failed to set logged_in flag", "error", err, "admin_id", admin.ID)
	} else {
		admin.LoggedIn = true
	}

	uc.logger.Infow("admin logged in", "admin_id", admin.ID)

	return &LoginResult{Token: token, ExpiresAt: exp, Admin: admin}, nil
}
