package usecases

import (
	"context"
	stderrors "errors"

	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/shared/errors"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

type LogoutUseCase struct {
	identityRepo identity.Repository
	logger       logger.Interface
}

func NewLogoutUseCase(identityRepo identity.Repository, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{identityRepo: identityRepo, logger: logger}
}

// Execute clears the logged_in flag. The token itself stays valid until it
// expires.
func (uc *LogoutUseCase) Execute(ctx context.Context, adminID uint) error {
	if err := uc.identityRepo.SetLoggedIn(ctx, adminID, false); err != nil {
		if stderrors.Is(err, identity.ErrNotFound) {
			return errors.NewUnauthorizedError("Admin no longer exists")
		}
		uc.logger.Errorw("failed to clear logged_in flag", "error", err, "admin_id", adminID)
		return errors.NewInternalError("Failed to sign out")
	}

	uc.logger.Infow("admin logged out", "admin_id", adminID)
	return nil
}

type GetCurrentAdminUseCase struct {
	identityRepo identity.Repository
	logger       logger.Interface
}

func NewGetCurrentAdminUseCase(identityRepo identity.Repository, logger logger.Interface) *GetCurrentAdminUseCase {
	return &GetCurrentAdminUseCase{identityRepo: identityRepo, logger: logger}
}

// Execute loads the admin behind a verified token. A token whose identity was
// deleted or demoted is rejected.
func (uc *GetCurrentAdminUseCase) Execute(ctx context.Context, adminID uint) (*identity.Identity, error) {
	admin, err := uc.identityRepo.FindByID(ctx, adminID)
	if err != nil {
		if stderrors.Is(err, identity.ErrNotFound) {
			return nil, errors.NewUnauthorizedError("Admin no longer exists")
		}
		uc.logger.Errorw("failed to load admin", "error", err, "admin_id", adminID)
		return nil, errors.NewInternalError("Failed to load admin")
	}
	if !admin.IsAdmin() {
		return nil, errors.NewForbiddenError("Admin access required")
	}
	return admin, nil
}
