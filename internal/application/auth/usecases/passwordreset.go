package usecases

import (
	"context"
	stderrors "errors"
	"net/url"
	"strings"

	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/infrastructure/auth"
	"github.com/keshevplus/leadhub/internal/shared/errors"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

// MinPasswordLength applies to every admin password.
const MinPasswordLength = 8

type RequestPasswordResetCommand struct {
	Email string
}

type RequestPasswordResetUseCase struct {
	identityRepo identity.Repository
	tokens       TokenService
	mailer       ResetMailer
	frontendURL  string
	logger       logger.Interface
}

func NewRequestPasswordResetUseCase(
	identityRepo identity.Repository,
	tokens TokenService,
	mailer ResetMailer,
	frontendURL string,
	logger logger.Interface,
) *RequestPasswordResetUseCase {
	return &RequestPasswordResetUseCase{
		identityRepo: identityRepo,
		tokens:       tokens,
		mailer:       mailer,
		frontendURL:  strings.TrimRight(frontendURL, "/"),
		logger:       logger,
	}
}

// Execute emails a reset link when the address belongs to an admin. It
// returns nil for unknown addresses so callers cannot probe for accounts.
func (uc *RequestPasswordResetUseCase) Execute(ctx context.Context, cmd RequestPasswordResetCommand) error {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" {
		return nil
	}

	admin, err := uc.identityRepo.FindByEmail(ctx, email)
	if err != nil {
		if !stderrors.Is(err, identity.ErrNotFound) {
			uc.logger.Errorw("failed to look up admin for password reset", "error", err)
		}
		return nil
	}
	if !admin.IsAdmin() {
		uc.logger.Infow("password reset requested for non-admin identity", "identity_id", admin.ID)
		return nil
	}

	token, _, err := uc.tokens.GenerateReset(admin.ID, admin.Role.String())
	if err != nil {
		uc.logger.Errorw("failed to issue reset token", "error", err, "admin_id", admin.ID)
		return nil
	}

	if err := uc.mailer.SendPasswordReset(ctx, email, uc.ResetURL(token)); err != nil {
		uc.logger.Warnw("failed to send password reset email", "error", err, "admin_id", admin.ID)
		return nil
	}

	uc.logger.Infow("password reset email sent", "admin_id", admin.ID)
	return nil
}

// ResetURL builds the frontend link carrying token.
func (uc *RequestPasswordResetUseCase) ResetURL(token string) string {
	return uc.frontendURL + "/reset-password?token=" + url.QueryEscape(token)
}

type ResetPasswordCommand struct {
	Token    string
	Password string
}

type ResetPasswordUseCase struct {
	identityRepo identity.Repository
	hasher       PasswordHasher
	tokens       TokenService
	logger       logger.Interface
}

func NewResetPasswordUseCase(
	identityRepo identity.Repository,
	hasher PasswordHasher,
	tokens TokenService,
	logger logger.Interface,
) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{
		identityRepo: identityRepo,
		hasher:       hasher,
		tokens:       tokens,
		logger:       logger,
	}
}

func (uc *ResetPasswordUseCase) Execute(ctx context.Context, cmd ResetPasswordCommand) error {
	if err := validatePassword(cmd.Password); err != nil {
		return err
	}
	if cmd.Token == "" {
		return errors.NewValidationError("Reset token is required")
	}

	claims, err := uc.tokens.Verify(cmd.Token, auth.TokenTypeReset)
	if err != nil {
		uc.logger.Infow("password reset token rejected", "error", err)
		return errors.NewBadRequestError("Invalid or expired reset token")
	}

	admin, err := uc.identityRepo.FindByID(ctx, claims.UserID)
	if err != nil || !admin.IsAdmin() {
		return errors.NewBadRequestError("Invalid or expired reset token")
	}

	if err := setPassword(ctx, uc.identityRepo, uc.hasher, admin.ID, cmd.Password); err != nil {
		uc.logger.Errorw("failed to store new password", "error", err, "admin_id", admin.ID)
		return errors.NewInternalError("Failed to reset password")
	}

	uc.logger.Infow("admin password reset", "admin_id", admin.ID)
	return nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return errors.NewFieldValidationError(errors.FieldError{
			Field:   "password",
			Message: "password must be at least 8 characters long",
		})
	}
	return nil
}

func setPassword(ctx context.Context, repo identity.Repository, hasher PasswordHasher, id uint, password string) error {
	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}
	return repo.SetPasswordHash(ctx, id, hash)
}
