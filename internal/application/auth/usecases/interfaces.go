package usecases

import (
	"context"
	"time"

	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/infrastructure/auth"
)

// TransactionRunner runs fn in one database transaction. Repositories called
// with the derived context join it.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PasswordHasher hashes and verifies admin passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
	VerifyNothing(password string) error
}

// TokenService issues and verifies admin tokens.
type TokenService interface {
	GenerateAccess(userID uint, role string) (string, time.Time, error)
	GenerateReset(userID uint, role string) (string, time.Time, error)
	Verify(tokenString string, want auth.TokenType) (*auth.Claims, error)
}

// ResetMailer delivers the password-reset link.
type ResetMailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error)
}

type LogoutExecutor interface {
	Execute(ctx context.Context, adminID uint) error
}

type GetCurrentAdminExecutor interface {
	Execute(ctx context.Context, adminID uint) (*identity.Identity, error)
}

type RequestPasswordResetExecutor interface {
	Execute(ctx context.Context, cmd RequestPasswordResetCommand) error
}

type ResetPasswordExecutor interface {
	Execute(ctx context.Context, cmd ResetPasswordCommand) error
}
