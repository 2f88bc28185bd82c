package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/shared/errors"
	"github.com/keshevplus/leadhub/internal/shared/logger"
	"github.com/keshevplus/leadhub/internal/shared/utils"
)

type CreateAdminCommand struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Username string `json:"username" validate:"max=255"`
	Name     string `json:"name" validate:"max=255"`
	Password string `json:"password"`
}

type CreateAdminResult struct {
	Admin *identity.Identity
	// Promoted is true when an existing contact became an admin.
	Promoted bool
}

type CreateAdminUseCase struct {
	identityRepo identity.Repository
	hasher       PasswordHasher
	txManager    TransactionRunner
	logger       logger.Interface
}

func NewCreateAdminUseCase(
	identityRepo identity.Repository,
	hasher PasswordHasher,
	txManager TransactionRunner,
	logger logger.Interface,
) *CreateAdminUseCase {
	return &CreateAdminUseCase{
		identityRepo: identityRepo,
		hasher:       hasher,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute creates an admin, or promotes the identity that already owns the
// email. Contact history linked to that identity is kept.
func (uc *CreateAdminUseCase) Execute(ctx context.Context, cmd CreateAdminCommand) (*CreateAdminResult, error) {
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	cmd.Username = strings.TrimSpace(cmd.Username)
	cmd.Name = strings.TrimSpace(cmd.Name)
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}
	if err := validatePassword(cmd.Password); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, err
	}

	existing, err := uc.identityRepo.FindByEmail(ctx, cmd.Email)
	if err != nil && !stderrors.Is(err, identity.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up identity: %w", err)
	}

	if existing != nil {
		return uc.promote(ctx, existing, cmd, hash)
	}

	email := cmd.Email
	admin := &identity.Identity{
		Name:         cmd.Name,
		Email:        &email,
		Username:     cmd.Username,
		Role:         identity.RoleAdmin,
		PasswordHash: &hash,
	}
	if admin.Name == "" {
		admin.Name = admin.Username
	}
	if admin.Username == "" {
		admin.Username = identity.DefaultUsername(admin.Name, admin.Email, nil)
	}

	if err := uc.identityRepo.Create(ctx, admin); err != nil {
		if stderrors.Is(err, identity.ErrDuplicate) {
			return nil, errors.NewConflictError("An identity with this email already exists")
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	uc.logger.Infow("admin created", "admin_id", admin.ID, "username", admin.Username)
	return &CreateAdminResult{Admin: admin}, nil
}

func (uc *CreateAdminUseCase) promote(ctx context.Context, existing *identity.Identity, cmd CreateAdminCommand, hash string) (*CreateAdminResult, error) {
	columns := []string{"role"}
	existing.Role = identity.RoleAdmin
	if cmd.Username != "" {
		existing.Username = cmd.Username
		columns = append(columns, "username")
	}
	if cmd.Name != "" {
		existing.Name = cmd.Name
		columns = append(columns, "name")
	}

	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.identityRepo.UpdateFields(ctx, existing, columns...); err != nil {
			return fmt.Errorf("failed to promote identity: %w", err)
		}
		if err := uc.identityRepo.SetPasswordHash(ctx, existing.ID, hash); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	existing.PasswordHash = &hash

	uc.logger.Infow("identity promoted to admin", "admin_id", existing.ID)
	return &CreateAdminResult{Admin: existing, Promoted: true}, nil
}

type SetPasswordCommand struct {
	Email    string
	Password string
}

type SetPasswordUseCase struct {
	identityRepo identity.Repository
	hasher       PasswordHasher
	logger       logger.Interface
}

func NewSetPasswordUseCase(identityRepo identity.Repository, hasher PasswordHasher, logger logger.Interface) *SetPasswordUseCase {
	return &SetPasswordUseCase{identityRepo: identityRepo, hasher: hasher, logger: logger}
}

// Execute replaces an admin's password without a reset token.
func (uc *SetPasswordUseCase) Execute(ctx context.Context, cmd SetPasswordCommand) error {
	if err := validatePassword(cmd.Password); err != nil {
		return err
	}

	admin, err := uc.identityRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(cmd.Email)))
	if err != nil {
		if stderrors.Is(err, identity.ErrNotFound) {
			return errors.NewNotFoundError("No admin with this email")
		}
		return fmt.Errorf("failed to look up admin: %w", err)
	}
	if !admin.IsAdmin() {
		return errors.NewNotFoundError("No admin with this email")
	}

	if err := setPassword(ctx, uc.identityRepo, uc.hasher, admin.ID, cmd.Password); err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}

	uc.logger.Infow("admin password set", "admin_id", admin.ID)
	return nil
}
