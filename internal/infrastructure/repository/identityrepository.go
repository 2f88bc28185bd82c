package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/infrastructure/database"
	"github.com/keshevplus/leadhub/internal/infrastructure/persistence/mappers"
	"github.com/keshevplus/leadhub/internal/infrastructure/persistence/models"
	"github.com/keshevplus/leadhub/internal/shared/db"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

// allowedIdentityUpdateColumns are the columns UpdateFields may write.
var allowedIdentityUpdateColumns = map[string]bool{
	"name":     true,
	"email":    true,
	"phone":    true,
	"username": true,
	"role":     true,
}

// IdentityRepository implements identity.Repository with GORM.
type IdentityRepository struct {
	db      *gorm.DB
	timeout time.Duration
	mapper  mappers.IdentityMapper
	logger  logger.Interface
}

// NewIdentityRepository creates a new identity repository. Every call is
// bounded by timeout.
func NewIdentityRepository(gdb *gorm.DB, timeout time.Duration, logger logger.Interface) *IdentityRepository {
	return &IdentityRepository{
		db:      gdb,
		timeout: timeout,
		mapper:  mappers.NewIdentityMapper(),
		logger:  logger,
	}
}

// Create inserts a new identity.
func (r *IdentityRepository) Create(ctx context.Context, i *identity.Identity) error {
	tx, cancel := db.WithDeadline(ctx, r.db, r.timeout)
	defer cancel()

	model := r.mapper.ToModel(i)
	if err := tx.Create(model).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return identity.ErrDuplicate
		}
		r.logger.Errorw("failed to create identity", "error", err)
		return fmt.Errorf("failed to create identity: %w", err)
	}

	i.ID = model.ID
	i.CreatedAt = model.CreatedAt
	i.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID retrieves an identity by ID.
func (r *IdentityRepository) FindByID(ctx context.Context, id uint) (*identity.Identity, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail retrieves an identity by normalized email.
func (r *IdentityRepository) FindByEmail(ctx context.Context, email string) (*identity.Identity, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByPhone retrieves an identity by normalized phone.
func (r *IdentityRepository) FindByPhone(ctx context.Context, phone string) (*identity.Identity, error) {
	return r.findOne(ctx, "phone = ?", phone)
}

func (r *IdentityRepository) findOne(ctx context.Context, query string, arg interface{}) (*identity.Identity, error) {
	tx, cancel := db.WithDeadline(ctx, r.db, r.timeout)
	defer cancel()

	var model models.IdentityModel
	if err := tx.Where(query, arg).Order("id ASC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, identity.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find identity: %w", err)
	}
	return r.mapper.ToEntity(&model), nil
}

// UpdateFields writes the named columns of i and bumps updated_at.
func (r *IdentityRepository) UpdateFields(ctx context.Context, i *identity.Identity, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	for _, col := range columns {
		if !allowedIdentityUpdateColumns[col] {
			return fmt.Errorf("column %q is not updatable", col)
		}
	}

	tx, cancel := db.WithDeadline(ctx, r.db, r.timeout)
	defer cancel()

	model := r.mapper.ToModel(i)
	model.UpdatedAt = time.Now()
	result := tx.Model(model).Select(append(columns, "updated_at")).Updates(model)
	if result.Error != nil {
		if database.IsUniqueViolation(result.Error) {
			return identity.ErrDuplicate
		}
		return fmt.Errorf("failed to update identity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return identity.ErrNotFound
	}
	i.UpdatedAt = model.UpdatedAt
	return nil
}

// SetLoggedIn updates the logged_in flag.
func (r *IdentityRepository) SetLoggedIn(ctx context.Context, id uint, loggedIn bool) error {
	return r.updateColumn(ctx, id, "logged_in", loggedIn)
}

// SetPasswordHash replaces the password hash.
func (r *IdentityRepository) SetPasswordHash(ctx context.Context, id uint, hash string) error {
	return r.updateColumn(ctx, id, "password_hash", hash)
}

func (r *IdentityRepository) updateColumn(ctx context.Context, id uint, column string, value interface{}) error {
	tx, cancel := db.WithDeadline(ctx, r.db, r.timeout)
	defer cancel()

	result := tx.Model(&models.IdentityModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		column:       value,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update identity %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return identity.ErrNotFound
	}
	return nil
}

// FindDuplicates reports email and phone values shared by more than one
// identity, lowest ID first in each group.
func (r *IdentityRepository) FindDuplicates(ctx context.Context) ([]identity.DuplicateGroup, error) {
	tx, cancel := db.WithDeadline(ctx, r.db, r.timeout)
	defer cancel()

	var groups []identity.DuplicateGroup
	for _, column := range []string{"email", "phone"} {
		var values []string
		if err := tx.Model(&models.IdentityModel{}).
			Where(column+" IS NOT NULL").
			Group(column).
			Having("COUNT(*) > 1").
			Order(column).
			Pluck(column, &values).Error; err != nil {
			return nil, fmt.Errorf("failed to group identities by %s: %w", column, err)
		}

		for _, value := range values {
			var ids []uint
			if err := tx.Model(&models.IdentityModel{}).
				Where(column+" = ?", value).
				Order("id ASC").
				Pluck("id", &ids).Error; err != nil {
				return nil, fmt.Errorf("failed to list identities for %s: %w", column, err)
			}
			groups = append(groups, identity.DuplicateGroup{Column: column, Value: value, IDs: ids})
		}
	}
	return groups, nil
}
