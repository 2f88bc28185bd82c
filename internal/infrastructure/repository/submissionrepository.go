package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/infrastructure/persistence/mappers"
	"github.com/keshevplus/leadhub/internal/infrastructure/persistence/models"
	"github.com/keshevplus/leadhub/internal/shared/constants"
	"github.com/keshevplus/leadhub/internal/shared/db"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

// allowedSubmissionUpdateColumns is the patch allow-list.
var allowedSubmissionUpdateColumns = map[string]bool{
	"name":    true,
	"email":   true,
	"phone":   true,
	"subject": true,
	"message": true,
	"is_read": true,
}

// submissionSearchColumns are matched by ListFilter.Text.
var submissionSearchColumns = []string{"name", "email", "phone", "subject"}

// SubmissionRepository implements submission.Repository with GORM.
type SubmissionRepository struct {
	db      *gorm.DB
	timeout time.Duration
	mapper  mappers.SubmissionMapper
	logger  logger.Interface
}

// NewSubmissionRepository creates a new submission repository. Every call is
// bounded by timeout.
func NewSubmissionRepository(gdb *gorm.DB, timeout time.Duration, logger logger.Interface) *SubmissionRepository {
	return &SubmissionRepository{
		db:      gdb,
		timeout: timeout,
		mapper:  mappers.NewSubmissionMapper(),
		logger:  logger,
	}
}

// Create inserts a submission.
func (r *SubmissionRepository) Create(ctx context.Context, s *submission.Submission) error {
	tx, cancel := db.WithDeadline(ctx, r.db, r.timeout)
	defer cancel()

	model := r.mapper.ToModel(s)
	if err := tx.Omit("Identity").Create(model).Error; err != nil {
		r.logger.Errorw("failed to create submission", "message_id", s.MessageID, "error", err)
		return fmt.Errorf("failed to create submission: %w", err)
	}

	s.ID = model.ID
	s.CreatedAt = model.CreatedAt
	s.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID retrieves a submission by ID.
func (r *SubmissionRepository) FindByID(ctx context.Context, id uint) (*submission.Submission, error) {
	tx, cancel := db.WithDeadline(ctx, r.db, r.timeout)
	defer cancel()

	var model models.SubmissionModel
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, submission.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	return r.mapper.ToEntity(&model), nil
}

// List returns one page of submissions, newest first.
func (r *SubmissionRepository) List(ctx context.Context, filter submission.ListFilter) ([]*submission.Submission, int64, error) {
	tx, cancel := db.WithDeadline(ctx, r.db, r.timeout)
	defer cancel()

	query := tx.Model(&models.SubmissionModel{}).
		Scopes(db.ContainsFold(filter.Text, submissionSearchColumns...))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = constants.DefaultPage
	}
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}

	var list []*models.SubmissionModel
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Scopes(db.Paginate(page, pageSize)).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list submissions: %w", err)
	}

	return r.mapper.ToEntities(list), total, nil
}

// Update writes the named allow-listed columns of s.
func (r *SubmissionRepository) Update(ctx context.Context, s *submission.Submission, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	for _, col := range columns {
		if !allowedSubmissionUpdateColumns[col] {
			return fmt.Errorf("column %q is not updatable", col)
		}
	}

	tx, cancel := db.WithDeadline(ctx, r.db, r.timeout)
	defer cancel()

	model := r.mapper.ToModel(s)
	model.UpdatedAt = time.Now()
	result := tx.Model(model).Select(append(columns, "updated_at")).Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update submission: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return submission.ErrNotFound
	}
	s.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete hard-deletes a submission.
func (r *SubmissionRepository) Delete(ctx context.Context, id uint) error {
	tx, cancel := db.WithDeadline(ctx, r.db, r.timeout)
	defer cancel()

	result := tx.Delete(&models.SubmissionModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete submission: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return submission.ErrNotFound
	}
	return nil
}

// MarkRead sets is_read. An already read row is left as is.
func (r *SubmissionRepository) MarkRead(ctx context.Context, id uint) error {
	tx, cancel := db.WithDeadline(ctx, r.db, r.timeout)
	defer cancel()

	result := tx.Model(&models.SubmissionModel{}).
		Where("id = ? AND is_read = ?", id, false).
		Updates(map[string]interface{}{"is_read": true, "updated_at": time.Now()})
	if result.Error != nil {
		return fmt.Errorf("failed to mark submission read: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := tx.Model(&models.SubmissionModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check submission: %w", err)
	}
	if count == 0 {
		return submission.ErrNotFound
	}
	return nil
}

// CountByIdentity counts submissions linked to identityID.
func (r *SubmissionRepository) CountByIdentity(ctx context.Context, identityID uint) (int64, error) {
	tx, cancel := db.WithDeadline(ctx, r.db, r.timeout)
	defer cancel()

	var count int64
	if err := tx.Model(&models.SubmissionModel{}).
		Where("identity_id = ?", identityID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count submissions by identity: %w", err)
	}
	return count, nil
}

// CountByIdentityBefore counts submissions linked to identityID with
// created_at earlier than before.
func (r *SubmissionRepository) CountByIdentityBefore(ctx context.Context, identityID uint, before time.Time) (int64, error) {
	tx, cancel := db.WithDeadline(ctx, r.db, r.timeout)
	defer cancel()

	var count int64
	if err := tx.Model(&models.SubmissionModel{}).
		Where("identity_id = ? AND created_at < ?", identityID, before).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count earlier submissions by identity: %w", err)
	}
	return count, nil
}

// CountUnread counts unread submissions.
func (r *SubmissionRepository) CountUnread(ctx context.Context) (int64, error) {
	tx, cancel := db.WithDeadline(ctx, r.db, r.timeout)
	defer cancel()

	var count int64
	if err := tx.Model(&models.SubmissionModel{}).
		Where("is_read = ?", false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread submissions: %w", err)
	}
	return count, nil
}

// ListUnlinked returns submissions without an identity, oldest first.
func (r *SubmissionRepository) ListUnlinked(ctx context.Context, afterID uint, limit int) ([]*submission.Submission, error) {
	tx, cancel := db.WithDeadline(ctx, r.db, r.timeout)
	defer cancel()

	var list []*models.SubmissionModel
	if err := tx.
		Where("identity_id IS NULL AND id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list unlinked submissions: %w", err)
	}
	return r.mapper.ToEntities(list), nil
}

// LinkIdentity persists the identity link fields of s.
func (r *SubmissionRepository) LinkIdentity(ctx context.Context, s *submission.Submission) error {
	tx, cancel := db.WithDeadline(ctx, r.db, r.timeout)
	defer cancel()

	updates := map[string]interface{}{
		"identity_id":            s.IdentityID,
		"previous_message_count": s.PreviousMessageCount,
		"match_type":             s.MatchType,
		"updated_at":             time.Now(),
	}
	result := tx.Model(&models.SubmissionModel{}).Where("id = ?", s.ID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to link submission: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return submission.ErrNotFound
	}
	return nil
}
