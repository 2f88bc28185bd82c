package submission

import (
	"context"
	"time"
)

// Repository defines persistence operations for submissions.
type Repository interface {
	// Create inserts s and sets its ID and timestamps.
	Create(ctx context.Context, s *Submission) error

	// FindByID returns ErrNotFound when no row matches.
	FindByID(ctx context.Context, id uint) (*Submission, error)

	// List returns one page, newest first, and the total match count.
	List(ctx context.Context, filter ListFilter) ([]*Submission, int64, error)

	// Update writes only the named columns of s.
	Update(ctx context.Context, s *Submission, columns ...string) error

	// Delete removes the row; ErrNotFound when it does not exist.
	Delete(ctx context.Context, id uint) error

	// MarkRead sets is_read. Marking a read row again is not an error.
	MarkRead(ctx context.Context, id uint) error

	// CountByIdentity counts submissions linked to an identity.
	CountByIdentity(ctx context.Context, identityID uint) (int64, error)

	// CountByIdentityBefore counts submissions linked to an identity that were
	// created strictly before the given time.
	CountByIdentityBefore(ctx context.Context, identityID uint, before time.Time) (int64, error)

	// CountUnread counts submissions not yet read.
	CountUnread(ctx context.Context) (int64, error)

	// ListUnlinked returns up to limit submissions without an identity,
	// oldest first, with ID greater than afterID.
	ListUnlinked(ctx context.Context, afterID uint, limit int) ([]*Submission, error)

	// LinkIdentity sets identity_id, match_type and previous_message_count.
	LinkIdentity(ctx context.Context, s *Submission) error
}

// ListFilter selects a page of submissions. Text matches name, email, phone
// and subject case-insensitively.
type ListFilter struct {
	Text     string
	Page     int
	PageSize int
}
