package identity

import "context"

// Repository defines persistence operations for identities.
type Repository interface {
	// Create inserts a new identity and sets its ID. A unique index
	// violation is reported as ErrDuplicate.
	Create(ctx context.Context, i *Identity) error

	// FindByID returns ErrNotFound when no row matches.
	FindByID(ctx context.Context, id uint) (*Identity, error)

	// FindByEmail matches the normalized email exactly.
	FindByEmail(ctx context.Context, email string) (*Identity, error)

	// FindByPhone matches the normalized phone exactly.
	FindByPhone(ctx context.Context, phone string) (*Identity, error)

	// UpdateFields writes only the named columns of i.
	UpdateFields(ctx context.Context, i *Identity, columns ...string) error

	// SetLoggedIn flips the logged_in flag.
	SetLoggedIn(ctx context.Context, id uint, loggedIn bool) error

	// SetPasswordHash replaces the stored bcrypt hash.
	SetPasswordHash(ctx context.Context, id uint, hash string) error

	// FindDuplicates groups identities sharing an email or phone value.
	FindDuplicates(ctx context.Context) ([]DuplicateGroup, error)
}

// DuplicateGroup lists identities that share one email or phone value.
type DuplicateGroup struct {
	Column string
	Value  string
	IDs    []uint
}
