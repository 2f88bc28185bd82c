package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

// ErrNoContactKey is returned when a contact has neither email nor phone.
var ErrNoContactKey = errors.New("contact has no email or phone")

type ResolveIdentityCommand struct {
	Name  string
	Email string
	Phone string
}

type ResolveIdentityResult struct {
	Identity  *identity.Identity
	MatchType identity.MatchType
}

// ResolveIdentityUseCase finds the identity a contact belongs to, creating one
// when nothing matches. Email is the stronger signal and is tried first.
// Concurrent first submissions from the same contact are reconciled through
// the unique indexes: the losing insert re-reads the winner's row.
type ResolveIdentityUseCase struct {
	identityRepo identity.Repository
	logger       logger.Interface
}

func NewResolveIdentityUseCase(identityRepo identity.Repository, logger logger.Interface) *ResolveIdentityUseCase {
	return &ResolveIdentityUseCase{
		identityRepo: identityRepo,
		logger:       logger,
	}
}

func (uc *ResolveIdentityUseCase) Execute(ctx context.Context, cmd ResolveIdentityCommand) (*ResolveIdentityResult, error) {
	found, matchType, err := uc.ResolveOrCreate(ctx, identity.NewContact(cmd.Name, cmd.Email, cmd.Phone))
	if err != nil {
		return nil, err
	}
	return &ResolveIdentityResult{Identity: found, MatchType: matchType}, nil
}

// ResolveOrCreate returns the matching identity and how it was matched.
func (uc *ResolveIdentityUseCase) ResolveOrCreate(ctx context.Context, contact identity.Contact) (*identity.Identity, identity.MatchType, error) {
	c := contact.Normalize()
	if !c.HasKey() {
		return nil, "", ErrNoContactKey
	}

	found, matchType, err := uc.lookup(ctx, c, identity.MatchEmail, identity.MatchPhone)
	if err != nil {
		return nil, "", err
	}
	if found != nil {
		return uc.backfill(ctx, found, c), matchType, nil
	}

	created := identity.NewContactIdentity(c)
	err = uc.identityRepo.Create(ctx, created)
	if err == nil {
		uc.logger.Infow("contact identity created", "identity_id", created.ID)
		return created, identity.MatchNew, nil
	}
	if !errors.Is(err, identity.ErrDuplicate) {
		uc.logger.Errorw("failed to create contact identity", "error", err)
		return nil, "", fmt.Errorf("failed to create identity: %w", err)
	}

	// Another request inserted the same email or phone between our lookup and
	// insert. Its row is committed now, so read it back.
	uc.logger.Infow("identity insert conflicted, re-reading existing row")

	found, matchType, err = uc.lookup(ctx, c, identity.MatchEmailConflict, identity.MatchPhoneConflict)
	if err != nil {
		return nil, "", err
	}
	if found == nil {
		return nil, "", fmt.Errorf("identity insert conflicted but no matching row was found: %w", identity.ErrDuplicate)
	}
	return uc.backfill(ctx, found, c), matchType, nil
}

// lookup tries email, then phone. It returns nil without error when neither
// matches.
func (uc *ResolveIdentityUseCase) lookup(ctx context.Context, c identity.Contact, byEmail, byPhone identity.MatchType) (*identity.Identity, identity.MatchType, error) {
	if c.Email != nil {
		found, err := uc.identityRepo.FindByEmail(ctx, *c.Email)
		if err == nil {
			return found, byEmail, nil
		}
		if !errors.Is(err, identity.ErrNotFound) {
			uc.logger.Errorw("failed to look up identity by email", "error", err)
			return nil, "", fmt.Errorf("failed to look up identity by email: %w", err)
		}
	}

	if c.Phone != nil {
		found, err := uc.identityRepo.FindByPhone(ctx, *c.Phone)
		if err == nil {
			return found, byPhone, nil
		}
		if !errors.Is(err, identity.ErrNotFound) {
			uc.logger.Errorw("failed to look up identity by phone", "error", err)
			return nil, "", fmt.Errorf("failed to look up identity by phone: %w", err)
		}
	}

	return nil, "", nil
}

// backfill fills empty fields of found from c. Failures are logged and the
// stored identity is returned unchanged.
func (uc *ResolveIdentityUseCase) backfill(ctx context.Context, found *identity.Identity, c identity.Contact) *identity.Identity {
	updated := *found
	columns := updated.Backfill(c)
	if len(columns) == 0 {
		return found
	}

	if err := uc.identityRepo.UpdateFields(ctx, &updated, columns...); err != nil {
		uc.logger.Warnw("failed to backfill identity",
			"identity_id", found.ID,
			"columns", columns,
			"error", err,
		)
		return found
	}

	uc.logger.Infow("identity backfilled", "identity_id", found.ID, "columns", columns)
	return &updated
}
