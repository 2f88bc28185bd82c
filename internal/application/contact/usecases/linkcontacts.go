package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

const defaultLinkBatchSize = 100

type LinkContactsCommand struct {
	// DryRun only reports what would be linked or created.
	DryRun    bool
	BatchSize int
}

type LinkContactsResult struct {
	Scanned int
	Linked  int
	Created int
	Failed  int
}

// LinkContactsUseCase attaches an identity to every stored submission that
// has none, oldest first, using the same resolution rules as live intake.
type LinkContactsUseCase struct {
	submissionRepo submission.Repository
	identityRepo   identity.Repository
	resolver       IdentityResolver
	logger         logger.Interface
}

func NewLinkContactsUseCase(
	submissionRepo submission.Repository,
	identityRepo identity.Repository,
	resolver IdentityResolver,
	logger logger.Interface,
) *LinkContactsUseCase {
	return &LinkContactsUseCase{
		submissionRepo: submissionRepo,
		identityRepo:   identityRepo,
		resolver:       resolver,
		logger:         logger,
	}
}

func (uc *LinkContactsUseCase) Execute(ctx context.Context, cmd LinkContactsCommand) (*LinkContactsResult, error) {
	batchSize := cmd.BatchSize
	if batchSize <= 0 {
		batchSize = defaultLinkBatchSize
	}

	result := &LinkContactsResult{}
	var afterID uint

	for {
		batch, err := uc.submissionRepo.ListUnlinked(ctx, afterID, batchSize)
		if err != nil {
			return result, fmt.Errorf("failed to list unlinked submissions: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		for _, s := range batch {
			afterID = s.ID
			result.Scanned++

			contact := identity.NewContact(s.Name, s.EmailOrEmpty(), s.Phone)
			if !contact.HasKey() {
				result.Failed++
				continue
			}

			if cmd.DryRun {
				if err := uc.preview(ctx, contact, result); err != nil {
					return result, err
				}
				continue
			}

			if err := uc.link(ctx, s, contact, result); err != nil {
				result.Failed++
				uc.logger.Warnw("failed to link submission", "submission_id", s.ID, "error", err)
			}
		}

		if err := ctx.Err(); err != nil {
			return result, err
		}
	}

	uc.logger.Infow("contact linking finished",
		"dry_run", cmd.DryRun,
		"scanned", result.Scanned,
		"linked", result.Linked,
		"created", result.Created,
		"failed", result.Failed,
	)

	return result, nil
}

func (uc *LinkContactsUseCase) link(ctx context.Context, s *submission.Submission, contact identity.Contact, result *LinkContactsResult) error {
	resolved, matchType, err := uc.resolver.ResolveOrCreate(ctx, contact)
	if err != nil {
		return err
	}

	previous, err := uc.submissionRepo.CountByIdentityBefore(ctx, resolved.ID, s.CreatedAt)
	if err != nil {
		return err
	}

	s.LinkIdentity(resolved.ID, matchType.String(), int(previous))
	if err := uc.submissionRepo.LinkIdentity(ctx, s); err != nil {
		return err
	}

	result.Linked++
	if matchType.IsNew() {
		result.Created++
	}
	return nil
}

// preview counts the outcome without writing anything. Identities that would
// be created by an earlier row of the same run are counted again.
func (uc *LinkContactsUseCase) preview(ctx context.Context, contact identity.Contact, result *LinkContactsResult) error {
	lookups := []struct {
		value *string
		find  func(context.Context, string) (*identity.Identity, error)
	}{
		{contact.Email, uc.identityRepo.FindByEmail},
		{contact.Phone, uc.identityRepo.FindByPhone},
	}

	for _, l := range lookups {
		if l.value == nil {
			continue
		}
		_, err := l.find(ctx, *l.value)
		if err == nil {
			result.Linked++
			return nil
		}
		if !errors.Is(err, identity.ErrNotFound) {
			return fmt.Errorf("failed to look up identity: %w", err)
		}
	}

	result.Linked++
	result.Created++
	return nil
}
