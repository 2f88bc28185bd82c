package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

func seedUnlinked(t *testing.T, store *testStore) {
	t.Helper()
	ctx := context.Background()
	rows := []*submission.Submission{
		submission.New("Dana", strPtr("dana@example.com"), "0501234567", nil, "first", submission.Metadata{Source: "legacy:leads"}),
		submission.New("Dana L", strPtr("dana@example.com"), "0501234567", nil, "second", submission.Metadata{Source: "legacy:leads"}),
		submission.New("Avi", nil, "0527654321", nil, "third", submission.Metadata{Source: "legacy:leads"}),
	}
	for _, s := range rows {
		require.NoError(t, store.submissions.Create(ctx, s))
	}
}

func TestLinkContacts_LinksEveryUnlinkedSubmission(t *testing.T) {
	store := setupTestStore(t)
	seedUnlinked(t, store)
	ctx := context.Background()

	resolver := NewResolveIdentityUseCase(store.identities, logger.Nop())
	uc := NewLinkContactsUseCase(store.submissions, store.identities, resolver, logger.Nop())

	result, err := uc.Execute(ctx, LinkContactsCommand{BatchSize: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Scanned)
	assert.Equal(t, 3, result.Linked)
	assert.Equal(t, 2, result.Created)
	assert.Zero(t, result.Failed)
	assert.Equal(t, int64(2), store.countIdentities(t))

	second, err := store.submissions.FindByID(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, second.IdentityID)
	assert.Equal(t, 1, second.PreviousMessageCount)
	assert.Equal(t, identity.MatchEmail.String(), second.MatchType)

	remaining, err := store.submissions.ListUnlinked(ctx, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestLinkContacts_CountsOnlyEarlierMessages(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	resolver := NewResolveIdentityUseCase(store.identities, logger.Nop())
	contact, _, err := resolver.ResolveOrCreate(ctx, identity.NewContact("Dana", "dana@example.com", "0501234567"))
	require.NoError(t, err)

	recent := submission.New("Dana", strPtr("dana@example.com"), "0501234567", nil, "new form", submission.Metadata{Source: "/contact"})
	recent.CreatedAt = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	recent.LinkIdentity(contact.ID, identity.MatchNew.String(), 0)
	require.NoError(t, store.submissions.Create(ctx, recent))

	legacy := submission.New("Dana", strPtr("dana@example.com"), "0501234567", nil, "old lead", submission.Metadata{Source: "legacy:leads"})
	legacy.CreatedAt = time.Date(2023, 1, 15, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.submissions.Create(ctx, legacy))

	uc := NewLinkContactsUseCase(store.submissions, store.identities, resolver, logger.Nop())
	result, err := uc.Execute(ctx, LinkContactsCommand{BatchSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Linked)

	linked, err := store.submissions.FindByID(ctx, legacy.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.IdentityID)
	assert.Equal(t, contact.ID, *linked.IdentityID)
	assert.Zero(t, linked.PreviousMessageCount)
}

func TestLinkContacts_DryRunWritesNothing(t *testing.T) {
	store := setupTestStore(t)
	seedUnlinked(t, store)
	ctx := context.Background()

	resolver := NewResolveIdentityUseCase(store.identities, logger.Nop())
	uc := NewLinkContactsUseCase(store.submissions, store.identities, resolver, logger.Nop())

	result, err := uc.Execute(ctx, LinkContactsCommand{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Scanned)
	assert.Equal(t, 3, result.Linked)
	assert.Equal(t, 3, result.Created)
	assert.Zero(t, store.countIdentities(t))

	remaining, err := store.submissions.ListUnlinked(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, remaining, 3)
}

func TestDuplicateReport(t *testing.T) {
	groups := []identity.DuplicateGroup{{Column: "email", Value: "a@example.com", IDs: []uint{1, 4}}}
	repo := &mockIdentityRepository{
		FindDuplicatesFunc: func(ctx context.Context) ([]identity.DuplicateGroup, error) {
			return groups, nil
		},
	}

	got, err := NewDuplicateReportUseCase(repo, logger.Nop()).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, groups, got)
}
