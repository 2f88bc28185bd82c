package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

func TestSampleContacts_AreValid(t *testing.T) {
	payloads := SampleContacts(12)
	require.Len(t, payloads, 12)
	for _, p := range payloads {
		_, err := p.prepare()
		assert.NoError(t, err, p.Phone)
	}
	assert.Equal(t, payloads[1].Email, payloads[2].Email)
}

func TestSeedSubmissions(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	uc := NewSeedSubmissionsUseCase(
		NewResolveIdentityUseCase(store.identities, logger.Nop()),
		NewRecordSubmissionUseCase(store.submissions, logger.Nop()),
		logger.Nop(),
	)

	payloads := SampleContacts(6)
	payloads = append(payloads, ContactPayload{Name: "No Message", Phone: "0501234567"})

	res, err := uc.Execute(ctx, SeedSubmissionsCommand{Payloads: payloads})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Created)
	assert.Equal(t, 1, res.Failed)
	// rows 3 and 6 reuse the contacts of rows 2 and 5
	assert.Equal(t, 4, res.Identities)
	assert.Equal(t, int64(4), store.countIdentities(t))

	list, total, err := store.submissions.List(ctx, submission.ListFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	for _, s := range list {
		assert.Equal(t, SeedSource, s.Metadata.Source)
		assert.NotNil(t, s.IdentityID)
	}
}

func TestSeedSubmissions_StopsOnCancelledContext(t *testing.T) {
	store := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := NewSeedSubmissionsUseCase(
		NewResolveIdentityUseCase(store.identities, logger.Nop()),
		NewRecordSubmissionUseCase(store.submissions, logger.Nop()),
		logger.Nop(),
	)

	res, err := uc.Execute(ctx, SeedSubmissionsCommand{Payloads: SampleContacts(3)})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Created)
}
