package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/infrastructure/persistence/models"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

// barrierIdentityRepository holds every Create until all callers have passed
// their lookups, so concurrent first submissions both miss and both insert.
type barrierIdentityRepository struct {
	identity.Repository
	arrived sync.WaitGroup
	release chan struct{}
}

func newBarrierIdentityRepository(inner identity.Repository, parties int) *barrierIdentityRepository {
	r := &barrierIdentityRepository{Repository: inner, release: make(chan struct{})}
	r.arrived.Add(parties)
	go func() {
		r.arrived.Wait()
		close(r.release)
	}()
	return r
}

func (r *barrierIdentityRepository) Create(ctx context.Context, i *identity.Identity) error {
	r.arrived.Done()
	<-r.release
	return r.Repository.Create(ctx, i)
}

func TestSubmitContact_ConcurrentNewContactCreatesOneIdentity(t *testing.T) {
	store := setupTestStore(t)
	const parties = 2

	repo := newBarrierIdentityRepository(store.identities, parties)
	resolver := NewResolveIdentityUseCase(repo, logger.Nop())
	recorder := NewRecordSubmissionUseCase(store.submissions, logger.Nop())
	uc := NewSubmitContactUseCase(resolver, recorder, &mockNotifier{}, logger.Nop())

	var wg sync.WaitGroup
	results := make([]*SubmitContactResult, parties)
	errs := make([]error, parties)

	for i := 0; i < parties; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload := validPayload()
			payload.Email = "race@example.com"
			results[i], errs[i] = uc.Execute(context.Background(), SubmitContactCommand{Payload: payload})
		}(i)
	}
	wg.Wait()

	for i := 0; i < parties; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i].Identity)
	}

	assert.Equal(t, int64(1), store.countIdentities(t))

	var submissions []models.SubmissionModel
	require.NoError(t, store.db.Find(&submissions).Error)
	require.Len(t, submissions, 2)
	for _, s := range submissions {
		require.NotNil(t, s.IdentityID)
		assert.Equal(t, results[0].Identity.ID, *s.IdentityID)
	}

	matchTypes := []identity.MatchType{results[0].MatchType, results[1].MatchType}
	assert.ElementsMatch(t, []identity.MatchType{identity.MatchNew, identity.MatchEmailConflict}, matchTypes)
}
