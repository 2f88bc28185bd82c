package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/domain/submission"
	apperrors "github.com/keshevplus/leadhub/internal/shared/errors"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

func TestRecordSubmission_LinksIdentityAndCount(t *testing.T) {
	repo := &mockSubmissionRepository{
		CountByIdentityFunc: func(ctx context.Context, identityID uint) (int64, error) {
			assert.Equal(t, uint(7), identityID)
			return 3, nil
		},
	}
	uc := NewRecordSubmissionUseCase(repo, logger.Nop())

	result, err := uc.Execute(context.Background(), RecordSubmissionCommand{
		Payload:   validPayload(),
		Metadata:  submission.Metadata{ClientIP: "10.0.0.1", Locale: "he"},
		Identity:  &identity.Identity{ID: 7},
		MatchType: identity.MatchEmail,
	})
	require.NoError(t, err)

	s := result.Submission
	assert.False(t, result.IdentityCreated)
	require.NotNil(t, s.IdentityID)
	assert.Equal(t, uint(7), *s.IdentityID)
	assert.Equal(t, 3, s.PreviousMessageCount)
	assert.Equal(t, "email", s.MatchType)
	assert.Equal(t, "dana@example.com", s.EmailOrEmpty())
	assert.Equal(t, "0501234567", s.Phone)
	assert.Equal(t, "10.0.0.1", s.Metadata.ClientIP)
	assert.NotEmpty(t, s.MessageID)
	assert.Len(t, repo.created, 1)
}

func TestRecordSubmission_WithoutIdentity(t *testing.T) {
	repo := &mockSubmissionRepository{
		CountByIdentityFunc: func(ctx context.Context, identityID uint) (int64, error) {
			t.Fatal("count must not run without an identity")
			return 0, nil
		},
	}
	uc := NewRecordSubmissionUseCase(repo, logger.Nop())

	payload := validPayload()
	payload.Email = ""
	payload.Subject = "  "

	result, err := uc.Execute(context.Background(), RecordSubmissionCommand{Payload: payload})
	require.NoError(t, err)
	assert.Nil(t, result.Submission.IdentityID)
	assert.Nil(t, result.Submission.Email)
	assert.Nil(t, result.Submission.Subject)
	assert.Equal(t, 0, result.Submission.PreviousMessageCount)
}

func TestRecordSubmission_NewIdentityFlag(t *testing.T) {
	uc := NewRecordSubmissionUseCase(&mockSubmissionRepository{}, logger.Nop())

	result, err := uc.Execute(context.Background(), RecordSubmissionCommand{
		Payload:   validPayload(),
		Identity:  &identity.Identity{ID: 1},
		MatchType: identity.MatchNew,
	})
	require.NoError(t, err)
	assert.True(t, result.IdentityCreated)
}

func TestRecordSubmission_CountFailureIsIgnored(t *testing.T) {
	repo := &mockSubmissionRepository{
		CountByIdentityFunc: func(ctx context.Context, identityID uint) (int64, error) {
			return 0, errors.New("timeout")
		},
	}
	uc := NewRecordSubmissionUseCase(repo, logger.Nop())

	result, err := uc.Execute(context.Background(), RecordSubmissionCommand{
		Payload:   validPayload(),
		Identity:  &identity.Identity{ID: 2},
		MatchType: identity.MatchPhone,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Submission.PreviousMessageCount)
	require.NotNil(t, result.Submission.IdentityID)
}

func TestRecordSubmission_ValidationBeforeStore(t *testing.T) {
	repo := &mockSubmissionRepository{}
	uc := NewRecordSubmissionUseCase(repo, logger.Nop())

	payload := validPayload()
	payload.Message = "<p> </p>"
	payload.Phone = "12345"

	_, err := uc.Execute(context.Background(), RecordSubmissionCommand{Payload: payload})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	assert.Len(t, appErr.Fields, 2)
	assert.Empty(t, repo.created)
}

func TestRecordSubmission_StoreFailure(t *testing.T) {
	repo := &mockSubmissionRepository{
		CreateFunc: func(ctx context.Context, s *submission.Submission) error {
			return errors.New("database is down")
		},
	}
	uc := NewRecordSubmissionUseCase(repo, logger.Nop())

	_, err := uc.Execute(context.Background(), RecordSubmissionCommand{Payload: validPayload()})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
	assert.NotContains(t, appErr.Error(), "database is down")
}
