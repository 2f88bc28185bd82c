package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshevplus/leadhub/internal/application/notification"
	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/domain/submission"
	apperrors "github.com/keshevplus/leadhub/internal/shared/errors"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

func newSubmitContact(resolver IdentityResolver, repo *mockSubmissionRepository, notifier Notifier) *SubmitContactUseCase {
	return NewSubmitContactUseCase(resolver, NewRecordSubmissionUseCase(repo, logger.Nop()), notifier, logger.Nop())
}

func TestSubmitContact_Success(t *testing.T) {
	resolver := &mockResolver{}
	repo := &mockSubmissionRepository{}
	notifier := &mockNotifier{outcome: notification.Outcome{AdminNotified: true, SenderAcknowledged: true}}

	result, err := newSubmitContact(resolver, repo, notifier).Execute(context.Background(), SubmitContactCommand{
		Payload:  validPayload(),
		Metadata: submission.Metadata{Source: "/contact"},
	})
	require.NoError(t, err)

	assert.Equal(t, identity.MatchNew, result.MatchType)
	assert.True(t, result.IdentityCreated)
	assert.True(t, result.Notification.AdminNotified)
	assert.True(t, result.Notification.SenderAcknowledged)
	assert.Equal(t, "/contact", result.Submission.Metadata.Source)
	assert.Equal(t, 1, resolver.calls)
	assert.Equal(t, 1, notifier.calls)
	assert.Len(t, repo.created, 1)
}

func TestSubmitContact_MissingMessageNeverReachesStore(t *testing.T) {
	resolver := &mockResolver{}
	repo := &mockSubmissionRepository{}
	notifier := &mockNotifier{}

	payload := validPayload()
	payload.Message = ""

	_, err := newSubmitContact(resolver, repo, notifier).Execute(context.Background(), SubmitContactCommand{Payload: payload})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "message", appErr.Fields[0].Field)

	assert.Zero(t, resolver.calls)
	assert.Empty(t, repo.created)
	assert.Zero(t, notifier.calls)
}

func TestSubmitContact_ResolverFailureStillStores(t *testing.T) {
	resolver := &mockResolver{
		ResolveOrCreateFunc: func(ctx context.Context, contact identity.Contact) (*identity.Identity, identity.MatchType, error) {
			return nil, "", errors.New("users table locked")
		},
	}
	repo := &mockSubmissionRepository{}
	notifier := &mockNotifier{}

	result, err := newSubmitContact(resolver, repo, notifier).Execute(context.Background(), SubmitContactCommand{Payload: validPayload()})
	require.NoError(t, err)

	assert.Nil(t, result.Identity)
	assert.Nil(t, result.Submission.IdentityID)
	assert.Empty(t, result.Submission.MatchType)
	assert.Len(t, repo.created, 1)
	assert.Equal(t, 1, notifier.calls)
}

func TestSubmitContact_NotificationFailureDoesNotFail(t *testing.T) {
	notifier := &mockNotifier{outcome: notification.Outcome{}}

	result, err := newSubmitContact(&mockResolver{}, &mockSubmissionRepository{}, notifier).Execute(context.Background(), SubmitContactCommand{Payload: validPayload()})
	require.NoError(t, err)
	assert.False(t, result.Notification.AdminNotified)
	assert.False(t, result.Notification.SenderAcknowledged)
}

func TestSubmitContact_StoreFailureAborts(t *testing.T) {
	repo := &mockSubmissionRepository{
		CreateFunc: func(ctx context.Context, s *submission.Submission) error {
			return errors.New("connection reset")
		},
	}
	notifier := &mockNotifier{}

	_, err := newSubmitContact(&mockResolver{}, repo, notifier).Execute(context.Background(), SubmitContactCommand{Payload: validPayload()})
	require.Error(t, err)
	assert.Zero(t, notifier.calls)
}

func TestSubmitContact_StoresTextAsTyped(t *testing.T) {
	tests := []struct {
		name    string
		message string
	}{
		{"angle brackets", "budget<price and time>3 weeks"},
		{"escaped entities", "use &lt;b&gt; tags please"},
		{"inline markup", "<b>urgent</b> please call"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockSubmissionRepository{}
			payload := validPayload()
			payload.Message = "  " + tt.message + "  "
			payload.Subject = tt.message

			_, err := newSubmitContact(&mockResolver{}, repo, &mockNotifier{}).Execute(context.Background(), SubmitContactCommand{
				Payload: payload,
			})
			require.NoError(t, err)

			require.Len(t, repo.created, 1)
			assert.Equal(t, tt.message, repo.created[0].Message)
			require.NotNil(t, repo.created[0].Subject)
			assert.Equal(t, tt.message, *repo.created[0].Subject)
		})
	}
}
