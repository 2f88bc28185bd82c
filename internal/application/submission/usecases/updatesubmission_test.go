package usecases

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshevplus/leadhub/internal/domain/submission"
	apperrors "github.com/keshevplus/leadhub/internal/shared/errors"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

func TestUpdateSubmission_PartialUpdate(t *testing.T) {
	repo := setupRepo(t)
	leads := seedSubmissions(t, repo, 1)
	uc := NewUpdateSubmissionUseCase(repo, logger.Nop())
	ctx := context.Background()

	got, err := uc.Execute(ctx, UpdateSubmissionCommand{
		ID:    leads[0].ID,
		Patch: submission.Patch{Subject: strPtr("x")},
	})
	require.NoError(t, err)
	assert.Equal(t, "x", *got.Subject)

	stored, err := repo.FindByID(ctx, leads[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "x", stored.SubjectOrEmpty())
	assert.Equal(t, "Lead 01", stored.Name)
	assert.Equal(t, "lead01@example.com", stored.EmailOrEmpty())
	assert.Equal(t, "0501234567", stored.Phone)
	assert.Equal(t, "Original message", stored.Message)
	assert.False(t, stored.IsRead)
}

func TestUpdateSubmission_NormalizesFields(t *testing.T) {
	repo := setupRepo(t)
	leads := seedSubmissions(t, repo, 1)
	uc := NewUpdateSubmissionUseCase(repo, logger.Nop())

	got, err := uc.Execute(context.Background(), UpdateSubmissionCommand{
		ID: leads[0].ID,
		Patch: submission.Patch{
			Email:   strPtr("  New@Example.COM "),
			Phone:   strPtr("052-765 4321"),
			Subject: strPtr("   "),
			IsRead:  boolPtr(true),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", *got.Email)
	assert.Equal(t, "0527654321", got.Phone)
	assert.Nil(t, got.Subject)
	assert.True(t, got.IsRead)
}

func TestUpdateSubmission_Errors(t *testing.T) {
	repo := setupRepo(t)
	leads := seedSubmissions(t, repo, 2)
	uc := NewUpdateSubmissionUseCase(repo, logger.Nop())
	ctx := context.Background()

	_, err := NewMarkReadUseCase(repo, logger.Nop()).Execute(ctx, leads[1].ID)
	require.NoError(t, err)

	tests := []struct {
		name     string
		cmd      UpdateSubmissionCommand
		wantCode int
		wantMsg  string
	}{
		{
			name:     "empty patch",
			cmd:      UpdateSubmissionCommand{ID: leads[0].ID},
			wantCode: http.StatusBadRequest,
			wantMsg:  "No update fields provided",
		},
		{
			name:     "not found",
			cmd:      UpdateSubmissionCommand{ID: 404, Patch: submission.Patch{Subject: strPtr("x")}},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "invalid email",
			cmd:      UpdateSubmissionCommand{ID: leads[0].ID, Patch: submission.Patch{Email: strPtr("nope")}},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid phone",
			cmd:      UpdateSubmissionCommand{ID: leads[0].ID, Patch: submission.Patch{Phone: strPtr("0571234567")}},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "blank message",
			cmd:      UpdateSubmissionCommand{ID: leads[0].ID, Patch: submission.Patch{Message: strPtr(" <b></b> ")}},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "read lead cannot become unread",
			cmd:      UpdateSubmissionCommand{ID: leads[1].ID, Patch: submission.Patch{IsRead: boolPtr(false)}},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.cmd)
			require.Error(t, err)

			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, appErr.Message)
			}
		})
	}
}

func TestUpdateSubmission_UnreadOnUnreadIsNoop(t *testing.T) {
	repo := setupRepo(t)
	leads := seedSubmissions(t, repo, 1)
	uc := NewUpdateSubmissionUseCase(repo, logger.Nop())

	got, err := uc.Execute(context.Background(), UpdateSubmissionCommand{
		ID:    leads[0].ID,
		Patch: submission.Patch{IsRead: boolPtr(false)},
	})
	require.NoError(t, err)
	assert.False(t, got.IsRead)
}
