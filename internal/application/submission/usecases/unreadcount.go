package usecases

import (
	"context"

	"github.com/keshevplus/leadhub/internal/application/submission/dto"
	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

type UnreadCountUseCase struct {
	submissionRepo submission.Repository
	logger         logger.Interface
}

func NewUnreadCountUseCase(submissionRepo submission.Repository, logger logger.Interface) *UnreadCountUseCase {
	return &UnreadCountUseCase{
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

func (uc *UnreadCountUseCase) Execute(ctx context.Context) (*dto.UnreadCountResponse, error) {
	count, err := uc.submissionRepo.CountUnread(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count unread leads", "error", err)
		return nil, toAppError(err, 0, "Failed to count unread leads")
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}
