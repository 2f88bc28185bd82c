package usecases

import (
	"context"

	"github.com/keshevplus/leadhub/internal/application/submission/dto"
	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

// MarkReadUseCase moves a lead to read. Repeating it is a no-op.
type MarkReadUseCase struct {
	submissionRepo submission.Repository
	logger         logger.Interface
}

func NewMarkReadUseCase(submissionRepo submission.Repository, logger logger.Interface) *MarkReadUseCase {
	return &MarkReadUseCase{
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, id uint) (*dto.SubmissionDTO, error) {
	if err := uc.submissionRepo.MarkRead(ctx, id); err != nil {
		return nil, toAppError(err, id, "Failed to mark lead as read")
	}

	s, err := uc.submissionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, toAppError(err, id, "Failed to mark lead as read")
	}

	uc.logger.Infow("lead marked as read", "submission_id", id)
	return dto.ToSubmissionDTO(s), nil
}
