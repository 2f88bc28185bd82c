package usecases

import (
	"context"

	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

type DeleteSubmissionUseCase struct {
	submissionRepo submission.Repository
	logger         logger.Interface
}

func NewDeleteSubmissionUseCase(submissionRepo submission.Repository, logger logger.Interface) *DeleteSubmissionUseCase {
	return &DeleteSubmissionUseCase{
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

// Execute hard-deletes the lead.
func (uc *DeleteSubmissionUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.submissionRepo.Delete(ctx, id); err != nil {
		return toAppError(err, id, "Failed to delete lead")
	}

	uc.logger.Infow("lead deleted", "submission_id", id)
	return nil
}
