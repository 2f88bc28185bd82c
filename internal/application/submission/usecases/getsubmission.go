package usecases

import (
	"context"

	"github.com/keshevplus/leadhub/internal/application/submission/dto"
	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

type GetSubmissionUseCase struct {
	submissionRepo submission.Repository
	logger         logger.Interface
}

func NewGetSubmissionUseCase(submissionRepo submission.Repository, logger logger.Interface) *GetSubmissionUseCase {
	return &GetSubmissionUseCase{
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

func (uc *GetSubmissionUseCase) Execute(ctx context.Context, id uint) (*dto.SubmissionDTO, error) {
	s, err := uc.submissionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, toAppError(err, id, "Failed to retrieve lead")
	}
	return dto.ToSubmissionDTO(s), nil
}
