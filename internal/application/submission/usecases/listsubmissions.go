package usecases

import (
	"context"
	"strings"

	"github.com/keshevplus/leadhub/internal/application/submission/dto"
	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/shared/logger"
	"github.com/keshevplus/leadhub/internal/shared/utils"
)

type ListSubmissionsQuery struct {
	Page   int
	Limit  int
	Filter string
}

type ListSubmissionsUseCase struct {
	submissionRepo submission.Repository
	logger         logger.Interface
}

func NewListSubmissionsUseCase(submissionRepo submission.Repository, logger logger.Interface) *ListSubmissionsUseCase {
	return &ListSubmissionsUseCase{
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

func (uc *ListSubmissionsUseCase) Execute(ctx context.Context, query ListSubmissionsQuery) (*dto.ListSubmissionsResponse, error) {
	p := utils.ValidatePagination(query.Page, query.Limit)
	filter := strings.TrimSpace(query.Filter)

	items, total, err := uc.submissionRepo.List(ctx, submission.ListFilter{
		Text:     filter,
		Page:     p.Page,
		PageSize: p.Limit,
	})
	if err != nil {
		uc.logger.Errorw("failed to list leads", "page", p.Page, "limit", p.Limit, "error", err)
		return nil, toAppError(err, 0, "Failed to retrieve leads")
	}

	uc.logger.Debugw("leads listed", "page", p.Page, "limit", p.Limit, "filter", filter, "total", total)

	return &dto.ListSubmissionsResponse{
		Leads:      dto.ToSubmissionDTOs(items),
		Pagination: utils.NewPageMeta(total, p.Page, p.Limit),
	}, nil
}
