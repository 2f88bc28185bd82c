package usecases

import (
	"context"

	"github.com/keshevplus/leadhub/internal/application/submission/dto"
)

type ListSubmissionsExecutor interface {
	Execute(ctx context.Context, query ListSubmissionsQuery) (*dto.ListSubmissionsResponse, error)
}

type GetSubmissionExecutor interface {
	Execute(ctx context.Context, id uint) (*dto.SubmissionDTO, error)
}

type UpdateSubmissionExecutor interface {
	Execute(ctx context.Context, cmd UpdateSubmissionCommand) (*dto.SubmissionDTO, error)
}

type DeleteSubmissionExecutor interface {
	Execute(ctx context.Context, id uint) error
}

type MarkReadExecutor interface {
	Execute(ctx context.Context, id uint) (*dto.SubmissionDTO, error)
}

type UnreadCountExecutor interface {
	Execute(ctx context.Context) (*dto.UnreadCountResponse, error)
}
