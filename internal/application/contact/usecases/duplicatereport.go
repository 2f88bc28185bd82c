package usecases

import (
	"context"
	"fmt"

	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

// DuplicateReportUseCase lists identities that share an email or phone. It
// is meant to be run before the unique indexes are created.
type DuplicateReportUseCase struct {
	identityRepo identity.Repository
	logger       logger.Interface
}

func NewDuplicateReportUseCase(identityRepo identity.Repository, logger logger.Interface) *DuplicateReportUseCase {
	return &DuplicateReportUseCase{
		identityRepo: identityRepo,
		logger:       logger,
	}
}

func (uc *DuplicateReportUseCase) Execute(ctx context.Context) ([]identity.DuplicateGroup, error) {
	groups, err := uc.identityRepo.FindDuplicates(ctx)
	if err != nil {
		uc.logger.Errorw("failed to find duplicate identities", "error", err)
		return nil, fmt.Errorf("failed to find duplicate identities: %w", err)
	}

	uc.logger.Infow("duplicate identity report", "groups", len(groups))
	return groups, nil
}
