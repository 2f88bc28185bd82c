package usecases

import (
	"context"

	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/infrastructure/metrics"
	"github.com/keshevplus/leadhub/internal/shared/errors"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

type RecordSubmissionCommand struct {
	Payload   ContactPayload
	Metadata  submission.Metadata
	Identity  *identity.Identity
	MatchType identity.MatchType

	// prepared marks a payload that SubmitContact or Seed already normalized
	// and validated.
	prepared bool
}

type RecordSubmissionResult struct {
	Submission      *submission.Submission
	IdentityCreated bool
}

// RecordSubmissionUseCase stores a contact-form submission. Only the insert
// itself can fail the call; the prior-message count is best effort.
type RecordSubmissionUseCase struct {
	submissionRepo submission.Repository
	logger         logger.Interface
}

func NewRecordSubmissionUseCase(submissionRepo submission.Repository, logger logger.Interface) *RecordSubmissionUseCase {
	return &RecordSubmissionUseCase{
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

func (uc *RecordSubmissionUseCase) Execute(ctx context.Context, cmd RecordSubmissionCommand) (*RecordSubmissionResult, error) {
	payload := cmd.Payload
	if !cmd.prepared {
		var err error
		if payload, err = payload.prepare(); err != nil {
			return nil, err
		}
	}

	s := submission.New(
		payload.Name,
		optionalString(payload.Email),
		payload.Phone,
		optionalString(payload.Subject),
		payload.Message,
		cmd.Metadata,
	)

	if cmd.Identity != nil {
		previous, err := uc.submissionRepo.CountByIdentity(ctx, cmd.Identity.ID)
		if err != nil {
			uc.logger.Warnw("failed to count previous submissions",
				"identity_id", cmd.Identity.ID,
				"error", err,
			)
			previous = 0
		}
		s.LinkIdentity(cmd.Identity.ID, cmd.MatchType.String(), int(previous))
	}

	if err := uc.submissionRepo.Create(ctx, s); err != nil {
		metrics.RecordSubmission(metrics.ResultFailed)
		uc.logger.Errorw("failed to store submission", "message_id", s.MessageID, "error", err)
		return nil, errors.NewInternalError("Failed to store your message")
	}

	metrics.RecordSubmission(metrics.ResultRecorded)
	uc.logger.Infow("submission stored",
		"submission_id", s.ID,
		"message_id", s.MessageID,
		"identity_id", s.IdentityID,
		"match_type", s.MatchType,
		"previous_message_count", s.PreviousMessageCount,
	)

	return &RecordSubmissionResult{
		Submission:      s,
		IdentityCreated: cmd.Identity != nil && cmd.MatchType.IsNew(),
	}, nil
}
