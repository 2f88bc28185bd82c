package usecases

import (
	"context"

	"github.com/keshevplus/leadhub/internal/application/notification"
	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/infrastructure/metrics"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

type SubmitContactCommand struct {
	Payload  ContactPayload
	Metadata submission.Metadata
}

type SubmitContactResult struct {
	Submission      *submission.Submission
	Identity        *identity.Identity
	MatchType       identity.MatchType
	IdentityCreated bool
	Notification    notification.Outcome
}

// SubmitContactUseCase runs one contact form through validation, identity
// resolution, storage and notification, in that order. Only validation and
// storage can fail it.
type SubmitContactUseCase struct {
	resolver IdentityResolver
	recorder SubmissionRecorder
	notifier Notifier
	logger   logger.Interface
}

func NewSubmitContactUseCase(
	resolver IdentityResolver,
	recorder SubmissionRecorder,
	notifier Notifier,
	logger logger.Interface,
) *SubmitContactUseCase {
	return &SubmitContactUseCase{
		resolver: resolver,
		recorder: recorder,
		notifier: notifier,
		logger:   logger,
	}
}

func (uc *SubmitContactUseCase) Execute(ctx context.Context, cmd SubmitContactCommand) (*SubmitContactResult, error) {
	payload, err := cmd.Payload.prepare()
	if err != nil {
		uc.logger.Debugw("contact form rejected", "error", err)
		return nil, err
	}

	contact := identity.NewContact(payload.Name, payload.Email, payload.Phone)
	resolved, matchType, err := uc.resolver.ResolveOrCreate(ctx, contact)
	if err != nil {
		metrics.RecordIdentityResolution("error")
		uc.logger.Warnw("identity resolution failed, storing submission without identity", "error", err)
		resolved, matchType = nil, ""
	} else {
		metrics.RecordIdentityResolution(matchType.String())
	}

	recorded, err := uc.recorder.Execute(ctx, RecordSubmissionCommand{
		Payload:   payload,
		Metadata:  cmd.Metadata,
		Identity:  resolved,
		MatchType: matchType,
		prepared:  true,
	})
	if err != nil {
		return nil, err
	}

	outcome := uc.notifier.Notify(ctx, recorded.Submission, resolved, matchType)

	return &SubmitContactResult{
		Submission:      recorded.Submission,
		Identity:        resolved,
		MatchType:       matchType,
		IdentityCreated: recorded.IdentityCreated,
		Notification:    outcome,
	}, nil
}
