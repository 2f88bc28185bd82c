package usecases

import (
	"context"

	"github.com/keshevplus/leadhub/internal/application/notification"
	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/domain/submission"
)

type IdentityResolver interface {
	ResolveOrCreate(ctx context.Context, contact identity.Contact) (*identity.Identity, identity.MatchType, error)
}

type SubmissionRecorder interface {
	Execute(ctx context.Context, cmd RecordSubmissionCommand) (*RecordSubmissionResult, error)
}

type Notifier interface {
	Notify(ctx context.Context, s *submission.Submission, contact *identity.Identity, matchType identity.MatchType) notification.Outcome
}

type SubmitContactExecutor interface {
	Execute(ctx context.Context, cmd SubmitContactCommand) (*SubmitContactResult, error)
}

type LinkContactsExecutor interface {
	Execute(ctx context.Context, cmd LinkContactsCommand) (*LinkContactsResult, error)
}

type DuplicateReportExecutor interface {
	Execute(ctx context.Context) ([]identity.DuplicateGroup, error)
}
