package usecases

import (
	"context"
	"fmt"

	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

// SeedSource tags submissions loaded by the seeder in their metadata.
const SeedSource = "seed"

type SeedSubmissionsCommand struct {
	Payloads []ContactPayload
}

type SeedSubmissionsResult struct {
	Created    int
	Failed     int
	Identities int
}

// SeedSubmissionsUseCase loads submissions through identity resolution and
// the recorder, the same way live intake stores them. No email is sent.
type SeedSubmissionsUseCase struct {
	resolver IdentityResolver
	recorder SubmissionRecorder
	logger   logger.Interface
}

func NewSeedSubmissionsUseCase(resolver IdentityResolver, recorder SubmissionRecorder, logger logger.Interface) *SeedSubmissionsUseCase {
	return &SeedSubmissionsUseCase{
		resolver: resolver,
		recorder: recorder,
		logger:   logger,
	}
}

func (uc *SeedSubmissionsUseCase) Execute(ctx context.Context, cmd SeedSubmissionsCommand) (*SeedSubmissionsResult, error) {
	result := &SeedSubmissionsResult{}

	for i, p := range cmd.Payloads {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		payload, err := p.prepare()
		if err != nil {
			uc.logger.Warnw("skipping invalid seed row", "row", i+1, "error", err)
			result.Failed++
			continue
		}

		resolved, matchType, err := uc.resolver.ResolveOrCreate(ctx, identity.NewContact(payload.Name, payload.Email, payload.Phone))
		if err != nil {
			uc.logger.Warnw("identity resolution failed for seed row", "row", i+1, "error", err)
			resolved, matchType = nil, ""
		}
		if matchType == identity.MatchNew {
			result.Identities++
		}

		if _, err := uc.recorder.Execute(ctx, RecordSubmissionCommand{
			Payload:   payload,
			Metadata:  submission.Metadata{Source: SeedSource},
			Identity:  resolved,
			MatchType: matchType,
			prepared:  true,
		}); err != nil {
			uc.logger.Errorw("failed to store seed row", "row", i+1, "error", err)
			result.Failed++
			continue
		}
		result.Created++
	}

	uc.logger.Infow("seed completed",
		"created", result.Created,
		"failed", result.Failed,
		"identities_created", result.Identities,
	)
	return result, nil
}

// SampleContacts returns n valid payloads. Every third row reuses an earlier
// email so seeded data exercises identity matching.
func SampleContacts(n int) []ContactPayload {
	out := make([]ContactPayload, 0, n)
	for i := 1; i <= n; i++ {
		person := i
		if i%3 == 0 {
			person = i - 1
		}
		out = append(out, ContactPayload{
			Name:    fmt.Sprintf("Seed Contact %03d", person),
			Email:   fmt.Sprintf("seed%03d@example.com", person),
			Phone:   fmt.Sprintf("050%07d", person),
			Subject: fmt.Sprintf("Inquiry #%d", i),
			Message: fmt.Sprintf("Generated test message number %d.", i),
		})
	}
	return out
}
