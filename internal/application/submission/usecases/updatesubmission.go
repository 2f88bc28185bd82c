package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/keshevplus/leadhub/internal/application/submission/dto"
	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/shared/errors"
	"github.com/keshevplus/leadhub/internal/shared/logger"
	"github.com/keshevplus/leadhub/internal/shared/utils"
)

type UpdateSubmissionCommand struct {
	ID    uint
	Patch submission.Patch
}

// patchFields holds the provided patch values for format validation. Absent
// and blank values are skipped here; blank required fields are reported
// separately.
type patchFields struct {
	Name    string `json:"name" validate:"omitempty,max=255"`
	Email   string `json:"email" validate:"omitempty,email,max=255"`
	Phone   string `json:"phone" validate:"omitempty,ilphone"`
	Subject string `json:"subject" validate:"omitempty,max=255"`
	Message string `json:"message" validate:"omitempty,max=5000"`
}

// UpdateSubmissionUseCase applies a partial update. Patched fields go
// through the same sanitizing and format rules as the contact form.
type UpdateSubmissionUseCase struct {
	submissionRepo submission.Repository
	logger         logger.Interface
}

func NewUpdateSubmissionUseCase(submissionRepo submission.Repository, logger logger.Interface) *UpdateSubmissionUseCase {
	return &UpdateSubmissionUseCase{
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

func (uc *UpdateSubmissionUseCase) Execute(ctx context.Context, cmd UpdateSubmissionCommand) (*dto.SubmissionDTO, error) {
	if cmd.Patch.IsEmpty() {
		return nil, toAppError(submission.ErrEmptyPatch, cmd.ID, "")
	}

	patch := sanitizePatch(cmd.Patch)
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	s, err := uc.submissionRepo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, toAppError(err, cmd.ID, "Failed to update lead")
	}

	columns, err := s.Apply(patch)
	if err != nil {
		return nil, toAppError(err, cmd.ID, "Failed to update lead")
	}

	if len(columns) > 0 {
		if err := uc.submissionRepo.Update(ctx, s, columns...); err != nil {
			uc.logger.Errorw("failed to update lead", "submission_id", cmd.ID, "columns", columns, "error", err)
			return nil, toAppError(err, cmd.ID, "Failed to update lead")
		}
	}

	uc.logger.Infow("lead updated", "submission_id", cmd.ID, "columns", columns)
	return dto.ToSubmissionDTO(s), nil
}

func sanitizePatch(p submission.Patch) submission.Patch {
	clean := func(v *string) *string {
		if v == nil {
			return nil
		}
		s := utils.CleanText(*v)
		return &s
	}

	out := submission.Patch{
		Name:    clean(p.Name),
		Email:   clean(p.Email),
		Phone:   clean(p.Phone),
		Subject: clean(p.Subject),
		Message: clean(p.Message),
		IsRead:  p.IsRead,
	}
	if out.Email != nil {
		lower := strings.ToLower(*out.Email)
		out.Email = &lower
	}
	if out.Phone != nil {
		normalized := utils.NormalizePhone(*out.Phone)
		out.Phone = &normalized
	}
	return out
}

func validatePatch(p submission.Patch) error {
	var fieldErrs []errors.FieldError
	required := []struct {
		field string
		value *string
	}{
		{"name", p.Name},
		{"phone", p.Phone},
		{"message", p.Message},
	}
	for _, r := range required {
		if r.value != nil && *r.value == "" {
			fieldErrs = append(fieldErrs, errors.FieldError{Field: r.field, Message: fmt.Sprintf("%s is required", r.field)})
		}
	}

	deref := func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	}

	err := utils.ValidateStruct(patchFields{
		Name:    deref(p.Name),
		Email:   deref(p.Email),
		Phone:   deref(p.Phone),
		Subject: deref(p.Subject),
		Message: deref(p.Message),
	})
	if appErr := errors.GetAppError(err); appErr != nil {
		fieldErrs = append(fieldErrs, appErr.Fields...)
	} else if err != nil {
		return err
	}

	if len(fieldErrs) > 0 {
		return errors.NewFieldValidationError(fieldErrs...)
	}
	return nil
}
