package usecases

import (
	"errors"
	"fmt"

	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/shared/constants"
	apperrors "github.com/keshevplus/leadhub/internal/shared/errors"
)

// toAppError maps repository and domain errors to HTTP-facing errors.
// failure is the message used for anything unexpected.
func toAppError(err error, id uint, failure string) error {
	switch {
	case errors.Is(err, submission.ErrNotFound):
		return apperrors.NewNotFoundError(fmt.Sprintf("Lead with ID %d not found", id))
	case errors.Is(err, submission.ErrEmptyPatch):
		return apperrors.NewBadRequestError(constants.ErrMsgNoUpdateFields)
	case errors.Is(err, submission.ErrCannotMarkUnread):
		return apperrors.NewBadRequestError("A read lead cannot be marked as unread")
	case apperrors.IsAppError(err):
		return err
	default:
		return apperrors.NewInternalError(failure)
	}
}
