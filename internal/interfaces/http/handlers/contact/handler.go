package contact

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keshevplus/leadhub/internal/application/contact/usecases"
	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/infrastructure/email"
	"github.com/keshevplus/leadhub/internal/shared/constants"
	"github.com/keshevplus/leadhub/internal/shared/errors"
	"github.com/keshevplus/leadhub/internal/shared/logger"
	"github.com/keshevplus/leadhub/internal/shared/utils"
)

type Handler struct {
	submitUC usecases.SubmitContactExecutor
	logger   logger.Interface
}

func NewHandler(submitUC usecases.SubmitContactExecutor, logger logger.Interface) *Handler {
	return &Handler{
		submitUC: submitUC,
		logger:   logger,
	}
}

// Submit handles POST /contact
// @Summary Submit the contact form
// @Description Stores the message, links it to a contact identity and emails the site owner and the sender
// @Tags contact
// @Accept json
// @Produce json
// @Param contact body usecases.ContactPayload true "Contact form"
// @Param Accept-Language header string false "Locale for the acknowledgment email"
// @Success 200 {object} SubmitResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /contact [post]
func (h *Handler) Submit(c *gin.Context) {
	var payload usecases.ContactPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warnw("invalid request body for contact form", "error", err)
		utils.RespondError(c, bindError(err))
		return
	}

	result, err := h.submitUC.Execute(c.Request.Context(), usecases.SubmitContactCommand{
		Payload:  payload,
		Metadata: requestMetadata(c),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSubmitResponse(result))
}

// bindError reports a JSON value of the wrong type against its field.
func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) && typeErr.Field != "" {
		return errors.NewFieldValidationError(errors.FieldError{
			Field:   typeErr.Field,
			Message: typeErr.Field + " has the wrong type",
		})
	}
	return errors.NewValidationError("Invalid request body")
}

func requestMetadata(c *gin.Context) submission.Metadata {
	locale := email.MatchLocale(c.GetHeader(constants.HeaderAcceptLanguage))
	return submission.Metadata{
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Locale:    email.LocaleCode(locale),
		Source:    c.Request.URL.Path,
	}
}
