package lead

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/keshevplus/leadhub/internal/application/submission/dto"
	"github.com/keshevplus/leadhub/internal/application/submission/usecases"
	"github.com/keshevplus/leadhub/internal/shared/constants"
	"github.com/keshevplus/leadhub/internal/shared/errors"
	"github.com/keshevplus/leadhub/internal/shared/logger"
	"github.com/keshevplus/leadhub/internal/shared/utils"
)

// maxUpdateBody bounds the PUT /leads/:id body.
const maxUpdateBody = 64 << 10

type Handler struct {
	listUC        usecases.ListSubmissionsExecutor
	getUC         usecases.GetSubmissionExecutor
	updateUC      usecases.UpdateSubmissionExecutor
	deleteUC      usecases.DeleteSubmissionExecutor
	markReadUC    usecases.MarkReadExecutor
	unreadCountUC usecases.UnreadCountExecutor
	logger        logger.Interface
}

func NewHandler(
	listUC usecases.ListSubmissionsExecutor,
	getUC usecases.GetSubmissionExecutor,
	updateUC usecases.UpdateSubmissionExecutor,
	deleteUC usecases.DeleteSubmissionExecutor,
	markReadUC usecases.MarkReadExecutor,
	unreadCountUC usecases.UnreadCountExecutor,
	logger logger.Interface,
) *Handler {
	return &Handler{
		listUC:        listUC,
		getUC:         getUC,
		updateUC:      updateUC,
		deleteUC:      deleteUC,
		markReadUC:    markReadUC,
		unreadCountUC: unreadCountUC,
		logger:        logger,
	}
}

// List handles GET /leads
// @Summary List leads
// @Description Newest first. filter matches name, email, phone and subject case-insensitively
// @Tags leads
// @Produce json
// @Security AuthToken
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param filter query string false "Substring filter"
// @Success 200 {object} dto.ListSubmissionsResponse
// @Failure 401 {object} utils.APIResponse
// @Router /leads [get]
func (h *Handler) List(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListSubmissionsQuery{
		Page:   p.Page,
		Limit:  p.Limit,
		Filter: c.Query("filter"),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UnreadCount handles GET /leads/unread-count
// @Summary Count unread leads
// @Tags leads
// @Produce json
// @Security AuthToken
// @Success 200 {object} dto.UnreadCountResponse
// @Router /leads/unread-count [get]
func (h *Handler) UnreadCount(c *gin.Context) {
	result, err := h.unreadCountUC.Execute(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get handles GET /leads/:id
// @Summary Get a lead
// @Tags leads
// @Produce json
// @Security AuthToken
// @Param id path int true "Lead ID"
// @Success 200 {object} utils.APIResponse{data=dto.SubmissionDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /leads/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := parseLeadID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, "", result)
}

// Update handles PUT /leads/:id
// @Summary Update a lead
// @Description Partial update. Unknown keys are rejected and is_read cannot go back to false
// @Tags leads
// @Accept json
// @Produce json
// @Security AuthToken
// @Param id path int true "Lead ID"
// @Param lead body dto.UpdateSubmissionRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=dto.SubmissionDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /leads/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := parseLeadID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	req, err := decodeUpdate(c.Request.Body)
	if err != nil {
		h.logger.Warnw("invalid request body for lead update", "error", err, "lead_id", id)
		utils.RespondError(c, err)
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateSubmissionCommand{
		ID:    id,
		Patch: req.ToPatch(),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, "Lead updated successfully", result)
}

// MarkRead handles PUT /leads/:id/read
// @Summary Mark a lead as read
// @Tags leads
// @Produce json
// @Security AuthToken
// @Param id path int true "Lead ID"
// @Success 200 {object} utils.APIResponse{data=dto.SubmissionDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /leads/{id}/read [put]
func (h *Handler) MarkRead(c *gin.Context) {
	id, err := parseLeadID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	result, err := h.markReadUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, "Lead marked as read", result)
}

// Delete handles DELETE /leads/:id
// @Summary Delete a lead
// @Tags leads
// @Produce json
// @Security AuthToken
// @Param id path int true "Lead ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} utils.APIResponse
// @Router /leads/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := parseLeadID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Lead deleted successfully"})
}

// MessageResponse carries a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

func parseLeadID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("Invalid lead ID")
	}
	return uint(id), nil
}

// decodeUpdate rejects unknown keys. An empty body decodes to an empty
// request, which the use case reports as having no update fields.
func decodeUpdate(body io.Reader) (dto.UpdateSubmissionRequest, error) {
	var req dto.UpdateSubmissionRequest
	if body == nil {
		return req, nil
	}

	raw, err := io.ReadAll(io.LimitReader(body, maxUpdateBody))
	if err != nil {
		return req, errors.NewValidationError("Invalid request body")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return req, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case stderrors.As(err, &syntaxErr), stderrors.Is(err, io.ErrUnexpectedEOF):
			return req, errors.NewValidationError("Invalid request body")
		case stderrors.As(err, &typeErr):
			return req, errors.NewFieldValidationError(errors.FieldError{
				Field:   typeErr.Field,
				Message: typeErr.Field + " has the wrong type",
			})
		default:
			return req, errors.NewValidationError(constants.ErrMsgValidationFailed, err.Error())
		}
	}
	return req, nil
}
