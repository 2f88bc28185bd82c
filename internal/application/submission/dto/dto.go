package dto

import (
	"time"

	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/shared/utils"
)

// SubmissionDTO is a lead as the admin panel sees it. Field names follow
// the table columns.
type SubmissionDTO struct {
	ID                   uint                `json:"id"`
	MessageID            string              `json:"message_id"`
	Name                 string              `json:"name"`
	Email                *string             `json:"email"`
	Phone                string              `json:"phone"`
	Subject              *string             `json:"subject"`
	Message              string              `json:"message"`
	IsRead               bool                `json:"is_read"`
	IdentityID           *uint               `json:"identity_id"`
	PreviousMessageCount int                 `json:"previous_message_count"`
	MatchType            *string             `json:"match_type"`
	Metadata             submission.Metadata `json:"metadata"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

type ListSubmissionsResponse struct {
	Leads      []*SubmissionDTO `json:"leads"`
	Pagination utils.PageMeta   `json:"pagination"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// UpdateSubmissionRequest is the body of PUT /leads/:id. Only the listed
// keys are accepted.
type UpdateSubmissionRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Subject *string `json:"subject,omitempty"`
	Message *string `json:"message,omitempty"`
	IsRead  *bool   `json:"is_read,omitempty"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateSubmissionRequest) ToPatch() submission.Patch {
	return submission.Patch{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Subject: r.Subject,
		Message: r.Message,
		IsRead:  r.IsRead,
	}
}

func ToSubmissionDTO(s *submission.Submission) *SubmissionDTO {
	if s == nil {
		return nil
	}

	var matchType *string
	if s.MatchType != "" {
		mt := s.MatchType
		matchType = &mt
	}

	return &SubmissionDTO{
		ID:                   s.ID,
		MessageID:            s.MessageID,
		Name:                 s.Name,
		Email:                s.Email,
		Phone:                s.Phone,
		Subject:              s.Subject,
		Message:              s.Message,
		IsRead:               s.IsRead,
		IdentityID:           s.IdentityID,
		PreviousMessageCount: s.PreviousMessageCount,
		MatchType:            matchType,
		Metadata:             s.Metadata,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

func ToSubmissionDTOs(list []*submission.Submission) []*SubmissionDTO {
	out := make([]*SubmissionDTO, 0, len(list))
	for _, s := range list {
		out = append(out, ToSubmissionDTO(s))
	}
	return out
}
