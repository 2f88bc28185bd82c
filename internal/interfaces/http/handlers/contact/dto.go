package contact

import (
	"github.com/keshevplus/leadhub/internal/application/contact/usecases"
)

// SubmitResponse is the body of a successful POST /contact.
type SubmitResponse struct {
	Success                 bool   `json:"success"`
	MessageID               string `json:"messageId"`
	LeadID                  uint   `json:"leadId"`
	IdentityID              *uint  `json:"identityId"`
	MatchType               string `json:"matchType,omitempty"`
	EmailNotificationSent   bool   `json:"emailNotificationSent"`
	EmailAcknowledgmentSent bool   `json:"emailAcknowledgmentSent"`
}

func toSubmitResponse(r *usecases.SubmitContactResult) SubmitResponse {
	return SubmitResponse{
		Success:                 true,
		MessageID:               r.Submission.MessageID,
		LeadID:                  r.Submission.ID,
		IdentityID:              r.Submission.IdentityID,
		MatchType:               r.MatchType.String(),
		EmailNotificationSent:   r.Notification.AdminNotified,
		EmailAcknowledgmentSent: r.Notification.SenderAcknowledged,
	}
}
