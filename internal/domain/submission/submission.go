// Package submission models one contact-form message and the read/edit
// lifecycle an admin applies to it.
package submission

import (
	"time"

	"github.com/google/uuid"
)

// Metadata is request context captured at intake.
type Metadata struct {
	ClientIP  string `json:"client_ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	Locale    string `json:"locale,omitempty"`
	Source    string `json:"source,omitempty"`
}

// Submission is a row of the submissions table.
type Submission struct {
	ID                   uint
	MessageID            string
	Name                 string
	Email                *string
	Phone                string
	Subject              *string
	Message              string
	IsRead               bool
	IdentityID           *uint
	PreviousMessageCount int
	MatchType            string
	Metadata             Metadata
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// New creates an unread submission with a fresh message id.
func New(name string, email *string, phone string, subject *string, message string, meta Metadata) *Submission {
	return &Submission{
		MessageID: uuid.NewString(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Subject:   subject,
		Message:   message,
		Metadata:  meta,
	}
}

// LinkIdentity attaches the resolved identity and its prior message count.
func (s *Submission) LinkIdentity(identityID uint, matchType string, previous int) {
	id := identityID
	s.IdentityID = &id
	s.MatchType = matchType
	s.PreviousMessageCount = previous
}

// MarkRead moves the submission to read. It reports whether anything changed.
func (s *Submission) MarkRead() bool {
	if s.IsRead {
		return false
	}
	s.IsRead = true
	return true
}

// EmailOrEmpty returns the email or "".
func (s *Submission) EmailOrEmpty() string {
	if s.Email == nil {
		return ""
	}
	return *s.Email
}

// SubjectOrEmpty returns the subject or "".
func (s *Submission) SubjectOrEmpty() string {
	if s.Subject == nil {
		return ""
	}
	return *s.Subject
}
