package usecases

import (
	"strings"

	"github.com/keshevplus/leadhub/internal/shared/utils"
)

// ContactPayload is the contact form as submitted by a visitor.
type ContactPayload struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"omitempty,email,max=255"`
	Phone   string `json:"phone" validate:"required,ilphone"`
	Subject string `json:"subject" validate:"max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Normalize trims every field, lowercases the email and removes phone
// separators. Text is otherwise stored as the visitor typed it.
func (p ContactPayload) Normalize() ContactPayload {
	return ContactPayload{
		Name:    utils.CleanText(p.Name),
		Email:   strings.ToLower(utils.CleanText(p.Email)),
		Phone:   utils.NormalizePhone(utils.CleanText(p.Phone)),
		Subject: utils.CleanText(p.Subject),
		Message: utils.CleanText(p.Message),
	}
}

// Validate returns a field validation error listing every invalid field.
func (p ContactPayload) Validate() error {
	return utils.ValidateStruct(p)
}

// prepare normalizes then validates.
func (p ContactPayload) prepare() (ContactPayload, error) {
	clean := p.Normalize()
	if err := clean.Validate(); err != nil {
		return ContactPayload{}, err
	}
	return clean, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
