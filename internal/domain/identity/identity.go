// Package identity models a deduplicated contact: a person who reached out
// through the site, or an admin who works the resulting leads.
package identity

import (
	"strings"
	"time"

	"github.com/keshevplus/leadhub/internal/shared/constants"
)

// Role of an identity.
type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleContact Role = "contact"
)

func (r Role) String() string { return string(r) }

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleContact:
		return true
	}
	return false
}

// MatchType records how a submission was reconciled against an identity.
type MatchType string

const (
	MatchNew           MatchType = "new"
	MatchEmail         MatchType = "email"
	MatchPhone         MatchType = "phone"
	MatchEmailConflict MatchType = "email-conflict"
	MatchPhoneConflict MatchType = "phone-conflict"
)

func (m MatchType) String() string { return string(m) }

// IsNew reports whether the identity was created by this resolution.
func (m MatchType) IsNew() bool { return m == MatchNew }

// Identity is a row of the users table.
type Identity struct {
	ID            uint
	Name          string
	Email         *string
	Phone         *string
	Username      string
	Role          Role
	PasswordHash  *string
	LoggedIn      bool
	DuplicateOfID *uint
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Contact is the identifying part of a submission.
type Contact struct {
	Name  string
	Email *string
	Phone *string
}

// NewContact builds a normalized Contact. Email is trimmed and lowercased,
// phone separators are removed and blank values become absent.
func NewContact(name, email, phone string) Contact {
	c := Contact{Name: strings.TrimSpace(name)}
	if e := strings.ToLower(strings.TrimSpace(email)); e != "" {
		c.Email = &e
	}
	if p := normalizePhone(phone); p != "" {
		c.Phone = &p
	}
	return c
}

// Normalize applies the NewContact rules to an already built Contact.
func (c Contact) Normalize() Contact {
	return NewContact(c.Name, deref(c.Email), deref(c.Phone))
}

// HasKey reports whether the contact carries an email or a phone.
func (c Contact) HasKey() bool {
	return c.Email != nil || c.Phone != nil
}

// NewContactIdentity builds the identity inserted for an unmatched contact.
func NewContactIdentity(c Contact) *Identity {
	name := c.Name
	if name == "" {
		name = constants.UnknownContactName
	}
	return &Identity{
		Name:     name,
		Email:    c.Email,
		Phone:    c.Phone,
		Username: DefaultUsername(name, c.Email, c.Phone),
		Role:     RoleContact,
	}
}

// DefaultUsername is the email, else the phone, else the name.
func DefaultUsername(name string, email, phone *string) string {
	if email != nil && *email != "" {
		return *email
	}
	if phone != nil && *phone != "" {
		return *phone
	}
	return name
}

// Backfill copies name, email and phone from c into fields that are empty on
// i. Stored values are never overwritten. It returns the column names that
// changed.
func (i *Identity) Backfill(c Contact) []string {
	var changed []string
	if (i.Name == "" || i.Name == constants.UnknownContactName) && c.Name != "" && c.Name != constants.UnknownContactName {
		i.Name = c.Name
		changed = append(changed, "name")
	}
	if i.Email == nil && c.Email != nil {
		e := *c.Email
		i.Email = &e
		changed = append(changed, "email")
	}
	if i.Phone == nil && c.Phone != nil {
		p := *c.Phone
		i.Phone = &p
		changed = append(changed, "phone")
	}
	return changed
}

// IsAdmin reports whether the identity may sign in to the admin surface.
func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// EmailOrEmpty returns the email or "".
func (i *Identity) EmailOrEmpty() string { return deref(i.Email) }

// PhoneOrEmpty returns the phone or "".
func (i *Identity) PhoneOrEmpty() string { return deref(i.Phone) }

func normalizePhone(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(s))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
