package submission

import "strings"

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Name    *string
	Email   *string
	Phone   *string
	Subject *string
	Message *string
	IsRead  *bool
}

// IsEmpty reports whether the patch sets no field.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil &&
		p.Subject == nil && p.Message == nil && p.IsRead == nil
}

// Apply writes the patch onto s and returns the changed column names.
// Read status only moves forward: clearing is_read on a read submission
// fails with ErrCannotMarkUnread. Blank email and subject become NULL.
func (s *Submission) Apply(p Patch) ([]string, error) {
	if p.IsEmpty() {
		return nil, ErrEmptyPatch
	}
	if p.IsRead != nil && !*p.IsRead && s.IsRead {
		return nil, ErrCannotMarkUnread
	}

	var columns []string
	if p.Name != nil {
		s.Name = strings.TrimSpace(*p.Name)
		columns = append(columns, "name")
	}
	if p.Email != nil {
		s.Email = optional(strings.ToLower(*p.Email))
		columns = append(columns, "email")
	}
	if p.Phone != nil {
		s.Phone = strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(*p.Phone))
		columns = append(columns, "phone")
	}
	if p.Subject != nil {
		s.Subject = optional(*p.Subject)
		columns = append(columns, "subject")
	}
	if p.Message != nil {
		s.Message = strings.TrimSpace(*p.Message)
		columns = append(columns, "message")
	}
	if p.IsRead != nil && *p.IsRead {
		s.IsRead = true
		columns = append(columns, "is_read")
	}
	return columns, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
