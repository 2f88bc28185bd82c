package email

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/domain/submission"
)

func strPtr(s string) *string { return &s }

func newTestSubmission(message string) *submission.Submission {
	s := submission.New("Dana Levi", strPtr("dana@example.com"), "0501234567", strPtr("Pricing"), message, submission.Metadata{})
	s.ID = 7
	s.CreatedAt = time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	s.PreviousMessageCount = 2
	return s
}

func TestRenderer_LeadNotification(t *testing.T) {
	r := NewRenderer(nil)
	contact := &identity.Identity{ID: 3, Name: "Dana", Email: strPtr("dana@example.com"), Phone: strPtr("0501234567")}

	msg, err := r.LeadNotification(newTestSubmission("Hello **there**"), contact, identity.MatchEmail)
	require.NoError(t, err)

	assert.Equal(t, "dana@example.com", msg.ReplyTo)
	assert.Contains(t, msg.Subject, "Dana Levi")
	assert.Contains(t, msg.HTML, `dir="rtl"`)
	assert.Contains(t, msg.HTML, `dir="ltr"`)
	assert.Contains(t, msg.HTML, "<strong>there</strong>")
	assert.Contains(t, msg.HTML, "Returning contact (matched by email)")
	assert.Contains(t, msg.Text, "Previous messages: 2")
	assert.Contains(t, msg.Text, "Received: 2024-03-01 10:30")

	// Hebrew section comes first.
	assert.Less(t, strings.Index(msg.HTML, `lang="he"`), strings.Index(msg.HTML, `lang="en"`))
}

func TestRenderer_LeadNotificationWithoutIdentity(t *testing.T) {
	r := NewRenderer(nil)

	msg, err := r.LeadNotification(newTestSubmission("hi"), nil, "")
	require.NoError(t, err)

	assert.Contains(t, msg.HTML, "No linked contact")
	assert.Contains(t, msg.Text, "Contact match: Not linked to a contact")
}

func TestRenderer_EscapesMarkup(t *testing.T) {
	r := NewRenderer(nil)

	msg, err := r.LeadNotification(newTestSubmission(`<script>alert(1)</script> [x](javascript:alert(1))`), nil, identity.MatchNew)
	require.NoError(t, err)

	assert.NotContains(t, msg.HTML, "<script>")
	assert.NotContains(t, msg.HTML, "javascript:")
}

func TestRenderer_ShowsTypedMarkupAsText(t *testing.T) {
	r := NewRenderer(nil)

	msg, err := r.LeadNotification(newTestSubmission("budget<price and time>3 weeks, use <b>bold</b>"), nil, identity.MatchNew)
	require.NoError(t, err)

	assert.Contains(t, msg.HTML, "budget&lt;price and time&gt;3 weeks")
	assert.Contains(t, msg.HTML, "&lt;b&gt;bold&lt;/b&gt;")
	assert.Contains(t, msg.Text, "budget<price and time>3 weeks")
}

func TestRenderer_AcknowledgmentLocaleOrder(t *testing.T) {
	r := NewRenderer(nil)
	s := newTestSubmission("hi")

	en, err := r.Acknowledgment(s, language.English)
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", en.To)
	assert.True(t, strings.HasPrefix(en.Subject, "Thank you"))
	assert.Less(t, strings.Index(en.HTML, `lang="en"`), strings.Index(en.HTML, `lang="he"`))
	assert.Contains(t, en.Text, "Hello Dana Levi,")

	he, err := r.Acknowledgment(s, language.Hebrew)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(he.Subject, "תודה"))
	assert.Less(t, strings.Index(he.HTML, `lang="he"`), strings.Index(he.HTML, `lang="en"`))
}

func TestRenderer_PasswordReset(t *testing.T) {
	r := NewRenderer(nil)

	msg, err := r.PasswordReset("admin@example.com", "https://example.com/reset-password?token=abc")
	require.NoError(t, err)

	assert.Equal(t, "admin@example.com", msg.To)
	assert.Contains(t, msg.HTML, `href="https://example.com/reset-password?token=abc"`)
	assert.Contains(t, msg.Text, "Reset password: https://example.com/reset-password?token=abc")
}
