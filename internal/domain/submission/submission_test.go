package submission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestNew(t *testing.T) {
	s := New("Dana", nil, "0501234567", nil, "hello", Metadata{Source: "/contact"})

	assert.NotEmpty(t, s.MessageID)
	assert.False(t, s.IsRead)
	assert.Nil(t, s.IdentityID)
	assert.Equal(t, "/contact", s.Metadata.Source)
}

func TestMarkRead_Idempotent(t *testing.T) {
	s := &Submission{}

	assert.True(t, s.MarkRead())
	assert.False(t, s.MarkRead())
	assert.True(t, s.IsRead)
}

func TestApply(t *testing.T) {
	t.Run("empty patch", func(t *testing.T) {
		_, err := (&Submission{}).Apply(Patch{})
		assert.ErrorIs(t, err, ErrEmptyPatch)
	})

	t.Run("only named fields change", func(t *testing.T) {
		s := &Submission{Name: "Dana", Phone: "0501234567", Message: "hi", Subject: strPtr("old")}

		cols, err := s.Apply(Patch{Subject: strPtr("  new subject "), IsRead: boolPtr(true)})
		require.NoError(t, err)

		assert.Equal(t, []string{"subject", "is_read"}, cols)
		assert.Equal(t, "new subject", *s.Subject)
		assert.True(t, s.IsRead)
		assert.Equal(t, "Dana", s.Name)
		assert.Equal(t, "hi", s.Message)
	})

	t.Run("blank email clears it", func(t *testing.T) {
		s := &Submission{Email: strPtr("a@b.co")}
		cols, err := s.Apply(Patch{Email: strPtr("  ")})
		require.NoError(t, err)
		assert.Equal(t, []string{"email"}, cols)
		assert.Nil(t, s.Email)
	})

	t.Run("email lowercased", func(t *testing.T) {
		s := &Submission{}
		_, err := s.Apply(Patch{Email: strPtr(" Dana@Example.com ")})
		require.NoError(t, err)
		assert.Equal(t, "dana@example.com", *s.Email)
	})

	t.Run("read cannot go back to unread", func(t *testing.T) {
		s := &Submission{IsRead: true}
		_, err := s.Apply(Patch{IsRead: boolPtr(false)})
		assert.ErrorIs(t, err, ErrCannotMarkUnread)
		assert.True(t, s.IsRead)
	})

	t.Run("is_read false on unread is a no-op", func(t *testing.T) {
		s := &Submission{}
		cols, err := s.Apply(Patch{IsRead: boolPtr(false)})
		require.NoError(t, err)
		assert.Empty(t, cols)
	})
}
