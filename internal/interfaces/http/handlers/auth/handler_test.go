package auth

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshevplus/leadhub/internal/application/auth/usecases"
	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/interfaces/http/handlers/testutil"
	"github.com/keshevplus/leadhub/internal/shared/errors"
)

type mockLogin struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error)
}

func (m *mockLogin) Execute(ctx context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error) {
	return m.ExecuteFunc(ctx, cmd)
}

type mockLogout struct {
	calledWith uint
}

func (m *mockLogout) Execute(_ context.Context, adminID uint) error {
	m.calledWith = adminID
	return nil
}

type mockCurrentAdmin struct {
	ExecuteFunc func(ctx context.Context, adminID uint) (*identity.Identity, error)
}

func (m *mockCurrentAdmin) Execute(ctx context.Context, adminID uint) (*identity.Identity, error) {
	return m.ExecuteFunc(ctx, adminID)
}

type mockRequestReset struct {
	err   error
	email string
}

func (m *mockRequestReset) Execute(_ context.Context, cmd usecases.RequestPasswordResetCommand) error {
	m.email = cmd.Email
	return m.err
}

type mockReset struct {
	err error
}

func (m *mockReset) Execute(context.Context, usecases.ResetPasswordCommand) error {
	return m.err
}

func newAdmin() *identity.Identity {
	email := "admin@example.com"
	return &identity.Identity{ID: 3, Username: "admin", Email: &email, Role: identity.RoleAdmin}
}

func newTestHandler() (*Handler, *mockLogin, *mockLogout, *mockRequestReset, *mockReset) {
	login := &mockLogin{ExecuteFunc: func(_ context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error) {
		if cmd.Password != "secret-password" {
			return nil, errors.NewInvalidCredentialsError()
		}
		return &usecases.LoginResult{Token: "signed.jwt.token", Admin: newAdmin()}, nil
	}}
	logout := &mockLogout{}
	current := &mockCurrentAdmin{ExecuteFunc: func(context.Context, uint) (*identity.Identity, error) {
		return newAdmin(), nil
	}}
	requestReset := &mockRequestReset{}
	reset := &mockReset{}

	h := NewHandler(login, logout, current, requestReset, reset, testutil.NewMockLogger())
	return h, login, logout, requestReset, reset
}

func TestLogin(t *testing.T) {
	h, _, _, _, _ := newTestHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", LoginRequest{Email: "admin@example.com", Password: "secret-password"})
	h.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"signed.jwt.token","user":{"id":3,"username":"admin","role":"admin"}}`, w.Body.String())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	h, _, _, _, _ := newTestHandler()

	tests := []struct {
		name string
		body interface{}
	}{
		{"wrong password", LoginRequest{Email: "admin@example.com", Password: "nope"}},
		{"missing fields", map[string]string{"email": "admin@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", tt.body)
			h.Login(c)

			require.Equal(t, http.StatusBadRequest, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.Equal(t, "Invalid credentials", resp.Message)
		})
	}
}

func TestLogoutAndMe(t *testing.T) {
	h, _, logout, _, _ := newTestHandler()

	c, w := testutil.NewTestContext(http.MethodGet, "/auth/me", nil)
	h.Me(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/auth/me", nil)
	testutil.SetAuthContext(c, 3)
	h.Me(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":3,"username":"admin","email":"admin@example.com","role":"admin"}`, w.Body.String())

	c, w = testutil.NewTestContext(http.MethodPost, "/auth/logout", nil)
	testutil.SetAuthContext(c, 3)
	h.Logout(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(3), logout.calledWith)
}

func TestRequestReset_AlwaysOK(t *testing.T) {
	h, _, _, requestReset, _ := newTestHandler()
	requestReset.err = stderrors.New("lookup failed")

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/request-reset", RequestResetRequest{Email: "someone@example.com"})
	h.RequestReset(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "someone@example.com", requestReset.email)
}

func TestResetPassword(t *testing.T) {
	h, _, _, _, reset := newTestHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/reset-password", ResetPasswordRequest{Token: "t", Password: "long-enough"})
	h.ResetPassword(c)
	assert.Equal(t, http.StatusOK, w.Code)

	reset.err = errors.NewBadRequestError("Invalid or expired reset token")
	c, w = testutil.NewTestContext(http.MethodPost, "/auth/reset-password", ResetPasswordRequest{Token: "t", Password: "long-enough"})
	h.ResetPassword(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = testutil.NewTestContext(http.MethodPost, "/auth/reset-password", map[string]string{"token": "t"})
	h.ResetPassword(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
