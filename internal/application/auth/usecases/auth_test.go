package usecases

import (
	"context"
	stderrors "errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/infrastructure/auth"
	"github.com/keshevplus/leadhub/internal/infrastructure/persistence/models"
	"github.com/keshevplus/leadhub/internal/infrastructure/repository"
	"github.com/keshevplus/leadhub/internal/shared/db"
	"github.com/keshevplus/leadhub/internal/shared/errors"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

const adminPassword = "correct-horse"

type mockResetMailer struct {
	SendFunc func(ctx context.Context, to, resetURL string) error
	to       []string
	urls     []string
}

func (m *mockResetMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	m.to = append(m.to, to)
	m.urls = append(m.urls, resetURL)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, resetURL)
	}
	return nil
}

type authFixture struct {
	db     *gorm.DB
	repo   *repository.IdentityRepository
	hasher *auth.BcryptPasswordHasher
	tokens *auth.JWTService
	admin  *identity.Identity
}

func setupAuth(t *testing.T) *authFixture {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gdb.AutoMigrate(models.All()...))

	f := &authFixture{
		db:     gdb,
		repo:   repository.NewIdentityRepository(gdb, 5*time.Second, logger.Nop()),
		hasher: auth.NewBcryptPasswordHasher(4),
		tokens: auth.NewJWTService("test-secret", 1440, 60),
	}

	res, err := NewCreateAdminUseCase(f.repo, f.hasher, db.NewTransactionManager(f.db), logger.Nop()).Execute(context.Background(), CreateAdminCommand{
		Email:    "Admin@Example.com",
		Username: "admin",
		Password: adminPassword,
	})
	require.NoError(t, err)
	f.admin = res.Admin
	return f
}

func (f *authFixture) login() *LoginUseCase {
	return NewLoginUseCase(f.repo, f.hasher, f.tokens, logger.Nop())
}

func TestLogin_Success(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()

	res, err := f.login().Execute(ctx, LoginCommand{Email: " admin@example.com ", Password: adminPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "admin", res.Admin.Username)
	assert.True(t, res.Admin.LoggedIn)

	claims, err := f.tokens.Verify(res.Token, auth.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, f.admin.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	stored, err := f.repo.FindByID(ctx, f.admin.ID)
	require.NoError(t, err)
	assert.True(t, stored.LoggedIn)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()

	contactEmail := "lead@example.com"
	require.NoError(t, f.repo.Create(ctx, identity.NewContactIdentity(identity.Contact{Name: "Lead", Email: &contactEmail})))

	tests := []struct {
		name string
		cmd  LoginCommand
	}{
		{"wrong password", LoginCommand{Email: "admin@example.com", Password: "wrong-password"}},
		{"unknown email", LoginCommand{Email: "nobody@example.com", Password: adminPassword}},
		{"contact identity", LoginCommand{Email: contactEmail, Password: adminPassword}},
		{"empty password", LoginCommand{Email: "admin@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.login().Execute(ctx, tt.cmd)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidCredentialsError(err))
			assert.Equal(t, "Invalid credentials", errors.GetAppError(err).Message)
		})
	}
}

func TestLogoutAndCurrentAdmin(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()

	_, err := f.login().Execute(ctx, LoginCommand{Email: "admin@example.com", Password: adminPassword})
	require.NoError(t, err)

	me, err := NewGetCurrentAdminUseCase(f.repo, logger.Nop()).Execute(ctx, f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", me.EmailOrEmpty())

	require.NoError(t, NewLogoutUseCase(f.repo, logger.Nop()).Execute(ctx, f.admin.ID))
	stored, err := f.repo.FindByID(ctx, f.admin.ID)
	require.NoError(t, err)
	assert.False(t, stored.LoggedIn)

	_, err = NewGetCurrentAdminUseCase(f.repo, logger.Nop()).Execute(ctx, 999)
	require.Error(t, err)
	assert.Equal(t, 401, errors.GetAppError(err).Code)
}

func TestRequestPasswordReset_SendsLinkOnlyToAdmins(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()
	mailer := &mockResetMailer{}
	uc := NewRequestPasswordResetUseCase(f.repo, f.tokens, mailer, "https://site.example/", logger.Nop())

	require.NoError(t, uc.Execute(ctx, RequestPasswordResetCommand{Email: "nobody@example.com"}))
	assert.Empty(t, mailer.to)

	require.NoError(t, uc.Execute(ctx, RequestPasswordResetCommand{Email: "ADMIN@example.com"}))
	require.Len(t, mailer.urls, 1)
	assert.Equal(t, "admin@example.com", mailer.to[0])
	assert.True(t, strings.HasPrefix(mailer.urls[0], "https://site.example/reset-password?token="))

	parsed, err := url.Parse(mailer.urls[0])
	require.NoError(t, err)
	claims, err := f.tokens.Verify(parsed.Query().Get("token"), auth.TokenTypeReset)
	require.NoError(t, err)
	assert.Equal(t, f.admin.ID, claims.UserID)
}

func TestRequestPasswordReset_MailerFailureIsHidden(t *testing.T) {
	f := setupAuth(t)
	mailer := &mockResetMailer{SendFunc: func(context.Context, string, string) error {
		return stderrors.New("smtp down")
	}}
	uc := NewRequestPasswordResetUseCase(f.repo, f.tokens, mailer, "https://site.example", logger.Nop())

	assert.NoError(t, uc.Execute(context.Background(), RequestPasswordResetCommand{Email: "admin@example.com"}))
	assert.Len(t, mailer.to, 1)
}

func TestResetPassword(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()
	uc := NewResetPasswordUseCase(f.repo, f.hasher, f.tokens, logger.Nop())

	access, _, err := f.tokens.GenerateAccess(f.admin.ID, "admin")
	require.NoError(t, err)
	reset, _, err := f.tokens.GenerateReset(f.admin.ID, "admin")
	require.NoError(t, err)

	t.Run("short password", func(t *testing.T) {
		err := uc.Execute(ctx, ResetPasswordCommand{Token: reset, Password: "short"})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("access token is not a reset token", func(t *testing.T) {
		err := uc.Execute(ctx, ResetPasswordCommand{Token: access, Password: "new-password"})
		require.Error(t, err)
		assert.Equal(t, 400, errors.GetAppError(err).Code)
	})

	t.Run("valid reset token", func(t *testing.T) {
		require.NoError(t, uc.Execute(ctx, ResetPasswordCommand{Token: reset, Password: "new-password"}))

		_, err := f.login().Execute(ctx, LoginCommand{Email: "admin@example.com", Password: adminPassword})
		assert.Error(t, err)
		_, err = f.login().Execute(ctx, LoginCommand{Email: "admin@example.com", Password: "new-password"})
		assert.NoError(t, err)
	})
}

func TestCreateAdmin_PromotesExistingContact(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()

	email := "owner@example.com"
	contact := identity.NewContactIdentity(identity.Contact{Name: "Owner", Email: &email})
	require.NoError(t, f.repo.Create(ctx, contact))

	res, err := NewCreateAdminUseCase(f.repo, f.hasher, db.NewTransactionManager(f.db), logger.Nop()).Execute(ctx, CreateAdminCommand{
		Email:    email,
		Username: "owner",
		Password: "owner-password",
	})
	require.NoError(t, err)
	assert.True(t, res.Promoted)
	assert.Equal(t, contact.ID, res.Admin.ID)

	stored, err := f.repo.FindByID(ctx, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, identity.RoleAdmin, stored.Role)
	assert.Equal(t, "Owner", stored.Name)

	_, err = f.login().Execute(ctx, LoginCommand{Email: email, Password: "owner-password"})
	assert.NoError(t, err)
}

func TestCreateAdmin_Validation(t *testing.T) {
	f := setupAuth(t)
	uc := NewCreateAdminUseCase(f.repo, f.hasher, db.NewTransactionManager(f.db), logger.Nop())

	_, err := uc.Execute(context.Background(), CreateAdminCommand{Email: "not-an-email", Password: "long-enough"})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), CreateAdminCommand{Email: "a@example.com", Password: "short"})
	assert.True(t, errors.IsValidationError(err))
}

func TestSetPassword(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()
	uc := NewSetPasswordUseCase(f.repo, f.hasher, logger.Nop())

	err := uc.Execute(ctx, SetPasswordCommand{Email: "nobody@example.com", Password: "whatever-long"})
	assert.True(t, errors.IsNotFoundError(err))

	require.NoError(t, uc.Execute(ctx, SetPasswordCommand{Email: "admin@example.com", Password: "rotated-password"}))
	_, err = f.login().Execute(ctx, LoginCommand{Email: "admin@example.com", Password: "rotated-password"})
	assert.NoError(t, err)
}
