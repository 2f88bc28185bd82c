package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/keshevplus/leadhub/internal/application/notification"
	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/domain/submission"
)

type mockIdentityRepository struct {
	CreateFunc         func(ctx context.Context, i *identity.Identity) error
	FindByIDFunc       func(ctx context.Context, id uint) (*identity.Identity, error)
	FindByEmailFunc    func(ctx context.Context, email string) (*identity.Identity, error)
	FindByPhoneFunc    func(ctx context.Context, phone string) (*identity.Identity, error)
	UpdateFieldsFunc   func(ctx context.Context, i *identity.Identity, columns ...string) error
	FindDuplicatesFunc func(ctx context.Context) ([]identity.DuplicateGroup, error)
}

func (m *mockIdentityRepository) Create(ctx context.Context, i *identity.Identity) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, i)
	}
	i.ID = 1
	return nil
}

func (m *mockIdentityRepository) FindByID(ctx context.Context, id uint) (*identity.Identity, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, identity.ErrNotFound
}

func (m *mockIdentityRepository) FindByEmail(ctx context.Context, email string) (*identity.Identity, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, identity.ErrNotFound
}

func (m *mockIdentityRepository) FindByPhone(ctx context.Context, phone string) (*identity.Identity, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	return nil, identity.ErrNotFound
}

func (m *mockIdentityRepository) UpdateFields(ctx context.Context, i *identity.Identity, columns ...string) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, i, columns...)
	}
	return nil
}

func (m *mockIdentityRepository) SetLoggedIn(ctx context.Context, id uint, loggedIn bool) error {
	return nil
}

func (m *mockIdentityRepository) SetPasswordHash(ctx context.Context, id uint, hash string) error {
	return nil
}

func (m *mockIdentityRepository) FindDuplicates(ctx context.Context) ([]identity.DuplicateGroup, error) {
	if m.FindDuplicatesFunc != nil {
		return m.FindDuplicatesFunc(ctx)
	}
	return nil, nil
}

type mockSubmissionRepository struct {
	mu                  sync.Mutex
	created             []*submission.Submission
	CreateFunc          func(ctx context.Context, s *submission.Submission) error
	CountByIdentityFunc func(ctx context.Context, identityID uint) (int64, error)
}

func (m *mockSubmissionRepository) Create(ctx context.Context, s *submission.Submission) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, s); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, s)
	s.ID = uint(len(m.created))
	return nil
}

func (m *mockSubmissionRepository) FindByID(ctx context.Context, id uint) (*submission.Submission, error) {
	return nil, submission.ErrNotFound
}

func (m *mockSubmissionRepository) List(ctx context.Context, filter submission.ListFilter) ([]*submission.Submission, int64, error) {
	return nil, 0, nil
}

func (m *mockSubmissionRepository) Update(ctx context.Context, s *submission.Submission, columns ...string) error {
	return nil
}

func (m *mockSubmissionRepository) Delete(ctx context.Context, id uint) error {
	return nil
}

func (m *mockSubmissionRepository) MarkRead(ctx context.Context, id uint) error {
	return nil
}

func (m *mockSubmissionRepository) CountByIdentity(ctx context.Context, identityID uint) (int64, error) {
	if m.CountByIdentityFunc != nil {
		return m.CountByIdentityFunc(ctx, identityID)
	}
	return 0, nil
}

func (m *mockSubmissionRepository) CountByIdentityBefore(ctx context.Context, identityID uint, before time.Time) (int64, error) {
	return m.CountByIdentity(ctx, identityID)
}

func (m *mockSubmissionRepository) CountUnread(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockSubmissionRepository) ListUnlinked(ctx context.Context, afterID uint, limit int) ([]*submission.Submission, error) {
	return nil, nil
}

func (m *mockSubmissionRepository) LinkIdentity(ctx context.Context, s *submission.Submission) error {
	return nil
}

type mockResolver struct {
	calls               int
	ResolveOrCreateFunc func(ctx context.Context, contact identity.Contact) (*identity.Identity, identity.MatchType, error)
}

func (m *mockResolver) ResolveOrCreate(ctx context.Context, contact identity.Contact) (*identity.Identity, identity.MatchType, error) {
	m.calls++
	if m.ResolveOrCreateFunc != nil {
		return m.ResolveOrCreateFunc(ctx, contact)
	}
	return &identity.Identity{ID: 1, Name: contact.Name, Email: contact.Email, Phone: contact.Phone}, identity.MatchNew, nil
}

type mockNotifier struct {
	mu      sync.Mutex
	calls   int
	outcome notification.Outcome
}

func (m *mockNotifier) Notify(ctx context.Context, s *submission.Submission, contact *identity.Identity, matchType identity.MatchType) notification.Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.outcome
}
