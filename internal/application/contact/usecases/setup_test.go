package usecases

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/keshevplus/leadhub/internal/infrastructure/persistence/models"
	"github.com/keshevplus/leadhub/internal/infrastructure/repository"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

const testTimeout = 5 * time.Second

type testStore struct {
	db          *gorm.DB
	identities  *repository.IdentityRepository
	submissions *repository.SubmissionRepository
}

func setupTestStore(t *testing.T) *testStore {
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

	return &testStore{
		db:          gdb,
		identities:  repository.NewIdentityRepository(gdb, testTimeout, logger.Nop()),
		submissions: repository.NewSubmissionRepository(gdb, testTimeout, logger.Nop()),
	}
}

func (s *testStore) countIdentities(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Model(&models.IdentityModel{}).Count(&n).Error)
	return n
}

func strPtr(s string) *string { return &s }

func validPayload() ContactPayload {
	return ContactPayload{
		Name:    "Dana Levi",
		Email:   "Dana@Example.com",
		Phone:   "050-123-4567",
		Subject: "Pricing",
		Message: "I would like a quote",
	}
}
