package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/infrastructure/persistence/models"
	"github.com/keshevplus/leadhub/internal/infrastructure/repository"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

func setupRepo(t *testing.T) *repository.SubmissionRepository {
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
	return repository.NewSubmissionRepository(gdb, 5*time.Second, logger.Nop())
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func seedSubmissions(t *testing.T, repo *repository.SubmissionRepository, n int) []*submission.Submission {
	t.Helper()
	out := make([]*submission.Submission, 0, n)
	for i := 1; i <= n; i++ {
		s := submission.New(
			fmt.Sprintf("Lead %02d", i),
			strPtr(fmt.Sprintf("lead%02d@example.com", i)),
			"0501234567",
			strPtr("Original subject"),
			"Original message",
			submission.Metadata{},
		)
		s.CreatedAt = time.Date(2024, 1, 1, 0, i, 0, 0, time.UTC)
		require.NoError(t, repo.Create(context.Background(), s))
		out = append(out, s)
	}
	return out
}
