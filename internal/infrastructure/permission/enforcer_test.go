package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/keshevplus/leadhub/internal/shared/logger"
)

func openPolicyDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestEnforcer_LeadGrants(t *testing.T) {
	db := openPolicyDB(t)
	e, err := NewEnforcer(db, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, e.Allow(LeadGrants...))
	require.NoError(t, e.Allow(LeadGrants...), "seeding twice must not fail")

	tests := []struct {
		role, action string
		want         bool
	}{
		{"admin", ActionRead, true},
		{"admin", ActionWrite, true},
		{"contact", ActionRead, false},
		{"user", ActionWrite, false},
		{"", ActionRead, false},
	}
	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.action, func(t *testing.T) {
			ok, err := e.Enforce(tt.role, ResourceLeads, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestEnforcer_GrantsPersist(t *testing.T) {
	db := openPolicyDB(t)
	first, err := NewEnforcer(db, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, first.Allow(Grant{Role: "viewer", Resource: ResourceLeads, Action: ActionRead}))

	second, err := NewEnforcer(db, logger.Nop())
	require.NoError(t, err)

	ok, err := second.Enforce("viewer", ResourceLeads, ActionRead)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = second.Enforce("viewer", ResourceLeads, ActionWrite)
	require.NoError(t, err)
	assert.False(t, ok)
}
