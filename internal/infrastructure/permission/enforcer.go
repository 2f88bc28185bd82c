// Package permission decides which admin roles may touch leads. Grants are
// casbin policies stored in the casbin_rule table.
package permission

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/keshevplus/leadhub/internal/shared/logger"
)

const (
	ResourceLeads = "leads"

	ActionRead  = "read"
	ActionWrite = "write"
)

// The subject is the role claim of a verified token, so there is no g section.
const roleModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Grant allows Role to perform Action on Resource.
type Grant struct {
	Role     string
	Resource string
	Action   string
}

// LeadGrants is what a fresh database is seeded with.
var LeadGrants = []Grant{
	{Role: "admin", Resource: ResourceLeads, Action: ActionRead},
	{Role: "admin", Resource: ResourceLeads, Action: ActionWrite},
}

type Enforcer struct {
	casbin *casbin.SyncedEnforcer
	logger logger.Interface
}

func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(roleModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	// NewSyncedEnforcer loads the stored policy.
	se, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	return &Enforcer{casbin: se, logger: log}, nil
}

// Enforce reports whether role may perform action on resource.
func (e *Enforcer) Enforce(role, resource, action string) (bool, error) {
	allowed, err := e.casbin.Enforce(role, resource, action)
	if err != nil {
		e.logger.Errorw("casbin enforce failed", "role", role, "resource", resource, "action", action, "error", err)
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}

// Allow persists grants. Grants already stored are skipped.
func (e *Enforcer) Allow(grants ...Grant) error {
	added := 0
	for _, g := range grants {
		ok, err := e.casbin.AddPolicy(g.Role, g.Resource, g.Action)
		if err != nil {
			return fmt.Errorf("failed to grant %s %s on %s: %w", g.Role, g.Action, g.Resource, err)
		}
		if ok {
			added++
		}
	}

	if added > 0 {
		e.logger.Infow("permission grants stored", "added", added)
	}
	return nil
}
