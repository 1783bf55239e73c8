package auth

import (
	"fmt"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// defaultModel 内置RBAC模型，路径支持 keyMatch2 通配，动作 * 表示所有方法
const defaultModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && (p.act == "*" || r.act == p.act)
`

// Permission 权限定义
type Permission struct {
	Resource string `json:"resource"` // 资源路径,如 /api/departments/*
	Action   string `json:"action"`   // 动作,如 GET, POST, PUT, DELETE, *
}

// DefaultPolicies 部门接口的默认策略
var DefaultPolicies = map[string][]Permission{
	RoleAdminName: {
		{Resource: "/api/departments", Action: "*"},
		{Resource: "/api/departments/*", Action: "*"},
	},
	RoleModeratorName: {
		{Resource: "/api/departments", Action: "GET"},
		{Resource: "/api/departments/*", Action: "GET"},
	},
	RoleStaffName: {
		{Resource: "/api/departments", Action: "GET"},
		{Resource: "/api/departments/*", Action: "GET"},
	},
}

// NewEnforcer 创建Casbin执行器，策略通过GORM适配器持久化
// modelPath 为空时使用内置模型
func NewEnforcer(db *gorm.DB, modelPath string) (*casbin.Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	var m model.Model
	if modelPath != "" {
		m, err = model.NewModelFromFile(modelPath)
	} else {
		m, err = model.NewModelFromString(defaultModel)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load casbin policy: %w", err)
	}
	return enforcer, nil
}

// SeedPolicies 写入缺失的策略，已存在的策略保持不变
func SeedPolicies(enforcer *casbin.Enforcer, policies map[string][]Permission) error {
	for role, perms := range policies {
		for _, perm := range perms {
			if _, err := enforcer.AddPolicy(role, perm.Resource, perm.Action); err != nil {
				return fmt.Errorf("failed to add policy %s %s %s: %w", role, perm.Resource, perm.Action, err)
			}
		}
	}
	return nil
}

// AnyAllowed 任一角色有权限即放行
func AnyAllowed(enforcer *casbin.Enforcer, roles []string, obj, act string) (bool, error) {
	for _, role := range roles {
		ok, err := enforcer.Enforce(role, obj, act)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
