package department

import (
	"github.com/edmback/pkg/auth"
	"github.com/edmback/services/department/internal/model"
)

// visibility 按调用方角色裁剪部门成员，返回新切片，不修改入参
type visibility func(staff []model.DepartmentStaff) []model.DepartmentStaff

// visibilityFor 返回角色类别对应的可见性策略
// staff 与未识别角色没有读权限，返回 false
func visibilityFor(class auth.RoleClass) (visibility, bool) {
	switch class {
	case auth.RoleAdmin:
		return allStaff, true
	case auth.RoleModerator:
		return staffRoleOnly, true
	case auth.RoleStaff, auth.RoleUnrecognized:
		return nil, false
	default:
		return nil, false
	}
}

func allStaff(staff []model.DepartmentStaff) []model.DepartmentStaff {
	out := make([]model.DepartmentStaff, len(staff))
	copy(out, staff)
	return out
}

// staffRoleOnly 只保留账号角色为 staff 的成员
func staffRoleOnly(staff []model.DepartmentStaff) []model.DepartmentStaff {
	out := make([]model.DepartmentStaff, 0, len(staff))
	for _, s := range staff {
		if s.Account != nil && s.Account.RoleID == model.RoleStaffID {
			out = append(out, s)
		}
	}
	return out
}
