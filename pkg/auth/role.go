package auth

// 角色名称
const (
	RoleAdminName     = "admin"
	RoleModeratorName = "moderator"
	RoleStaffName     = "staff"
)

// RoleClass 调用方角色类别，在鉴权边界处由角色集合解析一次
type RoleClass int

const (
	RoleUnrecognized RoleClass = iota
	RoleStaff
	RoleModerator
	RoleAdmin
)

// String 返回角色类别名称
func (c RoleClass) String() string {
	switch c {
	case RoleAdmin:
		return RoleAdminName
	case RoleModerator:
		return RoleModeratorName
	case RoleStaff:
		return RoleStaffName
	default:
		return "unrecognized"
	}
}

// Classify 解析角色集合，取等级最高的已知角色
// admin > moderator > staff，都不包含时返回 RoleUnrecognized
func Classify(roles []string) RoleClass {
	class := RoleUnrecognized
	for _, r := range roles {
		var c RoleClass
		switch r {
		case RoleAdminName:
			c = RoleAdmin
		case RoleModeratorName:
			c = RoleModerator
		case RoleStaffName:
			c = RoleStaff
		default:
			continue
		}
		if c > class {
			class = c
		}
	}
	return class
}
