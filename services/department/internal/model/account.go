package model

import (
	"github.com/edmback/pkg/auth"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 固定角色ID
const (
	RoleAdminID     int64 = 1
	RoleModeratorID int64 = 2
	RoleStaffID     int64 = 3
)

// Role 角色，只读参考数据
type Role struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

// TableName 表名
func (Role) TableName() string {
	return "roles"
}

// Account 账号
// Departments 是反向集合，部门查询从不加载它
type Account struct {
	ID          uuid.UUID         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username    string            `gorm:"size:50;uniqueIndex;not null" json:"username"`
	RoleID      int64             `gorm:"not null;index" json:"roleId"`
	Role        *Role             `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Departments []DepartmentStaff `gorm:"foreignKey:AccountID" json:"-"`
}

// TableName 表名
func (Account) TableName() string {
	return "accounts"
}

// DefaultRoles 内置角色
func DefaultRoles() []Role {
	return []Role{
		{ID: RoleAdminID, Name: auth.RoleAdminName},
		{ID: RoleModeratorID, Name: auth.RoleModeratorName},
		{ID: RoleStaffID, Name: auth.RoleStaffName},
	}
}

// AutoMigrate 迁移部门服务的表结构
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Role{}, &Account{}, &Department{}, &DepartmentStaff{})
}

// SeedRoles 写入内置角色，已存在时更新名称
func SeedRoles(db *gorm.DB) error {
	roles := DefaultRoles()
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&roles).Error
}
