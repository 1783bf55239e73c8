package model

import (
	"github.com/edmback/pkg/dal"
	"github.com/google/uuid"
)

// Department 部门
// 部门名称只在未删除的部门中唯一，由服务层校验
type Department struct {
	ID             string            `gorm:"primaryKey;size:50" json:"id"`
	RoomNumber     string            `gorm:"size:20;not null" json:"roomNumber"`
	DepartmentName string            `gorm:"size:100;not null;index" json:"departmentName"`
	Hotline        *string           `gorm:"size:20" json:"hotline"`
	IsDeleted      bool              `gorm:"not null;default:false;index" json:"isDeleted"`
	Staff          []DepartmentStaff `gorm:"foreignKey:DepartmentID" json:"staff"`
	dal.Audit
}

// TableName 表名
func (Department) TableName() string {
	return "departments"
}

// SoftDeleteColumn 逻辑删除列
func (Department) SoftDeleteColumn() string {
	return "is_deleted"
}

// DepartmentStaff 部门成员，随所属部门创建
type DepartmentStaff struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DepartmentID string    `gorm:"size:50;not null;index" json:"departmentId"`
	AccountID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"accountId"`
	Account      *Account  `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

// TableName 表名
func (DepartmentStaff) TableName() string {
	return "department_staff"
}
