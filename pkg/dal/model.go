package dal

import (
	"time"

	"gorm.io/gorm"
)

// Entity 可被仓储管理的实体，TableName 同时作为工作单元缓存仓储的键
type Entity interface {
	TableName() string
}

// SoftDeletable 使用布尔标记做逻辑删除的实体
// 默认查询会排除标记为已删除的记录
type SoftDeletable interface {
	SoftDeleteColumn() string
}

// Audit 审计字段，时间由 StampCreate/StampUpdate 写入
type Audit struct {
	CreatedBy string    `gorm:"size:100" json:"createdBy"`
	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedBy string    `gorm:"size:100" json:"updatedBy"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

// StampCreate 写入创建人与创建时间
func (a *Audit) StampCreate(by string, now time.Time) {
	a.CreatedBy = by
	a.CreatedAt = now
	a.StampUpdate(by, now)
}

// StampUpdate 写入修改人与修改时间，不会回退已有时间
func (a *Audit) StampUpdate(by string, now time.Time) {
	a.UpdatedBy = by
	if now.Before(a.UpdatedAt) {
		now = a.UpdatedAt
	}
	a.UpdatedAt = now
}

// Predicate 查询条件
type Predicate func(*gorm.DB) *gorm.DB

// Where 按条件过滤
func Where(query any, args ...any) Predicate {
	return func(db *gorm.DB) *gorm.DB { return db.Where(query, args...) }
}

// All 不附加任何条件
func All() Predicate {
	return func(db *gorm.DB) *gorm.DB { return db }
}

// ByID 按主键过滤
func ByID(id any) Predicate {
	return Where("id = ?", id)
}
