package dal

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository 通用仓储，查询惰性执行，写操作暂存到所属工作单元
type Repository[T Entity] struct {
	uow *UnitOfWork
}

// FindAllByProperty 按条件查询，返回未执行的查询
func (r *Repository[T]) FindAllByProperty(pred Predicate) *Query[T] {
	return newQuery[T](r.uow.db).Where(pred)
}

// Get 按条件查询，返回未执行的查询
func (r *Repository[T]) Get(pred Predicate) *Query[T] {
	return newQuery[T](r.uow.db).Where(pred)
}

// Insert 暂存新增，关联数据随主记录一起写入
func (r *Repository[T]) Insert(entity *T) error {
	return r.uow.stage(func(tx *gorm.DB) (int64, error) {
		res := tx.Create(entity)
		return res.RowsAffected, res.Error
	})
}

// Update 暂存整行更新，只写实体自身的列
func (r *Repository[T]) Update(entity *T) error {
	return r.uow.stage(func(tx *gorm.DB) (int64, error) {
		res := tx.Omit(clause.Associations).Save(entity)
		return res.RowsAffected, res.Error
	})
}

// Commit 提交所属工作单元
func (r *Repository[T]) Commit(ctx context.Context) (int64, error) {
	return r.uow.Commit(ctx)
}

// Query 惰性查询，组合方法返回新的查询，调用 Find/First/Count 时才访问数据库
type Query[T Entity] struct {
	db       *gorm.DB
	scopes   []Predicate
	unscoped bool
}

func newQuery[T Entity](db *gorm.DB) *Query[T] {
	return &Query[T]{db: db}
}

func (q *Query[T]) with(p Predicate) *Query[T] {
	scopes := make([]Predicate, 0, len(q.scopes)+1)
	scopes = append(scopes, q.scopes...)
	scopes = append(scopes, p)
	return &Query[T]{db: q.db, scopes: scopes, unscoped: q.unscoped}
}

// Where 追加条件
func (q *Query[T]) Where(pred Predicate) *Query[T] {
	if pred == nil {
		return q
	}
	return q.with(pred)
}

// Preload 预加载关联，支持 "Staff.Account.Role" 形式的嵌套路径
func (q *Query[T]) Preload(assoc string, args ...any) *Query[T] {
	return q.with(func(db *gorm.DB) *gorm.DB { return db.Preload(assoc, args...) })
}

// Order 排序
func (q *Query[T]) Order(order string) *Query[T] {
	return q.with(func(db *gorm.DB) *gorm.DB { return db.Order(order) })
}

// Unscoped 包含已逻辑删除的记录
func (q *Query[T]) Unscoped() *Query[T] {
	return &Query[T]{db: q.db, scopes: q.scopes, unscoped: true}
}

// build 生成最终的 gorm 查询
func (q *Query[T]) build(ctx context.Context) *gorm.DB {
	db := q.db.WithContext(ctx)

	var zero T
	if sd, ok := any(zero).(SoftDeletable); ok && !q.unscoped {
		db = db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: sd.SoftDeleteColumn()},
			Value:  false,
		})
	}

	for _, scope := range q.scopes {
		db = scope(db)
	}
	return db
}

// Find 查询全部匹配记录
func (q *Query[T]) Find(ctx context.Context) ([]T, error) {
	var entities []T
	if err := q.build(ctx).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// First 查询第一条记录，不存在时返回 nil, nil
func (q *Query[T]) First(ctx context.Context) (*T, error) {
	var entity T
	if err := q.build(ctx).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// Count 统计数量
func (q *Query[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := q.build(ctx).Model(new(T)).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
