package dal

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrUnitOfWorkClosed 工作单元已释放
var ErrUnitOfWorkClosed = errors.New("unit of work is closed")

type operation func(tx *gorm.DB) (int64, error)

// UnitOfWork 工作单元
// 每个逻辑请求创建一个，按实体缓存仓储，Commit 在一个事务内写入全部暂存操作。
// 不支持并发使用。
type UnitOfWork struct {
	db      *gorm.DB
	repos   map[string]any
	pending []operation
	closed  bool
}

// NewUnitOfWork 创建工作单元
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		db:    db,
		repos: make(map[string]any),
	}
}

// For 获取工作单元内实体 T 的仓储，同一工作单元内多次调用返回同一实例
func For[T Entity](u *UnitOfWork) *Repository[T] {
	var zero T
	key := zero.TableName()

	if r, ok := u.repos[key].(*Repository[T]); ok {
		return r
	}
	r := &Repository[T]{uow: u}
	if u.repos != nil {
		u.repos[key] = r
	}
	return r
}

func (u *UnitOfWork) stage(op operation) error {
	if u.closed {
		return ErrUnitOfWorkClosed
	}
	u.pending = append(u.pending, op)
	return nil
}

// Pending 暂存的写操作数量
func (u *UnitOfWork) Pending() int {
	return len(u.pending)
}

// Commit 在一个事务内按暂存顺序执行全部写操作，返回受影响行数。
// 任一操作失败则整体回滚，原始错误交由调用方分类。
// 无论成功与否暂存列表都会被清空。
func (u *UnitOfWork) Commit(ctx context.Context) (int64, error) {
	if u.closed {
		return 0, ErrUnitOfWorkClosed
	}

	ops := u.pending
	u.pending = nil
	if len(ops) == 0 {
		return 0, nil
	}

	var affected int64
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range ops {
			n, err := op(tx)
			if err != nil {
				return err
			}
			affected += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// Close 释放工作单元，丢弃未提交的暂存操作，可重复调用
func (u *UnitOfWork) Close() {
	u.closed = true
	u.pending = nil
	u.repos = nil
}
