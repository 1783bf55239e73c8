package dal

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	mssql "github.com/microsoft/go-mssqldb"
	"gorm.io/gorm"
)

// Violation 约束冲突类型
type Violation int

const (
	ViolationNone Violation = iota
	ViolationForeignKey
	ViolationUniqueKey
)

// String 返回冲突类型名称
func (v Violation) String() string {
	switch v {
	case ViolationForeignKey:
		return "foreign_key"
	case ViolationUniqueKey:
		return "unique_key"
	default:
		return "none"
	}
}

// SQL Server 错误号
const (
	MSSQLForeignKey      = 547
	MSSQLUniqueKey       = 2627
	MSSQLDuplicateKeyRow = 2601
)

// MySQL 错误号
const (
	MySQLDuplicateEntry  = 1062
	MySQLRowIsReferenced = 1451
	MySQLNoReferencedRow = 1452
)

// PostgreSQL SQLSTATE
const (
	PgForeignKeyViolation = "23503"
	PgUniqueViolation     = "23505"
)

// SQLite 扩展结果码
const (
	sqliteConstraint           = 19
	sqliteConstraintForeignKey = 787
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// sqliteError SQLite驱动错误
type sqliteError interface {
	error
	Code() int
}

// Classify 识别存储层错误中的外键/唯一键冲突，其他错误返回 ViolationNone
func Classify(err error) Violation {
	if err == nil {
		return ViolationNone
	}

	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ViolationForeignKey
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ViolationUniqueKey
	}

	var msErr mssql.Error
	if errors.As(err, &msErr) {
		switch msErr.Number {
		case MSSQLForeignKey:
			return ViolationForeignKey
		case MSSQLUniqueKey, MSSQLDuplicateKeyRow:
			return ViolationUniqueKey
		}
		return ViolationNone
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case MySQLRowIsReferenced, MySQLNoReferencedRow:
			return ViolationForeignKey
		case MySQLDuplicateEntry:
			return ViolationUniqueKey
		}
		return ViolationNone
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgForeignKeyViolation:
			return ViolationForeignKey
		case PgUniqueViolation:
			return ViolationUniqueKey
		}
		return ViolationNone
	}

	var liteErr sqliteError
	if errors.As(err, &liteErr) {
		return classifySQLite(liteErr)
	}

	return ViolationNone
}

func classifySQLite(err sqliteError) Violation {
	switch err.Code() {
	case sqliteConstraintForeignKey:
		return ViolationForeignKey
	case sqliteConstraintPrimaryKey, sqliteConstraintUnique:
		return ViolationUniqueKey
	}

	// 未开启扩展结果码时只能根据消息区分
	if err.Code()&0xff == sqliteConstraint {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "FOREIGN KEY constraint failed"):
			return ViolationForeignKey
		case strings.Contains(msg, "UNIQUE constraint failed"):
			return ViolationUniqueKey
		}
	}
	return ViolationNone
}
