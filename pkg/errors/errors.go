package errors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")

// pgUniqueViolation PostgreSQL 唯一约束冲突错误码
const pgUniqueViolation = "23505"

// IsUniqueViolation 判断错误是否为数据库唯一约束冲突。
// 签到去重与"同一班级至多一个进行中课堂"两个不变量均依赖存储层
// 唯一索引兜底，并发竞争下的冲突在此处被识别并映射为业务冲突错误。
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}
