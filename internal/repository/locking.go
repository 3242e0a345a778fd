package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdateClause 返回行锁子句。
// SQLite不支持SELECT ... FOR UPDATE，写事务本身就是串行的，返回空子句。
func forUpdateClause(db *gorm.DB) []clause.Expression {
	if db.Dialector.Name() == "sqlite" {
		return nil
	}
	return []clause.Expression{clause.Locking{Strength: "UPDATE"}}
}
