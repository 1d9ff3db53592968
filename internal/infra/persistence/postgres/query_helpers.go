package postgres

import (
	"strings"

	"cadastre/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// paginate applies a normalized limit/offset window.
func paginate(db *gorm.DB, page entity.Page) *gorm.DB {
	page = page.Normalize()

	return db.Limit(page.Limit).Offset(page.Offset)
}

// likePattern builds a lower-cased substring pattern for LOWER(col) LIKE ?,
// which behaves the same on PostgreSQL and SQLite.
func likePattern(search string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

	return "%" + replacer.Replace(strings.ToLower(strings.TrimSpace(search))) + "%"
}

// forUpdate pins the read to the primary and, on PostgreSQL, locks the rows
// with SELECT ... FOR UPDATE. Replicas configured through go-lib are never
// asked for a lock.
func forUpdate(db *gorm.DB) *gorm.DB {
	db = db.Clauses(dbresolver.Write)
	if db.Dialector.Name() != "postgres" {
		return db
	}

	return db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
}
