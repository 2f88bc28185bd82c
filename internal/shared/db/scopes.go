package db

import (
	"strings"

	"gorm.io/gorm"
)

// Paginate limits a query to one 1-based page.
//
//	db.Scopes(db.Paginate(3, 10)).Find(&rows)
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return db
		}
		if page < 1 {
			page = 1
		}
		return db.Limit(pageSize).Offset((page - 1) * pageSize)
	}
}

// ContainsFold matches rows where any of columns contains text, ignoring
// case. LOWER/LIKE keeps it portable across PostgreSQL, MySQL and SQLite.
// Column names must come from code, never from request input.
func ContainsFold(text string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		text = strings.TrimSpace(text)
		if text == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + escapeLike(strings.ToLower(text)) + "%"

		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + ") LIKE ? ESCAPE '!'"
			args[i] = pattern
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
