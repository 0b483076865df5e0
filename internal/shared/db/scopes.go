package db

import (
	"strings"

	"gorm.io/gorm"
)

// ActiveOnly filters catalog rows by their activo flag when active is non-nil.
func ActiveOnly(active *bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if active == nil {
			return db
		}
		return db.Where("active = ?", *active)
	}
}

// Search applies a case-insensitive substring match over the given columns,
// OR-ed together. An empty term is a no-op.
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(term) + "%"
		conds := make([]string, 0, len(columns))
		args := make([]interface{}, 0, len(columns))
		for _, col := range columns {
			conds = append(conds, "LOWER("+col+") LIKE ?")
			args = append(args, pattern)
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// Paginate applies offset/limit for 1-based page numbers.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 || pageSize < 1 {
			return db
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
