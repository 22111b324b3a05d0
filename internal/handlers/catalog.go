package handlers

import (
	"strings"

	"gorm.io/gorm"
)

// activeScope filters on the active column. Catalog lists show active rows
// unless the caller asks for "false" or "all".
func activeScope(raw string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "all":
			return db
		case "false":
			return db.Where("active = ?", false)
		default:
			return db.Where("active = ?", true)
		}
	}
}

// keywordScope matches name or description, case-insensitive.
func keywordScope(raw string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		q := strings.TrimSpace(raw)
		if q == "" {
			return db
		}
		like := "%" + q + "%"
		return db.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
}
