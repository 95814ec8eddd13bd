package database

import "gorm.io/gorm"

// Collated returns a GORM scope that compares column against val ignoring
// case and accents (the "strength 2" comparison used for username and note
// title uniqueness). The column name must be a trusted identifier, never
// caller input.
func Collated(column, val string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("lower(immutable_unaccent("+column+")) = lower(immutable_unaccent(?))", val)
	}
}
