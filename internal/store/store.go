// Package store holds the data-access operations behind the registration API:
// writing submissions, reading registrants back with their date preferences,
// updates and deletes by natural key, admin analytics and the admin
// allow-list lookup.
package store

import (
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB

	// atomicWrites wraps each participant's registrant and preference inserts
	// in one transaction. When false a failed preference insert leaves the
	// registrant row behind.
	atomicWrites bool
}

func New(db *gorm.DB, atomicWrites bool) *Store {
	return &Store{db: db, atomicWrites: atomicWrites}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
