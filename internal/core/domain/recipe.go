package domain

import "time"

// Recipe is stored in the relational store. Username is filled from the
// users table on reads and is ignored on writes.
type Recipe struct {
	ID           int64
	Title        string
	Instructions string
	ImageURL     string // empty when absent
	UserID       UserID
	Username     string
	CreatedAt    time.Time
}
