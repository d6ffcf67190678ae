package model

import "time"

// Version is one recorded snapshot. Numbers are 1-based, contiguous and
// immutable once assigned; versions are never deleted. The file list is
// mutable only through sync while the version is current; notes are
// mutable at any time.
type Version struct {
	Number      int       `json:"number"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Files       []string  `json:"files"`
	Notes       string    `json:"notes,omitempty"`
}
