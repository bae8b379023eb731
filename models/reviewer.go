// models/reviewer.go
package models

import "time"

// Reviewer is an account that may review pending submissions. Whether a
// reviewer counts as an admin is decided by the configured allow-list, not by
// a column, so the table only stores identity and credentials.
type Reviewer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"not null;uniqueIndex;size:255"`
	Name      string    `json:"name" gorm:"size:100"`
	Password  string    `json:"-" gorm:"not null"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
}

func (Reviewer) TableName() string {
	return "reviewers"
}
