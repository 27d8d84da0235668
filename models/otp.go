package models

import "time"

// OtpSession is one outstanding login code. Codes are stored hashed;
// requesting a new code for the same email replaces the old row.
type OtpSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"index;not null" json:"email"`
	CodeHash  string    `gorm:"not null" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
