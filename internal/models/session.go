package models

import "time"

// Session is the server-side proof of authentication. The ID is the opaque
// token handed to the client in the session cookie; a session is valid only
// while expires_at is in the future, even if the row still exists.
type Session struct {
	ID        string    `gorm:"size:64;primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
