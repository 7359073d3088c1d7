package models

// SessionRecord is a persisted server-side session.
type SessionRecord struct {
	ID        string `gorm:"primaryKey;type:varchar(64)"`
	Data      []byte `gorm:"not null"`
	ExpiresAt int64  `gorm:"index;not null;default:0"` // unix seconds, 0 means no expiry
}

// TableName keeps the rows apart from any pre-existing "sessions" table with another layout.
func (SessionRecord) TableName() string { return "fiber_sessions" }
