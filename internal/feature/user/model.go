package user

import "time"

// UserModel defines the users schema for migration. Reads and writes go
// through the generic record store, not gorm struct mapping; the
// password column always holds a bcrypt hash, never plaintext.
type UserModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Username  string `gorm:"uniqueIndex;size:50;not null"`
	Password  string `gorm:"size:255;not null"`
	Email     string `gorm:"size:100"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserModel) TableName() string { return "users" }
