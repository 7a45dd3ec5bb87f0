package user

import "time"

// User mirrors an externally authenticated identity so owned rows can reference it.
type User struct {
	UserID    string    `gorm:"size:64;primaryKey"`
	Role      string    `gorm:"size:16;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
