package models

import "time"

// User is a registered account. The password column stores a bcrypt hash,
// never the plaintext.
type User struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Email     string `gorm:"size:150;uniqueIndex;not null"`
	FirstName string `gorm:"size:200;not null"`
	LastName  string `gorm:"size:200;not null"`
	Password  string `gorm:"size:250;not null"`
	CreatedAt time.Time

	Histories []RouteQuery `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
