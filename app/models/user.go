package models

// User is a registered account. The password is stored only as a bcrypt hash.
type User struct {
	ID             uint   `gorm:"primaryKey"                     json:"id"`
	Email          string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	HashedPassword string `gorm:"size:255;not null"             json:"hashed_password"`
}

func (User) TableName() string { return "users" }
