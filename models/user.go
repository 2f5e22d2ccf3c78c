package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `gorm:"unique;not null" json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  *string   `gorm:"type:varchar(255)" json:"-"` // Don't expose password in JSON
	GoogleID  *string   `gorm:"uniqueIndex" json:"-"`
	Provider  string    `gorm:"not null;default:'email'" json:"-"`
	Posts     []Post    `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
	Comments  []Comment `gorm:"foreignKey:AuthorID" json:"comments,omitempty"`
}
