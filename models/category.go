package models

import (
	"time"
)

type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null;type:varchar(256)" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Slug        string    `gorm:"unique;not null" json:"slug"`
	IsPublished bool      `gorm:"not null;default:true" json:"is_published"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	Posts       []Post    `gorm:"foreignKey:CategoryID" json:"posts,omitempty"`
}
