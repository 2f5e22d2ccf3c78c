package models

import (
	"time"
)

type Post struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null;type:varchar(256)" json:"title"`
	Text        string    `gorm:"not null;type:text" json:"text"`
	PubDate     time.Time `gorm:"not null;index" json:"pub_date"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Author      User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	LocationID  *uint     `json:"location_id"`
	Location    *Location `gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL" json:"location,omitempty"`
	CategoryID  *uint     `json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	IsPublished bool      `gorm:"not null;default:true" json:"is_published"`
	ImageURL    string    `json:"image_url"`
	Comments    []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
