package models

import (
	"time"

	"gorm.io/gorm"
)

// VisibleTo reports whether the post can be shown to the given viewer.
// A viewer ID of 0 means anonymous. Authors always see their own posts;
// everyone else needs the post published, its category published, and a
// publication date that is not in the future. A post without a category
// is only visible to its author.
func (p *Post) VisibleTo(viewerID uint, now time.Time) bool {
	if viewerID != 0 && p.AuthorID == viewerID {
		return true
	}
	if !p.IsPublished || p.PubDate.After(now) {
		return false
	}
	return p.Category != nil && p.Category.IsPublished
}

// PublishedPosts is the query form of the anonymous-viewer visibility
// rule, used by the listing handlers. Callers must select "posts.*"
// explicitly because of the category join.
func PublishedPosts(now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("LEFT JOIN categories ON categories.id = posts.category_id").
			Where("posts.is_published = ? AND categories.is_published = ? AND posts.pub_date <= ?", true, true, now)
	}
}

// VisiblePosts is PublishedPosts with the author override: a viewer's
// own posts match regardless of the published flags.
func VisiblePosts(viewerID uint, now time.Time) func(db *gorm.DB) *gorm.DB {
	if viewerID == 0 {
		return PublishedPosts(now)
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("LEFT JOIN categories ON categories.id = posts.category_id").
			Where("(posts.is_published = ? AND categories.is_published = ? AND posts.pub_date <= ?) OR posts.author_id = ?", true, true, now, viewerID)
	}
}

// ByPubDateDesc applies the default post ordering.
func ByPubDateDesc(db *gorm.DB) *gorm.DB {
	return db.Order("posts.pub_date DESC")
}
