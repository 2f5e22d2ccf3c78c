package controllers

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/blogicum/api-go/models"
)

// listedPost is a post row annotated for the listing pages.
type listedPost struct {
	models.Post
	AuthorUsername string `json:"author_username"`
	CommentCount   int64  `json:"comment_count"`
}

const listedPostSelect = `
	posts.*,
	users.username AS author_username,
	(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count
`

// PostForm carries the client-editable post fields. The author never
// comes from the payload.
type PostForm struct {
	Title      string `json:"title" form:"title" binding:"required,max=256"`
	Text       string `json:"text" form:"text" binding:"required"`
	PubDate    string `json:"pub_date" form:"pub_date" binding:"required"`
	LocationID *uint  `json:"location_id" form:"location_id"`
	CategoryID *uint  `json:"category_id" form:"category_id"`
	ImageURL   string `json:"image_url" form:"image_url"`
}

var pubDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parsePubDate(raw string) (time.Time, error) {
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("Enter a valid date and time")
}

// fieldErrors flattens a binding error into per-field messages so the
// client can redisplay the form with the offending fields called out.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := snakeCase(fe.Field())
			switch fe.Tag() {
			case "required":
				out[field] = "This field is required"
			case "email":
				out[field] = "Enter a valid email address"
			case "max":
				out[field] = "Ensure this value has at most " + fe.Param() + " characters"
			case "min":
				out[field] = "Ensure this value has at least " + fe.Param() + " characters"
			default:
				out[field] = "Enter a valid value"
			}
		}
		return out
	}

	out["non_field_errors"] = err.Error()
	return out
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
