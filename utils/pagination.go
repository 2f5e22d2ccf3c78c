package utils

import (
	"math"
	"strconv"
)

// PostsPerPage is the fixed window size for every post listing.
const PostsPerPage = 10

type Page struct {
	Number     int   `json:"number"`
	TotalPages int   `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
	Offset     int   `json:"-"`
	Limit      int   `json:"-"`
}

// Paginate resolves a raw ?page= value against the total item count.
// Missing or unparseable values fall back to page 1; values past the
// end clamp to the last page. An empty result set still yields page 1
// so listings render with zero items instead of erroring.
func Paginate(total int64, pageParam string) Page {
	totalPages := int(math.Ceil(float64(total) / float64(PostsPerPage)))
	if totalPages < 1 {
		totalPages = 1
	}

	page, err := strconv.Atoi(pageParam)
	if err != nil || page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return Page{
		Number:     page,
		TotalPages: totalPages,
		TotalItems: total,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
		Offset:     (page - 1) * PostsPerPage,
		Limit:      PostsPerPage,
	}
}
