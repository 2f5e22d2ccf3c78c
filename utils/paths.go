package utils

import (
	"fmt"
)

// Named redirect destinations. Handlers redirect to these helpers, never
// to hand-assembled strings.
const LoginPath = "/login"

func ProfilePath(username string) string {
	return "/api/users/" + username
}

func PostDetailPath(postID uint) string {
	return fmt.Sprintf("/api/posts/%d", postID)
}
