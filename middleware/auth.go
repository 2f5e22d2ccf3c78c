package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/blogicum/api-go/utils"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// SessionCookie carries the access token for browser flows; API clients
// may send the same token as a Bearer header instead.
const SessionCookie = "blogicum_session"

func tokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) == 2 {
			return bearerToken[1]
		}
		return ""
	}

	cookie, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie
}

func parseClaims(token string) *utils.UserClaims {
	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !parsedToken.Valid {
		return nil
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil
	}
	username, ok := claims["username"].(string)
	if !ok {
		return nil
	}

	return &utils.UserClaims{
		UserID:   uint(userID),
		Username: username,
	}
}

// AuthRequired guards the mutating routes. Unauthenticated requests are
// redirected to the login flow rather than answered with an error.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.Redirect(http.StatusFound, utils.LoginPath)
			c.Abort()
			return
		}

		userClaims := parseClaims(token)
		if userClaims == nil {
			c.Redirect(http.StatusFound, utils.LoginPath)
			c.Abort()
			return
		}

		c.Set(string(utils.UserContextKey), userClaims)

		c.Next()
	}
}

// OptionalAuth identifies the viewer on public pages so the visibility
// filter can apply the author override. Invalid or missing tokens leave
// the request anonymous.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c); token != "" {
			if userClaims := parseClaims(token); userClaims != nil {
				c.Set(string(utils.UserContextKey), userClaims)
			}
		}
		c.Next()
	}
}
