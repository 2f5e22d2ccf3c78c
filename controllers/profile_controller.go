package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blogicum/api-go/models"
	"github.com/blogicum/api-go/utils"
)

type ProfileController struct {
	DB *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db}
}

// GetUserProfile godoc
// @Summary View a user profile
// @Description Returns the user and their paginated posts; owners see their hidden posts too
// @Tags profiles
// @Produce json
// @Param username path string true "Username"
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} map[string]interface{}
// @Router /users/{username} [get]
func (pc *ProfileController) GetUserProfile(c *gin.Context) {
	viewer := utils.GetUser(c)
	var viewerID uint
	if viewer != nil {
		viewerID = viewer.UserID
	}

	var profileUser models.User
	if err := pc.DB.First(&profileUser, "username = ?", c.Param("username")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	now := time.Now()

	// The author-override inside VisiblePosts makes the owner's own
	// page show everything while everyone else gets the published set
	var total int64
	if err := pc.DB.Model(&models.Post{}).
		Scopes(models.VisiblePosts(viewerID, now)).
		Where("posts.author_id = ?", profileUser.ID).
		Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	page := utils.Paginate(total, c.Query("page"))

	posts := make([]listedPost, 0, page.Limit)
	result := pc.DB.Model(&models.Post{}).
		Select(listedPostSelect).
		Joins("JOIN users ON posts.author_id = users.id").
		Scopes(models.VisiblePosts(viewerID, now), models.ByPubDateDesc).
		Where("posts.author_id = ?", profileUser.ID).
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&posts)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": gin.H{
			"id":         profileUser.ID,
			"username":   profileUser.Username,
			"first_name": profileUser.FirstName,
			"last_name":  profileUser.LastName,
			"email":      profileUser.Email,
			"joined_at":  profileUser.CreatedAt,
		},
		"posts": posts,
		"page":  page,
	})
}

// UpdateProfile godoc
// @Summary Edit own profile
// @Description Rebinds name and email onto the authenticated user's record, then redirects to their profile
// @Tags profiles
// @Accept json
// @Success 302
// @Router /profile [put]
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	user := utils.GetUser(c)

	var input struct {
		FirstName string `json:"first_name" form:"first_name"`
		LastName  string `json:"last_name" form:"last_name"`
		Email     string `json:"email" form:"email" binding:"omitempty,email"`
	}

	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err), "values": input})
		return
	}

	var dbUser models.User
	if err := pc.DB.First(&dbUser, user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := map[string]interface{}{
		"first_name": input.FirstName,
		"last_name":  input.LastName,
	}
	if input.Email != "" {
		updates["email"] = input.Email
	}

	if err := pc.DB.Model(&dbUser).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.Redirect(http.StatusFound, utils.ProfilePath(dbUser.Username))
}
