package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blogicum/api-go/models"
	"github.com/blogicum/api-go/utils"
)

type PostController struct {
	DB *gorm.DB
}

func NewPostController(db *gorm.DB) *PostController {
	return &PostController{DB: db}
}

// validatePostForm resolves the submitted pub date and checks that the
// optional location/category choices exist, mirroring what the form
// layer cannot express with tags alone.
func (pc *PostController) validatePostForm(form *PostForm) (time.Time, map[string]string) {
	errs := map[string]string{}

	pubDate, err := parsePubDate(form.PubDate)
	if err != nil {
		errs["pub_date"] = err.Error()
	}

	if form.CategoryID != nil {
		var count int64
		pc.DB.Model(&models.Category{}).Where("id = ?", *form.CategoryID).Count(&count)
		if count == 0 {
			errs["category"] = "Select a valid choice"
		}
	}

	if form.LocationID != nil {
		var count int64
		pc.DB.Model(&models.Location{}).Where("id = ?", *form.LocationID).Count(&count)
		if count == 0 {
			errs["location"] = "Select a valid choice"
		}
	}

	return pubDate, errs
}

// GetPosts godoc
// @Summary List published posts
// @Description Returns the paginated index of visible posts, newest first
// @Tags posts
// @Produce json
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} map[string]interface{}
// @Router /posts [get]
func (pc *PostController) GetPosts(c *gin.Context) {
	now := time.Now()

	var total int64
	if err := pc.DB.Model(&models.Post{}).
		Scopes(models.PublishedPosts(now)).
		Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	page := utils.Paginate(total, c.Query("page"))

	posts := make([]listedPost, 0, page.Limit)
	result := pc.DB.Model(&models.Post{}).
		Select(listedPostSelect).
		Joins("JOIN users ON posts.author_id = users.id").
		Scopes(models.PublishedPosts(now), models.ByPubDateDesc).
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&posts)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"page":  page,
	})
}

// GetPostDetail godoc
// @Summary Get a single post
// @Description Returns a post with its comments; authors see their own hidden posts
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id} [get]
func (pc *PostController) GetPostDetail(c *gin.Context) {
	viewer := utils.GetUser(c)
	var viewerID uint
	if viewer != nil {
		viewerID = viewer.UserID
	}

	var post models.Post
	err := pc.DB.
		Preload("Author").Preload("Category").Preload("Location").
		Model(&models.Post{}).
		Select("posts.*").
		Scopes(models.VisiblePosts(viewerID, time.Now())).
		Where("posts.id = ?", c.Param("id")).
		First(&post).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comments := make([]models.Comment, 0)
	if err := pc.DB.Preload("Author").
		Where("post_id = ?", post.ID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching comments"})
		return
	}

	response := gin.H{
		"post":     post,
		"comments": comments,
	}
	if viewer != nil {
		// Blank comment form for the signed-in viewer
		response["comment_form"] = gin.H{"text": ""}
	}

	c.JSON(http.StatusOK, response)
}

// CreatePost godoc
// @Summary Create a new post
// @Description Creates a post owned by the authenticated user and redirects to their profile
// @Tags posts
// @Accept json
// @Param post body PostForm true "Post fields"
// @Success 302
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	user := utils.GetUser(c)

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err), "values": form})
		return
	}

	pubDate, errs := pc.validatePostForm(&form)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs, "values": form})
		return
	}

	// The author always comes from the session, never from the payload
	post := models.Post{
		Title:       form.Title,
		Text:        form.Text,
		PubDate:     pubDate,
		AuthorID:    user.UserID,
		LocationID:  form.LocationID,
		CategoryID:  form.CategoryID,
		ImageURL:    form.ImageURL,
		IsPublished: true,
	}

	if err := pc.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.Redirect(http.StatusFound, utils.ProfilePath(user.Username))
}

// UpdatePost godoc
// @Summary Edit an existing post
// @Description Rebinds the submitted fields onto the post; non-owners are bounced to the detail view
// @Tags posts
// @Accept json
// @Param id path string true "Post ID"
// @Param post body PostForm true "Post fields"
// @Success 302
// @Router /posts/{id} [put]
func (pc *PostController) UpdatePost(c *gin.Context) {
	user := utils.GetUser(c)

	var post models.Post
	if err := pc.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	// Soft deny: non-owners are redirected, not errored
	if post.AuthorID != user.UserID {
		c.Redirect(http.StatusFound, utils.PostDetailPath(post.ID))
		return
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err), "values": form})
		return
	}

	pubDate, errs := pc.validatePostForm(&form)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs, "values": form})
		return
	}

	updates := map[string]interface{}{
		"title":       form.Title,
		"text":        form.Text,
		"pub_date":    pubDate,
		"location_id": form.LocationID,
		"category_id": form.CategoryID,
		"image_url":   form.ImageURL,
	}

	if err := pc.DB.Model(&post).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.Redirect(http.StatusFound, utils.PostDetailPath(post.ID))
}

// ConfirmDeletePost godoc
// @Summary Preview a post deletion
// @Description Returns the post so the client can render a confirmation view
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id}/delete [get]
func (pc *PostController) ConfirmDeletePost(c *gin.Context) {
	user := utils.GetUser(c)

	var post models.Post
	err := pc.DB.
		Preload("Category").Preload("Location").
		Where("author_id = ?", user.UserID).
		First(&post, "id = ?", c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// DeletePost godoc
// @Summary Delete a post
// @Description Deletes an owned post and its comments, then redirects to the profile
// @Tags posts
// @Param id path string true "Post ID"
// @Success 302
// @Router /posts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	user := utils.GetUser(c)

	var post models.Post
	err := pc.DB.
		Where("author_id = ?", user.UserID).
		First(&post, "id = ?", c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	tx := pc.DB.Begin()

	if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comments"})
		return
	}

	if err := tx.Delete(&post).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.Redirect(http.StatusFound, utils.ProfilePath(user.Username))
}
