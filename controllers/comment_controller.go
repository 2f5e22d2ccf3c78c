package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blogicum/api-go/models"
	"github.com/blogicum/api-go/utils"
)

type CommentController struct {
	DB *gorm.DB
}

type CommentForm struct {
	Text string `json:"text" form:"text" binding:"required"`
}

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{DB: db}
}

// fetchOwnComment loads a comment scoped to the post and the requesting
// author. Absence and foreign ownership are indistinguishable.
func (cc *CommentController) fetchOwnComment(c *gin.Context, userID uint) (*models.Comment, bool) {
	var post models.Post
	if err := cc.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return nil, false
	}

	var comment models.Comment
	err := cc.DB.
		Where("post_id = ? AND author_id = ?", post.ID, userID).
		First(&comment, "id = ?", c.Param("commentId")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return nil, false
	}

	return &comment, true
}

// AddComment godoc
// @Summary Comment on a post
// @Description Attaches a comment by the authenticated user and redirects to the post
// @Tags comments
// @Accept json
// @Param id path string true "Post ID"
// @Param comment body CommentForm true "Comment text"
// @Success 302
// @Router /posts/{id}/comments [post]
func (cc *CommentController) AddComment(c *gin.Context) {
	user := utils.GetUser(c)

	var form CommentForm
	if err := c.ShouldBind(&form); err != nil {
		// Invalid submissions are dropped; the client just lands back
		// on the detail page
		var post models.Post
		if err := cc.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.Redirect(http.StatusFound, utils.PostDetailPath(post.ID))
		return
	}

	var post models.Post
	if err := cc.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: user.UserID,
		Text:     form.Text,
	}

	if err := cc.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.Redirect(http.StatusFound, utils.PostDetailPath(post.ID))
}

// UpdateComment godoc
// @Summary Edit a comment
// @Description Rebinds the text onto an owned comment and redirects to the post
// @Tags comments
// @Accept json
// @Param id path string true "Post ID"
// @Param commentId path string true "Comment ID"
// @Param comment body CommentForm true "Comment text"
// @Success 302
// @Router /posts/{id}/comments/{commentId} [put]
func (cc *CommentController) UpdateComment(c *gin.Context) {
	user := utils.GetUser(c)

	comment, ok := cc.fetchOwnComment(c, user.UserID)
	if !ok {
		return
	}

	var form CommentForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err), "values": form})
		return
	}

	if err := cc.DB.Model(comment).Update("text", form.Text).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	c.Redirect(http.StatusFound, utils.PostDetailPath(comment.PostID))
}

// ConfirmDeleteComment godoc
// @Summary Preview a comment deletion
// @Description Returns the comment so the client can render a confirmation view
// @Tags comments
// @Produce json
// @Param id path string true "Post ID"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id}/comments/{commentId}/delete [get]
func (cc *CommentController) ConfirmDeleteComment(c *gin.Context) {
	user := utils.GetUser(c)

	comment, ok := cc.fetchOwnComment(c, user.UserID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Deletes an owned comment and redirects to the post
// @Tags comments
// @Param id path string true "Post ID"
// @Param commentId path string true "Comment ID"
// @Success 302
// @Router /posts/{id}/comments/{commentId} [delete]
func (cc *CommentController) DeleteComment(c *gin.Context) {
	user := utils.GetUser(c)

	comment, ok := cc.fetchOwnComment(c, user.UserID)
	if !ok {
		return
	}

	if err := cc.DB.Delete(comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.Redirect(http.StatusFound, utils.PostDetailPath(comment.PostID))
}
