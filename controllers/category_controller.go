package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blogicum/api-go/models"
	"github.com/blogicum/api-go/utils"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

// GetCategoryPosts godoc
// @Summary List posts in a category
// @Description Returns the paginated visible posts for a published category
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} map[string]interface{}
// @Router /categories/{slug}/posts [get]
func (cc *CategoryController) GetCategoryPosts(c *gin.Context) {
	// An unpublished category is as good as absent
	var category models.Category
	err := cc.DB.
		Where("is_published = ?", true).
		First(&category, "slug = ?", c.Param("slug")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	now := time.Now()

	var total int64
	if err := cc.DB.Model(&models.Post{}).
		Scopes(models.PublishedPosts(now)).
		Where("posts.category_id = ?", category.ID).
		Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	page := utils.Paginate(total, c.Query("page"))

	posts := make([]listedPost, 0, page.Limit)
	result := cc.DB.Model(&models.Post{}).
		Select(listedPostSelect).
		Joins("JOIN users ON posts.author_id = users.id").
		Scopes(models.PublishedPosts(now), models.ByPubDateDesc).
		Where("posts.category_id = ?", category.ID).
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&posts)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": gin.H{
			"id":          category.ID,
			"title":       category.Title,
			"description": category.Description,
			"slug":        category.Slug,
		},
		"posts": posts,
		"page":  page,
	})
}
