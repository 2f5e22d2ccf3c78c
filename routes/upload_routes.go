package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/blogicum/api-go/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	uploads := protected.Group("/uploads")
	{
		uploads.POST("/post-image", uploadController.GetPostImageURL)
	}
}
