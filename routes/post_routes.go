package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/blogicum/api-go/controllers"
)

func SetupPostRoutes(protected *gin.RouterGroup, postController *controllers.PostController, commentController *controllers.CommentController) {
	posts := protected.Group("/posts")
	{
		posts.POST("", postController.CreatePost)
		posts.PUT("/:id", postController.UpdatePost)
		posts.GET("/:id/delete", postController.ConfirmDeletePost)
		posts.DELETE("/:id", postController.DeletePost)
	}

	// Comment routes hang off their parent post
	comments := protected.Group("/posts/:id/comments")
	{
		comments.POST("", commentController.AddComment)
		comments.PUT("/:commentId", commentController.UpdateComment)
		comments.GET("/:commentId/delete", commentController.ConfirmDeleteComment)
		comments.DELETE("/:commentId", commentController.DeleteComment)
	}
}
