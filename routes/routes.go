package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blogicum/api-go/controllers"
	"github.com/blogicum/api-go/middleware"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db)
	categoryController := controllers.NewCategoryController(db)
	commentController := controllers.NewCommentController(db)
	profileController := controllers.NewProfileController(db)
	uploadController := controllers.NewUploadController(db)

	// Named destination the auth middleware redirects to
	r.GET("/login", authController.LoginPage)

	// Public routes; the viewer is identified when a session is present
	// so authors see their own hidden posts
	public := r.Group("/api")
	public.Use(middleware.OptionalAuth())
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/auth/google", authController.GoogleLogin)
		public.POST("/refresh-token", authController.RefreshToken)
		public.POST("/logout", authController.Logout)

		public.GET("/posts", postController.GetPosts)
		public.GET("/posts/:id", postController.GetPostDetail)
		public.GET("/categories/:slug/posts", categoryController.GetCategoryPosts)
		public.GET("/users/:username", profileController.GetUserProfile)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthRequired())
	{
		SetupPostRoutes(protected, postController, commentController)
		SetupProfileRoutes(protected, profileController)
		SetupUploadRoutes(protected, uploadController)
	}
}
