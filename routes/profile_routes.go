package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/blogicum/api-go/controllers"
)

func SetupProfileRoutes(protected *gin.RouterGroup, profileController *controllers.ProfileController) {
	// Always self; there is no profile identifier to tamper with
	protected.PUT("/profile", profileController.UpdateProfile)
}
