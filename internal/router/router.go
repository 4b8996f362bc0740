package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/recipebox-dev/recipebox/internal/handlers"
	"github.com/recipebox-dev/recipebox/internal/middleware"
)

func NewRouter(allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.POST("/users", handlers.CreateUser)
		api.POST("/token", handlers.CreateToken)

		me := api.Group("/users/me", middleware.AuthMiddleware())
		{
			me.GET("", handlers.Me)
			me.PATCH("", handlers.UpdateMe)
		}

		recipes := api.Group("/recipes", middleware.AuthMiddleware())
		{
			recipes.GET("", handlers.ListRecipes)
			recipes.POST("", handlers.CreateRecipe)
			recipes.GET("/:id", handlers.GetRecipe)
			recipes.PUT("/:id", handlers.UpdateRecipe)
			recipes.PATCH("/:id", handlers.PatchRecipe)
			recipes.DELETE("/:id", handlers.DeleteRecipe)
			recipes.POST("/:id/upload-image", handlers.UploadRecipeImage)
		}

		tags := api.Group("/tags", middleware.AuthMiddleware())
		{
			tags.GET("", handlers.ListTags)
			tags.PATCH("/:id", handlers.UpdateTag)
			tags.DELETE("/:id", handlers.DeleteTag)
		}

		ingredients := api.Group("/ingredients", middleware.AuthMiddleware())
		{
			ingredients.GET("", handlers.ListIngredients)
			ingredients.PATCH("/:id", handlers.UpdateIngredient)
			ingredients.DELETE("/:id", handlers.DeleteIngredient)
		}
	}

	return r
}
