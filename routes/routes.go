package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"glimpse-api/config"
	"glimpse-api/controllers"
	"glimpse-api/middleware"
	"glimpse-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService) {
	// Controllers
	authController := controllers.NewAuthController(db, cfg, emailService)
	userController := controllers.NewUserController(db)
	postController := controllers.NewPostController(db)
	commentController := controllers.NewCommentController(db)
	likeController := controllers.NewLikeController(db)
	savedPostController := controllers.NewSavedPostController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong", "status": "healthy"})
	})

	// Auth routes (public)
	r.POST("/register", authController.Register)
	r.POST("/login", authController.Login)
	r.POST("/token/refresh", authController.RefreshToken)
	r.POST("/logout", authController.Logout)

	// User routes
	users := r.Group("/users")
	{
		users.GET("", middleware.RequireAuth(cfg.JWTSecret), middleware.RequireAdmin(), userController.GetUsers)
		users.GET("/:id", middleware.RequireAuth(cfg.JWTSecret), userController.GetUser)
		users.DELETE("/:id", middleware.RequireAuth(cfg.JWTSecret), userController.DeleteUser)
		users.POST("/:id/follow", middleware.RequireAuth(cfg.JWTSecret), userController.FollowUser)
		users.DELETE("/:id/follow", middleware.RequireAuth(cfg.JWTSecret), userController.UnfollowUser)
		users.GET("/:id/followers", middleware.RequireAuth(cfg.JWTSecret), userController.GetFollowers)
		users.GET("/:id/following", middleware.RequireAuth(cfg.JWTSecret), userController.GetFollowing)
	}

	// Post routes: reads are public, mutations need the author
	posts := r.Group("/posts")
	{
		posts.GET("", middleware.OptionalAuth(cfg.JWTSecret), postController.GetPosts)
		posts.POST("", middleware.RequireAuth(cfg.JWTSecret), postController.CreatePost)
		posts.GET("/:post_id", middleware.OptionalAuth(cfg.JWTSecret), postController.GetPost)
		posts.PUT("/:post_id", middleware.RequireAuth(cfg.JWTSecret), postController.UpdatePost)
		posts.PATCH("/:post_id", middleware.RequireAuth(cfg.JWTSecret), postController.UpdatePost)
		posts.DELETE("/:post_id", middleware.RequireAuth(cfg.JWTSecret), postController.DeletePost)

		// Comments
		posts.GET("/:post_id/comments", middleware.OptionalAuth(cfg.JWTSecret), commentController.GetComments)
		posts.POST("/:post_id/comments", middleware.RequireAuth(cfg.JWTSecret), commentController.CreateComment)
		posts.GET("/:post_id/comments/:id", middleware.OptionalAuth(cfg.JWTSecret), commentController.GetComment)
		posts.PUT("/:post_id/comments/:id", middleware.RequireAuth(cfg.JWTSecret), commentController.UpdateComment)
		posts.DELETE("/:post_id/comments/:id", middleware.RequireAuth(cfg.JWTSecret), commentController.DeleteComment)

		// Likes
		posts.GET("/:post_id/likes", middleware.OptionalAuth(cfg.JWTSecret), likeController.GetLikes)
		posts.POST("/:post_id/likes", middleware.RequireAuth(cfg.JWTSecret), likeController.CreateLike)
		posts.DELETE("/:post_id/likes", middleware.RequireAuth(cfg.JWTSecret), likeController.DeleteLike)
	}

	// Saved post routes (always private)
	saved := r.Group("/user/:user_id/savedPosts")
	saved.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		saved.GET("", savedPostController.GetSavedPosts)
		saved.POST("", savedPostController.CreateSavedPost)
		saved.DELETE("/:id", savedPostController.DeleteSavedPost)
	}
}
