package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quillhub/quill/config"
	"github.com/quillhub/quill/controllers"
	"github.com/quillhub/quill/middleware"
	"github.com/quillhub/quill/services"
	"github.com/quillhub/quill/storage"
	"github.com/quillhub/quill/utils"
)

// SetupRouter wires routes, middlewares, services, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access log to a separate rolling file, recovery through zap
	if gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress); err == nil {
		r.Use(utils.GinLogger(gl))
		r.Use(utils.GinRecovery(gl))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Uploaded post images are served straight from disk
	r.Static("/static/uploads", cfg.UploadDir)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	store := storage.NewLocal(cfg.UploadDir, "/static/uploads", int64(cfg.UploadMaxMB)*1024*1024)
	feedService := services.NewFeedService(db, utils.Logger, cfg.FeedPageSize)
	postService := services.NewPostService(db, utils.Logger, store, nil)
	followService := services.NewFollowService(db, utils.Logger)

	authController := controllers.NewAuthController(db)
	feedController := controllers.NewFeedController(feedService)
	postController := controllers.NewPostController(postService, cfg)
	profileController := controllers.NewProfileController(followService)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	// Public feeds; OptionalAuth lets signed-in readers see their follow state
	api.GET("/feed", feedController.Global)
	api.GET("/groups/:slug/posts", feedController.Group)
	api.GET("/users/:username/posts", middleware.OptionalAuth(), feedController.Author)
	api.GET("/posts/:id", postController.GetPost)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())
	protected.GET("/feed/following", feedController.Following)
	protected.POST("/posts", postController.CreatePost)
	protected.PUT("/posts/:id", postController.UpdatePost)
	protected.POST("/posts/:id/comments", postController.CreateComment)
	protected.POST("/users/:username/follow", profileController.Follow)
	protected.DELETE("/users/:username/follow", profileController.Unfollow)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
