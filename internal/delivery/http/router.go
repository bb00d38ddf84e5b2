package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Gojer16/Book-Management-API/internal/config"
	"github.com/Gojer16/Book-Management-API/internal/delivery/http/controllers"
	"github.com/Gojer16/Book-Management-API/internal/delivery/http/controllers/admin"
	"github.com/Gojer16/Book-Management-API/internal/delivery/http/controllers/auth"
	"github.com/Gojer16/Book-Management-API/internal/delivery/http/controllers/book"
	"github.com/Gojer16/Book-Management-API/internal/delivery/http/controllers/library"
	"github.com/Gojer16/Book-Management-API/internal/delivery/http/controllers/middleware"
	"github.com/Gojer16/Book-Management-API/internal/models"
	"github.com/Gojer16/Book-Management-API/internal/service"
	"github.com/Gojer16/Book-Management-API/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRoutes(l logger.Log, cfg *config.Config, u service.Collection) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsConfig))
	r.Use(middleware.RateLimit(cfg.RateLimit.Max, cfg.RateLimit.Window))

	statusController := controllers.NewStatusHandler(cfg.Env)
	authController := auth.NewAuthHandler(l, u.AuthService, cfg.JWT.RefreshTTL, cfg.Env != "local")
	bookManagement := book.NewManagementHandler(l, u.BookService)
	bookQuery := book.NewQueryHandler(l, u.BookService)
	libraryController := library.NewLibraryHandler(l, u.LibraryService)
	adminController := admin.NewAdminHandler(l, u.AuthService)

	authMW := middleware.NewAuthMiddlewareProvider(l, u.AuthService)

	api := r.Group("/api", middleware.Logging(l))
	{
		api.GET("/status", statusController.Status)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authController.Register)
			authRoutes.POST("/login", authController.Login)
			authRoutes.POST("/refresh", authController.Refresh)
			authRoutes.POST("/logout", authController.Logout)
			authRoutes.GET("/me", authMW.Authenticate, authController.Me)
		}

		books := api.Group("/books", authMW.Authenticate)
		{
			books.GET("", bookQuery.List)
			books.GET("/:id", bookQuery.ByID)

			adminOnly := books.Group("", middleware.RequireRoles(models.AdminRole))
			{
				adminOnly.POST("", bookManagement.Create)
				adminOnly.PUT("/:id", bookManagement.Update)
				adminOnly.DELETE("/:id", bookManagement.Delete)
				adminOnly.POST("/:id/upload-cover", bookManagement.UploadCover)
			}
		}

		userLibrary := api.Group("/user-library", authMW.Authenticate, middleware.RequireRoles(models.AdminRole, models.ReaderRole))
		{
			userLibrary.POST("/:bookId", libraryController.Add)
			userLibrary.DELETE("/:bookId", libraryController.Remove)
			userLibrary.GET("", libraryController.List)
		}

		adminRoutes := api.Group("/admin", authMW.Authenticate, middleware.RequireRoles(models.AdminRole))
		{
			adminRoutes.PUT("/role/:userId", adminController.UpdateRole)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Route %s not found", c.Request.URL.Path),
		})
	})

	return r
}
