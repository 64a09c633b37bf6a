package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"restaurants/cache"
	"restaurants/config"
	"restaurants/controllers"
	middlewares "restaurants/middleware"
	"restaurants/models"
	"restaurants/services"
)

// SetupRoutes wires services and controllers onto router. Background work
// started here stops when ctx is done.
func SetupRoutes(ctx context.Context, router *gin.Engine, db *gorm.DB, store cache.Store, cld *cloudinary.Cloudinary, cfg config.Config) {
	cacheService := cache.NewService(store)

	restaurantService := services.NewRestaurantService(db, cacheService, cfg.CacheTTL)
	if cfg.MapboxKey != "" {
		restaurantService.Geocoder = services.NewGeocoder(cfg.MapboxKey)
	}
	if cld != nil {
		restaurantService.Uploader = services.NewCloudinaryUploader(cld)
	}
	reviewService := services.NewReviewService(db, cacheService, cfg.CacheTTL)
	favoriteService := services.NewFavoriteService(db, cacheService)
	adminService := services.NewAdminService(db, cacheService, cfg.CacheTTL)
	authService := services.NewAuthService(db, cacheService, cfg)

	restaurantController := controllers.NewRestaurantController(restaurantService, reviewService)
	reviewController := controllers.NewReviewController(reviewService)
	favoriteController := controllers.NewFavoriteController(favoriteService)
	adminController := controllers.NewAdminController(adminService)
	authController := controllers.NewAuthController(authService)
	userController := controllers.NewUserController(authService)

	limiter := middlewares.NewRateLimiter(cfg.RateLimits)
	go limiter.Run(ctx, time.Minute)

	anyUser := middlewares.AuthMiddleware(cfg.JWTSecret, models.RoleUser, models.RoleAdmin)
	adminOnly := middlewares.AuthMiddleware(cfg.JWTSecret, models.RoleAdmin)
	adminSoft := limiter.Limit(config.LimitAdminSoft)

	router.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"code": 0, "mess": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := router.Group("/auth")
	auth.POST("/register", limiter.Limit(config.LimitAuthRegister), authController.Register)
	auth.POST("/login", limiter.Limit(config.LimitAuthLogin), authController.Login)

	router.GET("/users/me", anyUser, userController.GetMe)

	restaurants := router.Group("/restaurants")
	restaurants.GET("", limiter.Limit(config.LimitPublicRestaurants), restaurantController.GetAllRestaurants)
	restaurants.GET("/:id", limiter.Limit(config.LimitPublicRestaurantDetail), restaurantController.GetRestaurantDetail)
	restaurants.GET("/:id/reviews", limiter.Limit(config.LimitPublicReviews), restaurantController.GetRestaurantReviews)
	restaurants.POST("", adminOnly, adminSoft, restaurantController.CreateRestaurant)
	restaurants.PATCH("/:id", adminOnly, adminSoft, restaurantController.UpdateRestaurant)
	restaurants.DELETE("/:id", adminOnly, adminSoft, restaurantController.DeleteRestaurant)
	restaurants.POST("/:id/image", adminOnly, adminSoft, restaurantController.UploadRestaurantImage)
	restaurants.POST("/:id/reviews", anyUser, limiter.Limit(config.LimitUserReviews), restaurantController.CreateReview)

	me := router.Group("/me", anyUser)
	me.GET("/reviews", limiter.Limit(config.LimitUserReviewActions), reviewController.GetMyReviews)
	me.PUT("/reviews/:id", limiter.Limit(config.LimitUserReviewActions), reviewController.UpdateMyReview)
	me.DELETE("/reviews/:id", limiter.Limit(config.LimitUserReviewActions), reviewController.DeleteMyReview)
	me.GET("/favorites", limiter.Limit(config.LimitUserFavorites), favoriteController.GetMyFavorites)
	me.POST("/favorites/:restaurantId", limiter.Limit(config.LimitUserFavorites), favoriteController.AddFavorite)
	me.DELETE("/favorites/:restaurantId", limiter.Limit(config.LimitUserFavorites), favoriteController.RemoveFavorite)

	admin := router.Group("/admin", adminOnly, adminSoft)
	admin.GET("/stats", adminController.GetStats)
	admin.GET("/restaurants/top", adminController.GetTopRestaurants)
}
