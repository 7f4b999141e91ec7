package routes

import (
	"os"
	"strings"

	"pitstop-backend/config"
	"pitstop-backend/controllers"
	"pitstop-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Customer-facing endpoints, no authentication
	public := r.Group("/public")
	{
		public.GET("/services", controllers.GetPublicServices)
		public.GET("/extras", controllers.GetExtras)
		public.GET("/settings", controllers.GetPublicSettings)
		public.GET("/availability", controllers.GetAvailability)
		public.POST("/coupons/validate", controllers.ValidateCoupon)
		public.POST("/bookings", controllers.CreateBooking)
		public.POST("/bookings/cancel", controllers.CancelBooking)
	}

	// Staff endpoints
	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		coupons := api.Group("/coupons")
		{
			coupons.POST("", controllers.CreateCoupon)
			coupons.GET("", controllers.GetCoupons)
			coupons.GET("/suggest", controllers.SuggestCouponCode)
			coupons.DELETE("/:id", controllers.DeleteCoupon)
		}

		queue := api.Group("/queue")
		{
			queue.GET("", controllers.GetQueue)
			queue.POST("/checkin", controllers.CheckIn)
			queue.PUT("/:id/status", controllers.UpdateAppointmentStatus)
			queue.POST("/:id/notify-ready", controllers.NotifyCarReady)
		}

		settings := api.Group("/settings")
		{
			settings.GET("", controllers.GetSettings)
			settings.PUT("", controllers.UpdateSettings)
			settings.PUT("/cashback", controllers.UpdateCashback)
		}

		templates := api.Group("/templates")
		{
			templates.GET("", controllers.GetTemplates)
			templates.PUT("/:id", controllers.UpdateTemplate)
		}

		api.GET("/clients", controllers.GetClients)
		api.GET("/dashboard", controllers.GetDashboardOverview)
		api.GET("/briefing", controllers.GetDailyBriefing)
	}

	return r
}
