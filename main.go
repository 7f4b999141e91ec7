package main

import (
	"os"

	"pitstop-backend/config"
	"pitstop-backend/controllers"
	"pitstop-backend/models"
	"pitstop-backend/routes"
	"pitstop-backend/services"
	"pitstop-backend/utils"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		utils.GetLogger().Info("no .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.ExtraService{},
		&models.Coupon{},
		&models.CouponRedemption{},
		&models.Appointment{},
		&models.ShopSettings{},
		&models.CashbackConfig{},
		&models.MessageTemplate{},
	)

	config.SeedDatabase()
}

func main() {
	logger := utils.GetLogger()
	defer logger.Sync()

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		briefer, err := services.NewBriefingService(key)
		if err != nil {
			logger.Warn("briefing service unavailable", zap.Error(err))
		} else {
			controllers.Briefer = briefer
		}
	}

	if os.Getenv("TWILIO_ACCOUNT_SID") != "" {
		notifier := services.NewNotifyService(config.DB)
		notifier.StartScheduler()
		controllers.Notifier = notifier
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter()
	logger.Info("server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
