package config

import (
	"os"

	"pitstop-backend/models"
	"pitstop-backend/utils"

	"go.uber.org/zap"
)

// SeedDatabase fills empty catalog and configuration tables with the shop
// defaults so a fresh deployment is immediately usable.
func SeedDatabase() {
	logger := utils.GetLogger()

	var serviceCount int64
	DB.Model(&models.Service{}).Count(&serviceCount)
	if serviceCount == 0 {
		defaults := []models.Service{
			{Name: "Lavagem Simples", Price: 25, DurationMinutes: 40, Description: "Lavagem externa e aplicação de pretinho comum.", Icon: models.IconDroplets, IsActive: true},
			{Name: "Lavar e Secar", Price: 35, DurationMinutes: 50, Description: "Externa, secagem, vãos de porta, pretinho e caixas de rodas.", Icon: models.IconDroplets, IsActive: true},
			{Name: "Lavagem Completa", Price: 70, DurationMinutes: 90, Description: "Lavagem, secagem, aspiração, plásticos, vidros e pretinho.", Icon: models.IconCar, IsActive: true},
			{Name: "Lavagem de Moto", Price: 35, DurationMinutes: 45, Description: "Lavagem detalhada e completa para motos.", Icon: models.IconSparkles, IsActive: true},
		}
		if err := DB.Create(&defaults).Error; err != nil {
			logger.Error("failed to seed services", zap.Error(err))
		}
	}

	var extraCount int64
	DB.Model(&models.ExtraService{}).Count(&extraCount)
	if extraCount == 0 {
		extras := []models.ExtraService{
			{Name: "Cera Simples", Price: 20, Description: "Brilho e proteção básica."},
			{Name: "Cera Premium", Price: 30, Description: "Brilho intenso e maior durabilidade."},
			{Name: "Pretinho Premium", Price: 20, Description: "Acabamento acetinado e longa duração."},
		}
		if err := DB.Create(&extras).Error; err != nil {
			logger.Error("failed to seed extras", zap.Error(err))
		}
	}

	var templateCount int64
	DB.Model(&models.MessageTemplate{}).Count(&templateCount)
	if templateCount == 0 {
		templates := []models.MessageTemplate{
			{Title: "Carro Pronto", Content: "Olá [NOME], seu veículo [VEICULO] já está pronto e brilhando! Pode vir buscar quando desejar. Atenciosamente, Pit Stop Lava Car.", IsActive: true},
			{Title: "Lembrete Visita", Content: "Olá [NOME], faz um tempo que não vemos o seu [VEICULO] por aqui. Que tal uma lavagem completa hoje? Temos horários disponíveis!", IsActive: true},
			{Title: "Promoção Semanal", Content: "Olá [NOME], estamos com preços especiais esta semana para Lavagem Completa. Seu [VEICULO] merece! Garanta sua vaga.", IsActive: true},
		}
		if err := DB.Create(&templates).Error; err != nil {
			logger.Error("failed to seed templates", zap.Error(err))
		}
	}

	if _, err := models.GetShopSettings(DB); err != nil {
		logger.Error("failed to seed shop settings", zap.Error(err))
	}
	if _, err := models.GetCashbackConfig(DB); err != nil {
		logger.Error("failed to seed cashback config", zap.Error(err))
	}

	// Bootstrap the owner account from env on first run
	var userCount int64
	DB.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		email := os.Getenv("ADMIN_EMAIL")
		password := os.Getenv("ADMIN_PASSWORD")
		if email != "" && password != "" {
			owner := models.User{
				Email:    email,
				Password: password, // hashed in BeforeCreate hook
				Name:     "Administrador",
				Role:     "owner",
				IsActive: true,
			}
			if err := DB.Create(&owner).Error; err != nil {
				logger.Error("failed to seed owner account", zap.Error(err))
			} else {
				logger.Info("owner account created", zap.String("email", email))
			}
		} else {
			logger.Warn("no users exist and ADMIN_EMAIL/ADMIN_PASSWORD not set")
		}
	}
}
