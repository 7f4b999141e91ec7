// services/notify.go
package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"pitstop-backend/models"
	"pitstop-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Days without a visit before a client gets a re-engagement message
const revisitThresholdDays = 30

type NotifyService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewNotifyService(db *gorm.DB) *NotifyService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &NotifyService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// StartScheduler runs the daily revisit-reminder job at 9 AM
func (s *NotifyService) StartScheduler() {
	c := cron.New()

	c.AddFunc("0 9 * * *", func() {
		s.SendRevisitReminders()
	})

	c.Start()
	utils.GetLogger().Info("notification scheduler started")
}

// SendCarReady tells the customer their vehicle is ready for pickup
func (s *NotifyService) SendCarReady(apt *models.Appointment) error {
	template, err := s.findTemplate("Carro Pronto")
	if err != nil {
		return err
	}
	return s.send(apt.CustomerPhone, template.Render(apt.CustomerName, apt.VehicleModel))
}

// SendRevisitReminders messages clients whose last visit is older than the
// threshold, one message per client.
func (s *NotifyService) SendRevisitReminders() {
	logger := utils.GetLogger()
	logger.Info("starting revisit reminder processing")

	template, err := s.findTemplate("Lembrete Visita")
	if err != nil {
		logger.Warn("no active revisit template", zap.Error(err))
		return
	}

	var appointments []models.Appointment
	if err := s.db.
		Where("status IN ?", []string{models.StatusPaid, models.StatusCompleted}).
		Order("date desc").
		Find(&appointments).Error; err != nil {
		logger.Error("failed to fetch appointments", zap.Error(err))
		return
	}

	var cashback models.CashbackConfig
	s.db.First(&cashback)

	now := time.Now()
	notified := make(map[string]bool)
	for _, client := range BuildClientHistory(appointments, cashback) {
		if client.Phone == "" || notified[client.Phone] {
			continue
		}
		lastVisit, err := time.ParseInLocation(utils.DateLayout, client.LastVisit, now.Location())
		if err != nil || utils.DaysBetween(lastVisit, now) < revisitThresholdDays {
			continue
		}
		vehicle := "veículo"
		if len(client.Vehicles) > 0 {
			vehicle = client.Vehicles[0]
		}
		if err := s.send(client.Phone, template.Render(client.Name, vehicle)); err != nil {
			logger.Warn("revisit reminder failed",
				zap.String("phone", client.Phone), zap.Error(err))
		}
		notified[client.Phone] = true
	}

	logger.Info("revisit reminder processing completed", zap.Int("sent", len(notified)))
}

func (s *NotifyService) findTemplate(title string) (*models.MessageTemplate, error) {
	var template models.MessageTemplate
	if err := s.db.Where("title = ? AND is_active = ?", title, true).
		First(&template).Error; err != nil {
		return nil, fmt.Errorf("template %q: %w", title, err)
	}
	return &template, nil
}

func (s *NotifyService) send(phone, body string) error {
	// WhatsApp for Brazilian numbers in international form, SMS otherwise
	to := "+" + phone
	channel := "sms"
	if strings.HasPrefix(phone, "55") {
		to = "whatsapp:+" + phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(body)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}

	logger := utils.GetLogger()
	if resp.Sid != nil {
		logger.Debug("message sent", zap.String("to", to), zap.String("sid", *resp.Sid))
	} else {
		logger.Debug("message sent without SID", zap.String("to", to))
	}
	return nil
}
