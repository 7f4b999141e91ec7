// controllers/dashboard.go
package controllers

import (
	"net/http"
	"time"

	"pitstop-backend/config"
	"pitstop-backend/models"
	"pitstop-backend/services"
	"pitstop-backend/utils"

	"github.com/gin-gonic/gin"
)

type ServiceCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// GetDashboardOverview aggregates the admin home metrics.
//
// Revenue recognition: only paid jobs count toward realized revenue and the
// average ticket. Completed-but-unpaid work shows up in wash counts only.
func GetDashboardOverview(c *gin.Context) {
	today := time.Now().Format(utils.DateLayout)

	var revenueToday float64
	if err := config.DB.Model(&models.Appointment{}).
		Where("status = ? AND date = ?", models.StatusPaid, today).
		Select("COALESCE(SUM(price), 0)").Scan(&revenueToday).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute revenue")
		return
	}

	var totalRevenue float64
	config.DB.Model(&models.Appointment{}).
		Where("status = ?", models.StatusPaid).
		Select("COALESCE(SUM(price), 0)").Scan(&totalRevenue)

	var paidCount int64
	config.DB.Model(&models.Appointment{}).
		Where("status = ?", models.StatusPaid).Count(&paidCount)

	averageTicket := 0.0
	if paidCount > 0 {
		averageTicket = services.RoundMoney(totalRevenue / float64(paidCount))
	}

	var totalWashes int64
	config.DB.Model(&models.Appointment{}).
		Where("status IN ?", []string{models.StatusPaid, models.StatusCompleted}).
		Count(&totalWashes)

	var waitingCount, inProgressCount int64
	config.DB.Model(&models.Appointment{}).
		Where("status = ?", models.StatusWaiting).Count(&waitingCount)
	config.DB.Model(&models.Appointment{}).
		Where("status = ?", models.StatusInProgress).Count(&inProgressCount)

	// Unique and returning clients over finished work
	type phoneVisits struct {
		CustomerPhone string
		Visits        int64
	}
	var visitRows []phoneVisits
	config.DB.Model(&models.Appointment{}).
		Select("customer_phone, COUNT(*) as visits").
		Where("status IN ? AND customer_phone <> ''", []string{models.StatusPaid, models.StatusCompleted}).
		Group("customer_phone").
		Scan(&visitRows)

	uniqueClients := len(visitRows)
	returningClients := 0
	for _, row := range visitRows {
		if row.Visits > 1 {
			returningClients++
		}
	}
	returnRate := 0.0
	if uniqueClients > 0 {
		returnRate = services.RoundMoney(float64(returningClients) / float64(uniqueClients) * 100)
	}

	var topServices []ServiceCount
	config.DB.Model(&models.Appointment{}).
		Select("service_name as name, COUNT(*) as count").
		Where("status IN ?", []string{models.StatusPaid, models.StatusCompleted}).
		Group("service_name").
		Order("count DESC").
		Limit(3).
		Scan(&topServices)

	c.JSON(http.StatusOK, gin.H{
		"financial": gin.H{
			"revenueToday":  revenueToday,
			"totalRevenue":  totalRevenue,
			"totalWashes":   totalWashes,
			"averageTicket": averageTicket,
		},
		"queue": gin.H{
			"waitingCount":    waitingCount,
			"inProgressCount": inProgressCount,
		},
		"clients": gin.H{
			"activeClients": uniqueClients,
			"returnRate":    returnRate,
		},
		"topServices": topServices,
	})
}
