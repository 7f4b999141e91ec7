package services

import (
	"fmt"
	"testing"

	"pitstop-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyJob(phone, name, date, service, vehicle, status string, price float64) models.Appointment {
	return models.Appointment{
		CustomerPhone: phone,
		CustomerName:  name,
		Date:          date,
		ServiceName:   service,
		VehicleModel:  vehicle,
		Status:        status,
		Price:         price,
	}
}

func TestBuildClientHistoryGroupsByPhone(t *testing.T) {
	cashback := models.CashbackConfig{Enabled: true, Percentage: 5}
	jobs := []models.Appointment{
		historyJob("5511999990000", "Carlos", "2026-08-20", "Lavagem Simples", "Honda Civic", models.StatusPaid, 25),
		historyJob("5511999990000", "Carlos", "2026-08-10", "Lavagem Completa", "Honda Civic", models.StatusPaid, 70),
		historyJob("5511888880000", "Ana", "2026-08-15", "Lavar e Secar", "Fiat Uno", models.StatusCompleted, 35),
	}

	clients := BuildClientHistory(jobs, cashback)

	require.Len(t, clients, 2)

	carlos := clients[0] // two visits, sorted first
	assert.Equal(t, "5511999990000", carlos.Phone)
	assert.Equal(t, 2, carlos.TotalVisits)
	assert.Equal(t, 95.0, carlos.TotalSpent)
	assert.Equal(t, "2026-08-20", carlos.LastVisit)
	assert.Equal(t, "Lavagem Simples", carlos.LastService)

	ana := clients[1]
	assert.Equal(t, 1, ana.TotalVisits)
	assert.Equal(t, 35.0, ana.TotalSpent)
}

func TestBuildClientHistoryCancelledJobsDoNotCount(t *testing.T) {
	jobs := []models.Appointment{
		historyJob("5511999990000", "Carlos", "2026-08-20", "Lavagem Simples", "Honda Civic", models.StatusPaid, 25),
		historyJob("5511999990000", "Carlos", "2026-08-21", "Lavagem Completa", "Honda Civic", models.StatusCancelled, 70),
	}

	clients := BuildClientHistory(jobs, models.CashbackConfig{})

	require.Len(t, clients, 1)
	assert.Equal(t, 1, clients[0].TotalVisits)
	assert.Equal(t, 25.0, clients[0].TotalSpent)
	assert.Equal(t, "2026-08-20", clients[0].LastVisit)
}

func TestBuildClientHistoryCashbackOnPaidJobsOnly(t *testing.T) {
	cashback := models.CashbackConfig{Enabled: true, Percentage: 10}
	jobs := []models.Appointment{
		historyJob("5511999990000", "Carlos", "2026-08-20", "Lavagem Simples", "Honda Civic", models.StatusPaid, 50),
		historyJob("5511999990000", "Carlos", "2026-08-21", "Lavagem Simples", "Honda Civic", models.StatusCompleted, 50),
		historyJob("5511999990000", "Carlos", "2026-08-22", "Lavagem Simples", "Honda Civic", models.StatusWaiting, 50),
	}

	clients := BuildClientHistory(jobs, cashback)

	require.Len(t, clients, 1)
	assert.Equal(t, 5.0, clients[0].AvailableCashback)

	disabled := BuildClientHistory(jobs, models.CashbackConfig{Enabled: false, Percentage: 10})
	assert.Equal(t, 0.0, disabled[0].AvailableCashback)
}

func TestBuildClientHistoryDistinctVehiclesFirstSeenOrder(t *testing.T) {
	jobs := []models.Appointment{
		historyJob("5511999990000", "Carlos", "2026-08-23", "Lavagem Simples", "Honda Civic", models.StatusPaid, 25),
		historyJob("5511999990000", "Carlos", "2026-08-22", "Lavagem Simples", "Fiat Uno", models.StatusPaid, 25),
		historyJob("5511999990000", "Carlos", "2026-08-21", "Lavagem Simples", "Honda Civic", models.StatusPaid, 25),
	}

	clients := BuildClientHistory(jobs, models.CashbackConfig{})

	require.Len(t, clients, 1)
	assert.Equal(t, []string{"Honda Civic", "Fiat Uno"}, clients[0].Vehicles)
}

func TestBuildClientHistoryCountsAddUp(t *testing.T) {
	const clientCount = 7
	var jobs []models.Appointment
	totalJobs := 0
	for i := 0; i < clientCount; i++ {
		phone := fmt.Sprintf("551199999%04d", i)
		for j := 0; j <= i; j++ {
			jobs = append(jobs, historyJob(phone, "Cliente", "2026-08-01", "Lavagem Simples", "Carro", models.StatusPaid, 10))
			totalJobs++
		}
	}

	clients := BuildClientHistory(jobs, models.CashbackConfig{})

	require.Len(t, clients, clientCount)
	visits := 0
	spent := 0.0
	for _, cl := range clients {
		visits += cl.TotalVisits
		spent += cl.TotalSpent
	}
	assert.Equal(t, totalJobs, visits)
	assert.Equal(t, float64(totalJobs)*10, spent)

	// sorted by visit count descending
	for i := 1; i < len(clients); i++ {
		assert.GreaterOrEqual(t, clients[i-1].TotalVisits, clients[i].TotalVisits)
	}
}
