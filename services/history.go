// services/history.go
package services

import (
	"sort"

	"pitstop-backend/models"
)

// ClientHistory is a derived per-customer summary, recomputed on demand
// from the raw appointment records. It is never stored.
type ClientHistory struct {
	Phone             string   `json:"phone"`
	Name              string   `json:"name"`
	TotalVisits       int      `json:"totalVisits"`
	TotalSpent        float64  `json:"totalSpent"`
	AvailableCashback float64  `json:"availableCashback"`
	LastVisit         string   `json:"lastVisit"`
	LastService       string   `json:"lastService"`
	Vehicles          []string `json:"vehicles"`
}

// BuildClientHistory folds the appointment list into one record per
// normalized phone number, sorted by visit count descending.
//
// Counting policy: cancelled jobs count toward neither visits nor spend.
// Cashback accrues only on paid jobs. Input order does not matter; the
// last-visit/last-service fields track the chronological max.
func BuildClientHistory(appointments []models.Appointment, cashback models.CashbackConfig) []ClientHistory {
	byPhone := make(map[string]*ClientHistory)
	var order []string

	for _, apt := range appointments {
		if apt.Status == models.StatusCancelled {
			continue
		}

		phone := apt.CustomerPhone
		if phone == "" {
			phone = "unknown"
		}

		client, seen := byPhone[phone]
		if !seen {
			client = &ClientHistory{
				Phone:       phone,
				Name:        apt.CustomerName,
				LastVisit:   apt.Date,
				LastService: apt.ServiceName,
				Vehicles:    []string{},
			}
			byPhone[phone] = client
			order = append(order, phone)
		}

		client.TotalVisits++
		client.TotalSpent += apt.Price

		if apt.Date > client.LastVisit {
			client.LastVisit = apt.Date
			client.LastService = apt.ServiceName
		}

		if apt.VehicleModel != "" && !contains(client.Vehicles, apt.VehicleModel) {
			client.Vehicles = append(client.Vehicles, apt.VehicleModel)
		}

		if apt.Status == models.StatusPaid && cashback.Enabled {
			client.AvailableCashback = RoundMoney(client.AvailableCashback + RoundMoney(apt.Price*cashback.Percentage/100))
		}
	}

	result := make([]ClientHistory, 0, len(order))
	for _, phone := range order {
		result = append(result, *byPhone[phone])
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalVisits > result[j].TotalVisits
	})

	return result
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
