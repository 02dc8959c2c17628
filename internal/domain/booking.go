package domain

import (
	"encoding/json"
	"strings"
)

// Booking бронирование клиента в формате бэкенда.
// Детали рейса хранятся бэкендом как JSON строка.
type Booking struct {
	ID                   int64  `json:"id,omitempty"`
	BookingID            string `json:"bookingId"`
	TransportDetailsJSON string `json:"transportDetailsJson"`
	ClientName           string `json:"clientName"`
	ClientEmail          string `json:"clientEmail"`
	ClientPhone          string `json:"clientPhone"`
}

// TransportNumber возвращает номер рейса из деталей, если его удалось найти
func (b *Booking) TransportNumber() string {
	if strings.TrimSpace(b.TransportDetailsJSON) == "" {
		return ""
	}

	var details map[string]interface{}
	if err := json.Unmarshal([]byte(b.TransportDetailsJSON), &details); err != nil {
		return ""
	}

	for _, key := range []string{"flightNumber", "trainNumber", "busNumber", "number"} {
		if v, ok := details[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
