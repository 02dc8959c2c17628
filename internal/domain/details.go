package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTransportKind возвращается при неизвестном виде транспорта
var ErrUnknownTransportKind = errors.New("domain: unknown transport kind")

// TransportKind вид транспорта
type TransportKind string

const (
	TransportBus    TransportKind = "bus"
	TransportTrain  TransportKind = "train"
	TransportFlight TransportKind = "flight"
)

// TransportKinds все поддерживаемые виды транспорта
var TransportKinds = []TransportKind{TransportBus, TransportTrain, TransportFlight}

// ParseTransportKind разбирает вид транспорта из строки
func ParseTransportKind(s string) (TransportKind, error) {
	k := TransportKind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case TransportBus, TransportTrain, TransportFlight:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTransportKind, s)
	}
}

// EntityType тип станций, между которыми ходит транспорт
func (k TransportKind) EntityType() EntityType {
	switch k {
	case TransportFlight:
		return EntityAirport
	case TransportTrain:
		return EntityTrain
	default:
		return EntityBus
	}
}

// TransportDetails рейс (автобус/поезд/самолёт).
// Собирается на клиенте из значений формы и двух полных станций,
// отправляется на бэкенд один раз.
type TransportDetails struct {
	Kind          TransportKind
	Number        string
	Line          string // перевозчик: линия или авиакомпания
	Departure     Station
	Arrival       Station
	DepartureDate string // YYYY-MM-DD
	DepartureTime string // HH:MM
	ArrivalDate   string
	ArrivalTime   string
	Duration      string // "2h 30m"
	Price         string // до двух знаков после точки
}
