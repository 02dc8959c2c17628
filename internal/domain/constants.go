package domain

import "time"

// Значения по умолчанию для typeahead
const (
	DefaultMinQueryLength = 2
	DefaultDebounce       = 300 * time.Millisecond
)

// Ограничения длины кода станции (проверяются на клиенте и бэкенде)
const (
	MinAirportCodeLength = 3
	MaxAirportCodeLength = 4
	MinStationCodeLength = 2
	MaxStationCodeLength = 6
)

// Значения по умолчанию для формы поиска билетов
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 20000
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Ключи хранилища сессий, по одному на тип принципала
const (
	ClientTokenKey = "client_jwt_token"
	AdminTokenKey  = "admin_jwt_token"
)

// CodeLengthBounds возвращает допустимую длину кода для типа сущности
func CodeLengthBounds(t EntityType) (min, max int) {
	if t == EntityAirport {
		return MinAirportCodeLength, MaxAirportCodeLength
	}
	return MinStationCodeLength, MaxStationCodeLength
}
