package travelbuddy

import (
	"fmt"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
)

// stationRoute описание REST коллекции для типа станции
type stationRoute struct {
	entityType domain.EntityType
	collection string
	idAlias    string // альтернативный ключ идентификатора в ответах бэкенда
	newStation func() domain.Station
}

var stationRoutes = map[domain.EntityType]stationRoute{
	domain.EntityAirport: {
		entityType: domain.EntityAirport,
		collection: "airports",
		idAlias:    "airportId",
		newStation: func() domain.Station { return &domain.Airport{} },
	},
	domain.EntityBus: {
		entityType: domain.EntityBus,
		collection: "bus-stations",
		idAlias:    "busStationId",
		newStation: func() domain.Station { return &domain.BusStation{} },
	},
	domain.EntityTrain: {
		entityType: domain.EntityTrain,
		collection: "train-stations",
		idAlias:    "trainStationId",
		newStation: func() domain.Station { return &domain.TrainStation{} },
	},
}

func routeFor(t domain.EntityType) (stationRoute, error) {
	route, ok := stationRoutes[t]
	if !ok {
		return stationRoute{}, fmt.Errorf("%w: %q", domain.ErrUnknownEntityType, t)
	}
	return route, nil
}

// busDetailsPayload тело POST /bus-details
type busDetailsPayload struct {
	BusNumber           string             `json:"busNumber"`
	BusLine             string             `json:"busLine"`
	BusDepartureStation *domain.BusStation `json:"busDepartureStation"`
	BusArrivalStation   *domain.BusStation `json:"busArrivalStation"`
	BusDepartureDate    string             `json:"busDepartureDate"`
	BusDepartureTime    string             `json:"busDepartureTime"`
	BusArrivalDate      string             `json:"busArrivalDate"`
	BusArrivalTime      string             `json:"busArrivalTime"`
	BusRideDuration     string             `json:"busRideDuration"`
	BusRidePrice        string             `json:"busRidePrice"`
}

// trainDetailsPayload тело POST /train-details
type trainDetailsPayload struct {
	TrainNumber           string               `json:"trainNumber"`
	TrainLine             string               `json:"trainLine"`
	TrainDepartureStation *domain.TrainStation `json:"trainDepartureStation"`
	TrainArrivalStation   *domain.TrainStation `json:"trainArrivalStation"`
	TrainDepartureDate    string               `json:"trainDepartureDate"`
	TrainDepartureTime    string               `json:"trainDepartureTime"`
	TrainArrivalDate      string               `json:"trainArrivalDate"`
	TrainArrivalTime      string               `json:"trainArrivalTime"`
	TrainRideDuration     string               `json:"trainRideDuration"`
	TrainRidePrice        string               `json:"trainRidePrice"`
}

// flightDetailsPayload тело POST /flight-details
type flightDetailsPayload struct {
	FlightNumber        string          `json:"flightNumber"`
	FlightAirline       string          `json:"flightAirline"`
	FlightOrigin        *domain.Airport `json:"flightOrigin"`
	FlightDestination   *domain.Airport `json:"flightDestination"`
	FlightDepartureDate string          `json:"flightDepartureDate"`
	FlightArrivalDate   string          `json:"flightArrivalDate"`
	FlightDepartureTime string          `json:"flightDepartureTime"`
	FlightArrivalTime   string          `json:"flightArrivalTime"`
	FlightTravelTime    string          `json:"flightTravelTime"`
	FlightPrice         string          `json:"flightPrice"`
}

// envelope обёртка ответов аккаунтов {success, message, data}
type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *T     `json:"data"`
}

// ClientRegistration данные регистрации клиента
type ClientRegistration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address,omitempty"`
}

// RegistrationResult ответ на регистрацию
type RegistrationResult struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// ClientProfile профиль клиента
type ClientProfile struct {
	ID            int64  `json:"id,omitempty"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Phone         string `json:"phone"`
	Address       string `json:"address,omitempty"`
	Enabled       bool   `json:"enabled,omitempty"`
	AccountLocked bool   `json:"accountLocked,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
	LastLogin     string `json:"lastLogin,omitempty"`
}

// ProfileUpdate изменяемые поля профиля
type ProfileUpdate struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

// AdminProfile профиль администратора
type AdminProfile struct {
	ID            int64  `json:"id,omitempty"`
	AdminUsername string `json:"adminUsername"`
	Enabled       bool   `json:"enabled,omitempty"`
	AccountLocked bool   `json:"accountLocked,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
	LastLogin     string `json:"lastLogin,omitempty"`
}

// LoginResult результат входа. Для клиента заполнен Client, для администратора Admin.
type LoginResult struct {
	Token   string         `json:"token"`
	Message string         `json:"message"`
	Client  *ClientProfile `json:"client,omitempty"`
	Admin   *AdminProfile  `json:"admin,omitempty"`
}

type clientLoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type adminLoginRequest struct {
	AdminUsername string `json:"adminUsername"`
	AdminPassword string `json:"adminPassword"`
}
