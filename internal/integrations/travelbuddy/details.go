package travelbuddy

import (
	"context"
	"fmt"
	"net/http"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
)

// CreateDetails отправляет рейс с вложенными полными станциями.
// Возвращает текстовое сообщение бэкенда.
func (c *Client) CreateDetails(ctx context.Context, details domain.TransportDetails) (string, error) {
	path, payload, err := detailsPayload(details)
	if err != nil {
		return "", err
	}

	c.log.Info("CreateDetails: kind=%s number=%s", details.Kind, details.Number)

	msg, err := c.postText(ctx, call{
		endpoint: string(details.Kind) + "-details.create",
		method:   http.MethodPost,
		path:     path,
		body:     payload,
		token:    c.adminToken(ctx),
	})
	if err != nil {
		c.log.Error("CreateDetails: failed kind=%s number=%s: %v", details.Kind, details.Number, err)
		return "", err
	}

	return msg, nil
}

// detailsPayload собирает тело запроса в формате бэкенда для вида транспорта
func detailsPayload(d domain.TransportDetails) (string, interface{}, error) {
	switch d.Kind {
	case domain.TransportBus:
		dep, depOK := d.Departure.(*domain.BusStation)
		arr, arrOK := d.Arrival.(*domain.BusStation)
		if !depOK || !arrOK {
			return "", nil, fmt.Errorf("%w: bus details require bus stations", ErrInternal)
		}
		return "/bus-details", busDetailsPayload{
			BusNumber:           d.Number,
			BusLine:             d.Line,
			BusDepartureStation: dep,
			BusArrivalStation:   arr,
			BusDepartureDate:    d.DepartureDate,
			BusDepartureTime:    d.DepartureTime,
			BusArrivalDate:      d.ArrivalDate,
			BusArrivalTime:      d.ArrivalTime,
			BusRideDuration:     d.Duration,
			BusRidePrice:        d.Price,
		}, nil

	case domain.TransportTrain:
		dep, depOK := d.Departure.(*domain.TrainStation)
		arr, arrOK := d.Arrival.(*domain.TrainStation)
		if !depOK || !arrOK {
			return "", nil, fmt.Errorf("%w: train details require train stations", ErrInternal)
		}
		return "/train-details", trainDetailsPayload{
			TrainNumber:           d.Number,
			TrainLine:             d.Line,
			TrainDepartureStation: dep,
			TrainArrivalStation:   arr,
			TrainDepartureDate:    d.DepartureDate,
			TrainDepartureTime:    d.DepartureTime,
			TrainArrivalDate:      d.ArrivalDate,
			TrainArrivalTime:      d.ArrivalTime,
			TrainRideDuration:     d.Duration,
			TrainRidePrice:        d.Price,
		}, nil

	case domain.TransportFlight:
		origin, originOK := d.Departure.(*domain.Airport)
		dest, destOK := d.Arrival.(*domain.Airport)
		if !originOK || !destOK {
			return "", nil, fmt.Errorf("%w: flight details require airports", ErrInternal)
		}
		return "/flight-details", flightDetailsPayload{
			FlightNumber:        d.Number,
			FlightAirline:       d.Line,
			FlightOrigin:        origin,
			FlightDestination:   dest,
			FlightDepartureDate: d.DepartureDate,
			FlightArrivalDate:   d.ArrivalDate,
			FlightDepartureTime: d.DepartureTime,
			FlightArrivalTime:   d.ArrivalTime,
			FlightTravelTime:    d.Duration,
			FlightPrice:         d.Price,
		}, nil

	default:
		return "", nil, fmt.Errorf("%w: %q", domain.ErrUnknownTransportKind, d.Kind)
	}
}
