package travelbuddy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
)

// CreateStation регистрирует станцию. Возвращает текстовое сообщение бэкенда.
func (c *Client) CreateStation(ctx context.Context, station domain.Station) (string, error) {
	route, err := routeFor(station.StationType())
	if err != nil {
		return "", err
	}

	c.log.Info("CreateStation: type=%s code=%s", station.StationType(), station.StationCode())

	msg, err := c.postText(ctx, call{
		endpoint: route.collection + ".create",
		method:   http.MethodPost,
		path:     "/" + route.collection,
		body:     station,
		token:    c.adminToken(ctx),
	})
	if err != nil {
		c.log.Error("CreateStation: failed type=%s code=%s: %v", station.StationType(), station.StationCode(), err)
		return "", err
	}

	return msg, nil
}

// SearchStations ищет станции по тексту. Записи возвращаются в исходной форме бэкенда,
// нормализация выполняется вызывающей стороной.
func (c *Client) SearchStations(ctx context.Context, t domain.EntityType, term string) ([]json.RawMessage, error) {
	route, err := routeFor(t)
	if err != nil {
		return nil, err
	}

	var records []json.RawMessage
	err = c.getJSON(ctx, call{
		endpoint: route.collection + ".search",
		method:   http.MethodGet,
		path:     "/" + route.collection + "/search",
		query:    url.Values{"searchTerm": []string{strings.TrimSpace(term)}},
	}, &records)
	if err != nil {
		return nil, err
	}

	return records, nil
}

// GetStation получает станцию по идентификатору.
// Пустой ответ (null) возвращается как nil без ошибки.
func (c *Client) GetStation(ctx context.Context, t domain.EntityType, id string) (domain.Station, error) {
	route, err := routeFor(t)
	if err != nil {
		return nil, err
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty %s id", ErrInternal, t)
	}

	body, err := c.do(ctx, call{
		endpoint: route.collection + ".get",
		method:   http.MethodGet,
		path:     "/" + route.collection + "/" + url.PathEscape(id),
	})
	if err != nil {
		return nil, err
	}

	if isNullBody(body) {
		c.log.Warn("GetStation: empty body type=%s id=%s", t, id)
		return nil, nil
	}

	return decodeStation(route, body)
}

// ListStations возвращает все станции типа
func (c *Client) ListStations(ctx context.Context, t domain.EntityType) ([]domain.Station, error) {
	route, err := routeFor(t)
	if err != nil {
		return nil, err
	}

	var records []json.RawMessage
	err = c.getJSON(ctx, call{
		endpoint: route.collection + ".list",
		method:   http.MethodGet,
		path:     "/" + route.collection,
	}, &records)
	if err != nil {
		return nil, err
	}

	stations := make([]domain.Station, 0, len(records))
	for _, raw := range records {
		station, err := decodeStation(route, raw)
		if err != nil {
			return nil, err
		}
		stations = append(stations, station)
	}
	return stations, nil
}

// decodeStation декодирует станцию, учитывая альтернативный ключ идентификатора
func decodeStation(route stationRoute, body []byte) (domain.Station, error) {
	station := route.newStation()
	if err := json.Unmarshal(body, station); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrInvalidResponse, route.entityType, err)
	}

	if station.StationID() == "" && route.idAlias != "" {
		var fields map[string]interface{}
		decoder := json.NewDecoder(bytes.NewReader(body))
		decoder.UseNumber()
		if err := decoder.Decode(&fields); err == nil {
			if n, ok := fields[route.idAlias].(json.Number); ok {
				id, err := n.Int64()
				if err != nil {
					return nil, fmt.Errorf("%w: %s id %q is not an integer", ErrInvalidResponse, route.entityType, n)
				}
				setStationID(station, id)
			}
		}
	}

	return station, nil
}

func setStationID(station domain.Station, id int64) {
	switch s := station.(type) {
	case *domain.Airport:
		s.ID = id
	case *domain.BusStation:
		s.ID = id
	case *domain.TrainStation:
		s.ID = id
	}
}
