package travelbuddy

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound возвращается, когда сущность не найдена (404)
	ErrNotFound = errors.New("travelbuddy client: not found")

	// ErrUnauthorized возвращается, когда бэкенд отклонил токен (401/403)
	ErrUnauthorized = errors.New("travelbuddy client: unauthorized")

	// ErrRejected возвращается, когда бэкенд отклонил запрос (валидация, уникальность, success=false)
	ErrRejected = errors.New("travelbuddy client: request rejected")

	// ErrInvalidResponse возвращается при некорректном ответе от бэкенда
	ErrInvalidResponse = errors.New("travelbuddy client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента (сеть, сборка запроса)
	ErrInternal = errors.New("travelbuddy client: internal error")
)

// APIError ошибка бэкенда с его сообщением
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v: status %d", e.kind, e.StatusCode)
	}
	return fmt.Sprintf("%v: status %d: %s", e.kind, e.StatusCode, e.Message)
}

// Unwrap позволяет использовать errors.Is с сентинелами пакета
func (e *APIError) Unwrap() error {
	return e.kind
}

// MessageOf возвращает сообщение бэкенда из ошибки, если оно есть
func MessageOf(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
