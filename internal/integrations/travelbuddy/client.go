package travelbuddy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxErrorBodyBytes = 4096

// Client клиент для REST бэкенда TravelBuddy
type Client struct {
	baseURL     string
	httpClient  *http.Client
	log         Logger
	metrics     Metrics
	adminTokens TokenSource
}

// Option настройка клиента
type Option func(*Client)

// WithMetrics включает учёт запросов
func WithMetrics(m Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithAdminTokens добавляет Authorization к админским вызовам, если токен есть
func WithAdminTokens(src TokenSource) Option {
	return func(c *Client) {
		c.adminTokens = src
	}
}

// WithHTTPClient подменяет http.Client (используется в тестах)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient создает новый экземпляр клиента.
// baseURL указывает на префикс API, например http://localhost:8080/api
func NewClient(baseURL string, timeout time.Duration, log Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call описание одного запроса
type call struct {
	endpoint string // метка для метрик и логов, например "stations.search"
	method   string
	path     string
	query    url.Values
	body     interface{}
	token    string
}

// do выполняет запрос и возвращает тело успешного ответа.
// Неуспешные статусы превращаются в *APIError с сентинелом пакета.
func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {
	reqURL := c.baseURL + cl.path
	if len(cl.query) > 0 {
		reqURL += "?" + cl.query.Encode()
	}

	var reader io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(cl, 0, started)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()
	c.observe(cl, resp.StatusCode, started)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read response: %v", ErrInvalidResponse, err)
		}
		return body, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return nil, newAPIError(resp.StatusCode, body)
}

// getJSON выполняет запрос и декодирует JSON ответ в out
func (c *Client) getJSON(ctx context.Context, cl call, out interface{}) error {
	body, err := c.do(ctx, cl)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

// postText выполняет запрос с текстовым ответом бэкенда
func (c *Client) postText(ctx context.Context, cl call) (string, error) {
	body, err := c.do(ctx, cl)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// adminToken возвращает админский токен, если он сохранён
func (c *Client) adminToken(ctx context.Context) string {
	if c.adminTokens == nil {
		return ""
	}
	token, ok, err := c.adminTokens.Retrieve(ctx)
	if err != nil {
		c.log.Warn("Client: failed to read admin token, sending request without it: %v", err)
		return ""
	}
	if !ok {
		return ""
	}
	return token
}

func (c *Client) observe(cl call, status int, started time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveBackendRequest(cl.endpoint, cl.method, status, time.Since(started))
}

// newAPIError строит ошибку по статусу и телу ответа.
// Тело может быть текстом или JSON вида {"message": "..."}.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Message:    extractMessage(body),
	}

	switch {
	case status == http.StatusNotFound:
		apiErr.kind = ErrNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		apiErr.kind = ErrUnauthorized
	case status >= 400 && status < 500:
		apiErr.kind = ErrRejected
	default:
		apiErr.kind = ErrInvalidResponse
	}

	return apiErr
}

func extractMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	if trimmed[0] == '{' {
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			if payload.Message != "" {
				return payload.Message
			}
			return payload.Error
		}
	}

	return string(trimmed)
}

// isNullBody проверяет, что бэкенд вернул пустое тело или null
func isNullBody(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
