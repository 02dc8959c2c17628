package travelbuddy

import (
	"context"
	"fmt"
	"net/http"
)

// RegisterClient регистрирует клиента
func (c *Client) RegisterClient(ctx context.Context, reg ClientRegistration) (*RegistrationResult, string, error) {
	c.log.Info("RegisterClient: username=%s", reg.Username)

	return callEnvelope[RegistrationResult](ctx, c, call{
		endpoint: "clients.register",
		method:   http.MethodPost,
		path:     "/clients/register",
		body:     reg,
	})
}

// LoginClient выполняет вход клиента по логину или email
func (c *Client) LoginClient(ctx context.Context, usernameOrEmail, password string) (*LoginResult, string, error) {
	c.log.Info("LoginClient: user=%s", usernameOrEmail)

	return callEnvelope[LoginResult](ctx, c, call{
		endpoint: "clients.login",
		method:   http.MethodPost,
		path:     "/clients/login",
		body:     clientLoginRequest{UsernameOrEmail: usernameOrEmail, Password: password},
	})
}

// GetClientProfile возвращает профиль клиента по токену
func (c *Client) GetClientProfile(ctx context.Context, token string) (*ClientProfile, error) {
	profile, _, err := callEnvelope[ClientProfile](ctx, c, call{
		endpoint: "clients.profile",
		method:   http.MethodGet,
		path:     "/clients/profile",
		token:    token,
	})
	return profile, err
}

// UpdateClientProfile обновляет профиль клиента
func (c *Client) UpdateClientProfile(ctx context.Context, token string, update ProfileUpdate) (*ClientProfile, string, error) {
	return callEnvelope[ClientProfile](ctx, c, call{
		endpoint: "clients.profile.update",
		method:   http.MethodPut,
		path:     "/clients/profile",
		body:     update,
		token:    token,
	})
}

// LoginAdmin выполняет вход администратора
func (c *Client) LoginAdmin(ctx context.Context, username, password string) (*LoginResult, string, error) {
	c.log.Info("LoginAdmin: username=%s", username)

	return callEnvelope[LoginResult](ctx, c, call{
		endpoint: "admin.login",
		method:   http.MethodPost,
		path:     "/admin/login",
		body:     adminLoginRequest{AdminUsername: username, AdminPassword: password},
	})
}

// GetAdminProfile возвращает профиль администратора по токену
func (c *Client) GetAdminProfile(ctx context.Context, token string) (*AdminProfile, error) {
	profile, _, err := callEnvelope[AdminProfile](ctx, c, call{
		endpoint: "admin.profile",
		method:   http.MethodGet,
		path:     "/admin/profile",
		token:    token,
	})
	return profile, err
}

// callEnvelope выполняет запрос с ответом {success, message, data}.
// success=false превращается в ErrRejected с сообщением бэкенда.
func callEnvelope[T any](ctx context.Context, c *Client, cl call) (*T, string, error) {
	var resp envelope[T]
	if err := c.getJSON(ctx, cl, &resp); err != nil {
		c.log.Warn("%s: request failed: %v", cl.endpoint, err)
		return nil, "", err
	}

	if !resp.Success {
		c.log.Warn("%s: rejected: %s", cl.endpoint, resp.Message)
		return nil, resp.Message, &APIError{
			StatusCode: http.StatusOK,
			Message:    resp.Message,
			kind:       ErrRejected,
		}
	}

	if resp.Data == nil {
		return nil, resp.Message, fmt.Errorf("%w: %s: empty data", ErrInvalidResponse, cl.endpoint)
	}

	return resp.Data, resp.Message, nil
}
