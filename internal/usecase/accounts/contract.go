package accounts

import (
	"context"

	"github.com/m04kA/TravelBuddy-Client/internal/integrations/travelbuddy"
)

// AccountClient учётные записи на бэкенде
type AccountClient interface {
	RegisterClient(ctx context.Context, reg travelbuddy.ClientRegistration) (*travelbuddy.RegistrationResult, string, error)
	LoginClient(ctx context.Context, usernameOrEmail, password string) (*travelbuddy.LoginResult, string, error)
	GetClientProfile(ctx context.Context, token string) (*travelbuddy.ClientProfile, error)
	UpdateClientProfile(ctx context.Context, token string, update travelbuddy.ProfileUpdate) (*travelbuddy.ClientProfile, string, error)
	LoginAdmin(ctx context.Context, username, password string) (*travelbuddy.LoginResult, string, error)
	GetAdminProfile(ctx context.Context, token string) (*travelbuddy.AdminProfile, error)
}

// TokenStore хранилище токена одного вида пользователя
type TokenStore interface {
	Store(ctx context.Context, token string) error
	Retrieve(ctx context.Context) (string, bool, error)
	Remove(ctx context.Context) error
	IsLoggedIn(ctx context.Context) bool
	SubjectName(ctx context.Context) (string, bool)
}

// Metrics учёт отправок форм
type Metrics interface {
	IncSubmission(form, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
