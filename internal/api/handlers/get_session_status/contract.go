package get_session_status

import (
	"context"

	"github.com/m04kA/TravelBuddy-Client/internal/usecase/accounts"
)

type AccountsUseCase interface {
	WhoAmI(ctx context.Context) accounts.Header
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
