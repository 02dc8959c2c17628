package get_session_status

import (
	"net/http"

	"github.com/m04kA/TravelBuddy-Client/internal/api/handlers"
)

type Handler struct {
	useCase AccountsUseCase
	logger  Logger
}

func NewHandler(useCase AccountsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	header := h.useCase.WhoAmI(r.Context())

	h.logger.Info("GET /status - client=%t admin=%t", header.Client.LoggedIn, header.Admin.LoggedIn)
	handlers.RespondJSON(w, http.StatusOK, FromHeader(header))
}
