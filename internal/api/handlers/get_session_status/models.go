package get_session_status

import "github.com/m04kA/TravelBuddy-Client/internal/usecase/accounts"

// PrincipalResponse состояние входа одного пользователя
type PrincipalResponse struct {
	LoggedIn bool   `json:"loggedIn"`
	Name     string `json:"name,omitempty"`
}

// StatusResponse HTTP response model
type StatusResponse struct {
	Client      PrincipalResponse `json:"client"`
	Admin       PrincipalResponse `json:"admin"`
	AnyLoggedIn bool              `json:"anyLoggedIn"`
}

// FromHeader конвертирует состояние заголовка в HTTP response
func FromHeader(h accounts.Header) *StatusResponse {
	return &StatusResponse{
		Client:      PrincipalResponse{LoggedIn: h.Client.LoggedIn, Name: h.Client.Name},
		Admin:       PrincipalResponse{LoggedIn: h.Admin.LoggedIn, Name: h.Admin.Name},
		AnyLoggedIn: h.AnyLoggedIn(),
	}
}
