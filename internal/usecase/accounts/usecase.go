package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/TravelBuddy-Client/internal/forms"
	"github.com/m04kA/TravelBuddy-Client/internal/integrations/travelbuddy"
	"github.com/m04kA/TravelBuddy-Client/pkg/metrics"
)

// UseCase регистрация, вход и состояние сессий клиента и администратора
type UseCase struct {
	client       AccountClient
	clientTokens TokenStore
	adminTokens  TokenStore
	logger       Logger
	metrics      Metrics
}

// NewUseCase создает UseCase. metrics может быть nil.
func NewUseCase(client AccountClient, clientTokens, adminTokens TokenStore, logger Logger, m Metrics) *UseCase {
	return &UseCase{
		client:       client,
		clientTokens: clientTokens,
		adminTokens:  adminTokens,
		logger:       logger,
		metrics:      m,
	}
}

// Register регистрирует клиента по заполненной форме регистрации
func (uc *UseCase) Register(ctx context.Context, form *forms.Form) (Status, error) {
	const formName = "client_registration"

	if !form.Valid() {
		form.MarkAllTouched()
		uc.incSubmission(formName, metrics.SubmitInvalid)
		return Status{Message: InvalidFormMessage}, ErrInvalidForm
	}

	v := form.Values()
	reg := travelbuddy.ClientRegistration{
		Username:  strings.TrimSpace(v[FieldUsername]),
		Email:     strings.TrimSpace(v[FieldEmail]),
		Password:  v[FieldPassword],
		FirstName: strings.TrimSpace(v[FieldFirstName]),
		LastName:  strings.TrimSpace(v[FieldLastName]),
		Phone:     strings.TrimSpace(v[FieldPhone]),
		Address:   strings.TrimSpace(v[FieldAddress]),
	}

	result, msg, err := uc.client.RegisterClient(ctx, reg)
	if err != nil {
		uc.logger.Error("Register: username=%s: %v", reg.Username, err)
		uc.incSubmission(formName, metrics.SubmitRejected)
		return Status{Message: backendMessage(err, "Registration failed. Please try again.")}, fmt.Errorf("%w: %v", ErrRejected, err)
	}

	if msg == "" && result != nil {
		msg = result.Message
	}
	if msg == "" {
		msg = "Registration successful"
	}

	form.Reset()
	uc.logger.Info("Register: username=%s registered", reg.Username)
	uc.incSubmission(formName, metrics.SubmitSucceeded)
	return Status{Message: msg, Success: true}, nil
}

// Login выполняет вход клиента и сохраняет токен
func (uc *UseCase) Login(ctx context.Context, form *forms.Form) (Status, *travelbuddy.ClientProfile, error) {
	const formName = "client_login"

	if !form.Valid() {
		form.MarkAllTouched()
		uc.incSubmission(formName, metrics.SubmitInvalid)
		return Status{Message: InvalidFormMessage}, nil, ErrInvalidForm
	}

	v := form.Values()
	user := strings.TrimSpace(v[FieldUsernameOrEmail])

	result, msg, err := uc.client.LoginClient(ctx, user, v[FieldPassword])
	if err != nil {
		uc.logger.Warn("Login: user=%s: %v", user, err)
		uc.incSubmission(formName, metrics.SubmitRejected)
		return Status{Message: loginFailure(err)}, nil, fmt.Errorf("%w: %v", ErrRejected, err)
	}

	if err := uc.clientTokens.Store(ctx, result.Token); err != nil {
		uc.logger.Error("Login: user=%s failed to store token: %v", user, err)
		return Status{Message: "Login failed due to server error"}, nil, fmt.Errorf("%w: %v", ErrTokenStorage, err)
	}

	form.Reset()
	uc.logger.Info("Login: user=%s logged in", user)
	uc.incSubmission(formName, metrics.SubmitSucceeded)
	return Status{Message: orDefault(msg, "Login successful"), Success: true}, result.Client, nil
}

// AdminLogin выполняет вход администратора и сохраняет токен
func (uc *UseCase) AdminLogin(ctx context.Context, form *forms.Form) (Status, *travelbuddy.AdminProfile, error) {
	const formName = "admin_login"

	if !form.Valid() {
		form.MarkAllTouched()
		uc.incSubmission(formName, metrics.SubmitInvalid)
		return Status{Message: InvalidFormMessage}, nil, ErrInvalidForm
	}

	v := form.Values()
	username := strings.TrimSpace(v[FieldAdminUsername])

	result, msg, err := uc.client.LoginAdmin(ctx, username, v[FieldAdminPassword])
	if err != nil {
		uc.logger.Warn("AdminLogin: username=%s: %v", username, err)
		uc.incSubmission(formName, metrics.SubmitRejected)
		return Status{Message: loginFailure(err)}, nil, fmt.Errorf("%w: %v", ErrRejected, err)
	}

	if err := uc.adminTokens.Store(ctx, result.Token); err != nil {
		uc.logger.Error("AdminLogin: username=%s failed to store token: %v", username, err)
		return Status{Message: "Login failed due to server error"}, nil, fmt.Errorf("%w: %v", ErrTokenStorage, err)
	}

	form.Reset()
	uc.logger.Info("AdminLogin: username=%s logged in", username)
	uc.incSubmission(formName, metrics.SubmitSucceeded)
	return Status{Message: orDefault(msg, "Login successful"), Success: true}, result.Admin, nil
}

// Logout удаляет токен пользователя
func (uc *UseCase) Logout(ctx context.Context, p Principal) error {
	store, err := uc.tokens(p)
	if err != nil {
		return err
	}
	if err := store.Remove(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrTokenStorage, err)
	}
	uc.logger.Info("Logout: principal=%s", p)
	return nil
}

// ClientProfile профиль клиента. При ошибке бэкенда сохранённый токен удаляется.
func (uc *UseCase) ClientProfile(ctx context.Context) (*travelbuddy.ClientProfile, error) {
	token, err := uc.validToken(ctx, uc.clientTokens)
	if err != nil {
		return nil, err
	}

	profile, err := uc.client.GetClientProfile(ctx, token)
	if err != nil {
		uc.logger.Warn("ClientProfile: failed, clearing token: %v", err)
		_ = uc.clientTokens.Remove(ctx)
		return nil, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	return profile, nil
}

// AdminProfile профиль администратора. При ошибке бэкенда сохранённый токен удаляется.
func (uc *UseCase) AdminProfile(ctx context.Context) (*travelbuddy.AdminProfile, error) {
	token, err := uc.validToken(ctx, uc.adminTokens)
	if err != nil {
		return nil, err
	}

	profile, err := uc.client.GetAdminProfile(ctx, token)
	if err != nil {
		uc.logger.Warn("AdminProfile: failed, clearing token: %v", err)
		_ = uc.adminTokens.Remove(ctx)
		return nil, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	return profile, nil
}

// UpdateProfile изменяет профиль клиента непустыми полями формы
func (uc *UseCase) UpdateProfile(ctx context.Context, form *forms.Form) (Status, *travelbuddy.ClientProfile, error) {
	const formName = "client_profile"

	if !form.Valid() {
		form.MarkAllTouched()
		uc.incSubmission(formName, metrics.SubmitInvalid)
		return Status{Message: InvalidFormMessage}, nil, ErrInvalidForm
	}

	v := form.Values()
	update := travelbuddy.ProfileUpdate{
		FirstName: strings.TrimSpace(v[FieldFirstName]),
		LastName:  strings.TrimSpace(v[FieldLastName]),
		Email:     strings.TrimSpace(v[FieldEmail]),
		Phone:     strings.TrimSpace(v[FieldPhone]),
		Address:   strings.TrimSpace(v[FieldAddress]),
	}
	if update == (travelbuddy.ProfileUpdate{}) {
		uc.incSubmission(formName, metrics.SubmitInvalid)
		return Status{Message: NothingToUpdateMessage}, nil, ErrInvalidForm
	}

	token, err := uc.validToken(ctx, uc.clientTokens)
	if err != nil {
		return Status{Message: "Please log in to update your profile."}, nil, err
	}

	profile, msg, err := uc.client.UpdateClientProfile(ctx, token, update)
	if err != nil {
		uc.logger.Warn("UpdateProfile: failed: %v", err)
		uc.incSubmission(formName, metrics.SubmitRejected)
		if errors.Is(err, travelbuddy.ErrUnauthorized) {
			_ = uc.clientTokens.Remove(ctx)
		}
		return Status{Message: backendMessage(err, "Profile update failed. Please try again.")}, nil, fmt.Errorf("%w: %v", ErrRejected, err)
	}

	form.Reset()
	uc.logger.Info("UpdateProfile: profile updated")
	uc.incSubmission(formName, metrics.SubmitSucceeded)
	return Status{Message: orDefault(msg, "Profile updated successfully"), Success: true}, profile, nil
}

// WhoAmI состояние входа обоих пользователей для заголовка
func (uc *UseCase) WhoAmI(ctx context.Context) Header {
	return Header{
		Client: principalStatus(ctx, uc.clientTokens, defaultClientName),
		Admin:  principalStatus(ctx, uc.adminTokens, defaultAdminName),
	}
}

func principalStatus(ctx context.Context, store TokenStore, fallback string) PrincipalStatus {
	if !store.IsLoggedIn(ctx) {
		return PrincipalStatus{}
	}
	name, ok := store.SubjectName(ctx)
	if !ok || name == "" {
		name = fallback
	}
	return PrincipalStatus{LoggedIn: true, Name: name}
}

func (uc *UseCase) validToken(ctx context.Context, store TokenStore) (string, error) {
	if !store.IsLoggedIn(ctx) {
		return "", ErrNotLoggedIn
	}
	token, ok, err := store.Retrieve(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenStorage, err)
	}
	if !ok {
		return "", ErrNotLoggedIn
	}
	return token, nil
}

func (uc *UseCase) tokens(p Principal) (TokenStore, error) {
	switch p {
	case PrincipalClient:
		return uc.clientTokens, nil
	case PrincipalAdmin:
		return uc.adminTokens, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrincipal, p)
	}
}

func (uc *UseCase) incSubmission(form, outcome string) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.IncSubmission(form, outcome)
}

// loginFailure отказ бэкенда показывает его сообщение, сетевая ошибка даёт общее
func loginFailure(err error) string {
	if msg, ok := travelbuddy.MessageOf(err); ok {
		return msg
	}
	if errors.Is(err, travelbuddy.ErrRejected) || errors.Is(err, travelbuddy.ErrUnauthorized) {
		return "Login failed"
	}
	return "Login failed due to server error"
}

func backendMessage(err error, fallback string) string {
	if msg, ok := travelbuddy.MessageOf(err); ok {
		return msg
	}
	return fallback
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
