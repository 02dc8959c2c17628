package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TravelBuddy-Client/internal/infra/storage/tokens"
	"github.com/m04kA/TravelBuddy-Client/internal/integrations/travelbuddy"
	"github.com/m04kA/TravelBuddy-Client/internal/session"
	"github.com/m04kA/TravelBuddy-Client/pkg/clock"
	"github.com/m04kA/TravelBuddy-Client/pkg/logger"
)

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type fakeAccounts struct {
	calls int

	registerMsg string
	registerErr error

	loginResult *travelbuddy.LoginResult
	loginMsg    string
	loginErr    error

	clientProfile *travelbuddy.ClientProfile
	adminProfile  *travelbuddy.AdminProfile
	profileErr    error
	profileTokens []string

	updateMsg  string
	updateErr  error
	lastUpdate travelbuddy.ProfileUpdate

	lastRegistration travelbuddy.ClientRegistration
	lastUser         string
}

func (f *fakeAccounts) RegisterClient(_ context.Context, reg travelbuddy.ClientRegistration) (*travelbuddy.RegistrationResult, string, error) {
	f.calls++
	f.lastRegistration = reg
	if f.registerErr != nil {
		return nil, "", f.registerErr
	}
	return &travelbuddy.RegistrationResult{Username: reg.Username}, f.registerMsg, nil
}

func (f *fakeAccounts) LoginClient(_ context.Context, user, _ string) (*travelbuddy.LoginResult, string, error) {
	f.calls++
	f.lastUser = user
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	return f.loginResult, f.loginMsg, nil
}

func (f *fakeAccounts) GetClientProfile(_ context.Context, token string) (*travelbuddy.ClientProfile, error) {
	f.calls++
	f.profileTokens = append(f.profileTokens, token)
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.clientProfile, nil
}

func (f *fakeAccounts) UpdateClientProfile(_ context.Context, token string, update travelbuddy.ProfileUpdate) (*travelbuddy.ClientProfile, string, error) {
	f.calls++
	f.profileTokens = append(f.profileTokens, token)
	f.lastUpdate = update
	if f.updateErr != nil {
		return nil, "", f.updateErr
	}
	return &travelbuddy.ClientProfile{Username: "john", FirstName: update.FirstName}, f.updateMsg, nil
}

func (f *fakeAccounts) LoginAdmin(_ context.Context, user, _ string) (*travelbuddy.LoginResult, string, error) {
	f.calls++
	f.lastUser = user
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	return f.loginResult, f.loginMsg, nil
}

func (f *fakeAccounts) GetAdminProfile(_ context.Context, token string) (*travelbuddy.AdminProfile, error) {
	f.calls++
	f.profileTokens = append(f.profileTokens, token)
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.adminProfile, nil
}

type fixture struct {
	client       *fakeAccounts
	clientTokens *session.Store
	adminTokens  *session.Store
	uc           *UseCase
}

func newFixture() *fixture {
	clk := clock.Fake(now)
	storage := tokens.NewMemory()
	f := &fixture{
		client:       &fakeAccounts{},
		clientTokens: session.NewClient(storage, clk, logger.Nop()),
		adminTokens:  session.NewAdmin(storage, clk, logger.Nop()),
	}
	f.uc = NewUseCase(f.client, f.clientTokens, f.adminTokens, logger.Nop(), nil)
	return f
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func fillRegistration(t *testing.T, form interface{ Set(string, string) error }, password string) {
	t.Helper()
	require.NoError(t, form.Set(FieldUsername, "john.doe"))
	require.NoError(t, form.Set(FieldEmail, "john@example.com"))
	require.NoError(t, form.Set(FieldPassword, password))
	require.NoError(t, form.Set(FieldFirstName, "John"))
	require.NoError(t, form.Set(FieldLastName, "O'Neil"))
	require.NoError(t, form.Set(FieldPhone, "+359888123456"))
}

func TestRegister_WeakPasswordShowsPatternMessage(t *testing.T) {
	f := newFixture()
	form := NewRegistrationForm()
	fillRegistration(t, form, "abc")

	status, err := f.uc.Register(context.Background(), form)
	require.ErrorIs(t, err, ErrInvalidForm)
	assert.Equal(t, InvalidFormMessage, status.Message)
	assert.True(t, form.IsFieldInvalid(FieldPassword))
	assert.Equal(t, ClientPasswordMessage, form.DisplayError(FieldPassword))
	assert.Zero(t, f.client.calls)
}

func TestRegister_ShortStrongPassword(t *testing.T) {
	form := NewRegistrationForm()
	require.NoError(t, form.Set(FieldPassword, "Ab1!"))
	assert.Equal(t, "Password must be at least 8 characters", form.DisplayError(FieldPassword))

	require.NoError(t, form.Set(FieldPassword, "Abcdef1!#"))
	assert.Equal(t, ClientPasswordMessage, form.DisplayError(FieldPassword), "# is outside the allowed charset")
}

func TestRegistrationForm_FieldMessages(t *testing.T) {
	form := NewRegistrationForm()

	require.NoError(t, form.Set(FieldUsername, "john doe"))
	assert.Equal(t, UsernameMessage, form.DisplayError(FieldUsername))

	require.NoError(t, form.Set(FieldFirstName, "J0hn"))
	assert.Equal(t, NameMessage, form.DisplayError(FieldFirstName))

	require.NoError(t, form.Set(FieldPhone, "0888"))
	assert.Equal(t, PhoneMessage, form.DisplayError(FieldPhone))

	require.NoError(t, form.Set(FieldAddress, "short"))
	assert.Equal(t, "Address must be at least 10 characters", form.DisplayError(FieldAddress))

	require.NoError(t, form.Set(FieldAddress, ""))
	assert.Empty(t, form.DisplayError(FieldAddress))
}

func TestRegister_Success(t *testing.T) {
	f := newFixture()
	f.client.registerMsg = "Client registered successfully"
	form := NewRegistrationForm()
	fillRegistration(t, form, "Secret1!")

	status, err := f.uc.Register(context.Background(), form)
	require.NoError(t, err)
	assert.True(t, status.Success)
	assert.Equal(t, "Client registered successfully", status.Message)
	assert.Equal(t, "john@example.com", f.client.lastRegistration.Email)
	assert.Empty(t, form.Value(FieldUsername))
}

func TestRegister_Rejected(t *testing.T) {
	f := newFixture()
	f.client.registerErr = &travelbuddy.APIError{StatusCode: 200, Message: "Username already exists"}
	form := NewRegistrationForm()
	fillRegistration(t, form, "Secret1!")

	status, err := f.uc.Register(context.Background(), form)
	require.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, "Username already exists", status.Message)
	assert.Equal(t, "john.doe", form.Value(FieldUsername))
}

func TestLogin_StoresToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	token := signToken(t, jwt.MapClaims{"sub": "john.doe", "exp": now.Add(time.Hour).Unix()})
	f.client.loginResult = &travelbuddy.LoginResult{Token: token, Client: &travelbuddy.ClientProfile{Username: "john.doe"}}

	form := NewLoginForm()
	require.NoError(t, form.Set(FieldUsernameOrEmail, " john.doe "))
	require.NoError(t, form.Set(FieldPassword, "Secret1!"))

	status, profile, err := f.uc.Login(ctx, form)
	require.NoError(t, err)
	assert.Equal(t, Status{Message: "Login successful", Success: true}, status)
	require.NotNil(t, profile)
	assert.Equal(t, "john.doe", profile.Username)
	assert.Equal(t, "john.doe", f.client.lastUser)

	stored, ok, err := f.clientTokens.Retrieve(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, token, stored)

	_, ok, err = f.adminTokens.Retrieve(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"backend message", &travelbuddy.APIError{StatusCode: 401, Message: "Invalid credentials"}, "Invalid credentials"},
		{"rejected without message", travelbuddy.ErrUnauthorized, "Login failed"},
		{"network", errors.New("connection refused"), "Login failed due to server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture()
			f.client.loginErr = tt.err

			form := NewLoginForm()
			require.NoError(t, form.Set(FieldUsernameOrEmail, "john"))
			require.NoError(t, form.Set(FieldPassword, "x"))

			status, _, err := f.uc.Login(ctx, form)
			require.ErrorIs(t, err, ErrRejected)
			assert.False(t, status.Success)
			assert.Equal(t, tt.wantMsg, status.Message)

			_, ok, _ := f.clientTokens.Retrieve(ctx)
			assert.False(t, ok)
		})
	}
}

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	form := NewAdminLoginForm()
	require.NoError(t, form.Set(FieldAdminUsername, "root"))
	require.NoError(t, form.Set(FieldAdminPassword, "password"))
	assert.Equal(t, AdminPasswordMessage, form.DisplayError(FieldAdminPassword))

	_, _, err := f.uc.AdminLogin(ctx, form)
	require.ErrorIs(t, err, ErrInvalidForm)
	assert.Zero(t, f.client.calls)

	token := signToken(t, jwt.MapClaims{"sub": "root", "exp": now.Add(time.Hour).Unix()})
	f.client.loginResult = &travelbuddy.LoginResult{Token: token, Admin: &travelbuddy.AdminProfile{AdminUsername: "root"}}
	f.client.loginMsg = "Admin login successful"
	require.NoError(t, form.Set(FieldAdminPassword, "Passw0rd"))

	status, profile, err := f.uc.AdminLogin(ctx, form)
	require.NoError(t, err)
	assert.Equal(t, "Admin login successful", status.Message)
	assert.Equal(t, "root", profile.AdminUsername)
	assert.True(t, f.adminTokens.IsLoggedIn(ctx))
	assert.False(t, f.clientTokens.IsLoggedIn(ctx))
}

func TestWhoAmI(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	assert.False(t, f.uc.WhoAmI(ctx).AnyLoggedIn())

	require.NoError(t, f.clientTokens.Store(ctx, signToken(t, jwt.MapClaims{"sub": "john", "exp": now.Add(time.Hour).Unix()})))
	require.NoError(t, f.adminTokens.Store(ctx, signToken(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})))

	header := f.uc.WhoAmI(ctx)
	assert.Equal(t, PrincipalStatus{LoggedIn: true, Name: "john"}, header.Client)
	assert.Equal(t, PrincipalStatus{LoggedIn: true, Name: "Admin"}, header.Admin)

	require.NoError(t, f.uc.Logout(ctx, PrincipalClient))
	header = f.uc.WhoAmI(ctx)
	assert.False(t, header.Client.LoggedIn)
	assert.True(t, header.Admin.LoggedIn)

	require.ErrorIs(t, f.uc.Logout(ctx, "guest"), ErrUnknownPrincipal)
}

func TestWhoAmI_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	require.NoError(t, f.clientTokens.Store(ctx, signToken(t, jwt.MapClaims{"sub": "john", "exp": now.Add(-time.Minute).Unix()})))

	assert.False(t, f.uc.WhoAmI(ctx).Client.LoggedIn)
}

func TestClientProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.uc.ClientProfile(ctx)
	require.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Zero(t, f.client.calls)

	token := signToken(t, jwt.MapClaims{"sub": "john", "exp": now.Add(time.Hour).Unix()})
	require.NoError(t, f.clientTokens.Store(ctx, token))
	f.client.clientProfile = &travelbuddy.ClientProfile{Username: "john", Email: "john@example.com"}

	profile, err := f.uc.ClientProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", profile.Email)
	assert.Equal(t, []string{token}, f.client.profileTokens)
}

func TestProfileFailureClearsToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.client.profileErr = travelbuddy.ErrUnauthorized

	require.NoError(t, f.adminTokens.Store(ctx, signToken(t, jwt.MapClaims{"sub": "root", "exp": now.Add(time.Hour).Unix()})))

	_, err := f.uc.AdminProfile(ctx)
	require.ErrorIs(t, err, ErrRejected)

	_, ok, err := f.adminTokens.Retrieve(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	form := NewProfileForm()
	status, _, err := f.uc.UpdateProfile(ctx, form)
	require.ErrorIs(t, err, ErrInvalidForm)
	assert.Equal(t, NothingToUpdateMessage, status.Message)

	require.NoError(t, form.Set(FieldFirstName, " Ivan "))
	_, _, err = f.uc.UpdateProfile(ctx, form)
	require.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Zero(t, f.client.calls)

	token := signToken(t, jwt.MapClaims{"sub": "john", "exp": now.Add(time.Hour).Unix()})
	require.NoError(t, f.clientTokens.Store(ctx, token))

	status, profile, err := f.uc.UpdateProfile(ctx, form)
	require.NoError(t, err)
	assert.Equal(t, Status{Message: "Profile updated successfully", Success: true}, status)
	assert.Equal(t, "Ivan", profile.FirstName)
	assert.Equal(t, travelbuddy.ProfileUpdate{FirstName: "Ivan"}, f.client.lastUpdate)
	assert.Empty(t, form.Value(FieldFirstName))
}

func TestUpdateProfile_InvalidPhone(t *testing.T) {
	form := NewProfileForm()
	require.NoError(t, form.Set(FieldPhone, "12-34"))

	status, _, err := newFixture().uc.UpdateProfile(context.Background(), form)
	require.ErrorIs(t, err, ErrInvalidForm)
	assert.Equal(t, InvalidFormMessage, status.Message)
	assert.Equal(t, PhoneMessage, form.DisplayError(FieldPhone))
}

func TestUpdateProfile_UnauthorizedClearsToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.client.updateErr = travelbuddy.ErrUnauthorized
	require.NoError(t, f.clientTokens.Store(ctx, signToken(t, jwt.MapClaims{"sub": "john", "exp": now.Add(time.Hour).Unix()})))

	form := NewProfileForm()
	require.NoError(t, form.Set(FieldLastName, "Petrov"))

	status, _, err := f.uc.UpdateProfile(ctx, form)
	require.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, "Profile update failed. Please try again.", status.Message)
	assert.False(t, f.clientTokens.IsLoggedIn(ctx))
	assert.Equal(t, "Petrov", form.Value(FieldLastName))
}

func TestParsePrincipal(t *testing.T) {
	p, err := ParsePrincipal(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, PrincipalAdmin, p)

	_, err = ParsePrincipal("guest")
	require.ErrorIs(t, err, ErrUnknownPrincipal)
}
