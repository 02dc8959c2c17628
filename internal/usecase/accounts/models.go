package accounts

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/m04kA/TravelBuddy-Client/internal/forms"
)

// Principal вид пользователя
type Principal string

const (
	PrincipalClient Principal = "client"
	PrincipalAdmin  Principal = "admin"
)

// Поля форм учётных записей
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldPhone           = "phone"
	FieldAddress         = "address"
	FieldUsernameOrEmail = "usernameOrEmail"
	FieldAdminUsername   = "adminUsername"
	FieldAdminPassword   = "adminPassword"
)

const (
	// InvalidFormMessage сообщение при непрошедшей проверке форме
	InvalidFormMessage = "Please fill in all required fields correctly."

	ClientPasswordMessage  = "Password must contain at least one uppercase, lowercase, number, and special character"
	AdminPasswordMessage   = "Password must contain at least 8 characters with uppercase, lowercase, and number"
	UsernameMessage        = "Username can only contain letters, numbers, underscore, period, and dash"
	NameMessage            = "Name can only contain letters, spaces, apostrophes, and hyphens"
	PhoneMessage           = "Phone number must be in valid international format (e.g., +1234567890)"
	NothingToUpdateMessage = "Nothing to update"

	defaultClientName = "Client"
	defaultAdminName  = "Admin"
)

var atLeastEight = regexp.MustCompile(`^.{8,}$`)

// Status результат отправки формы
type Status struct {
	Message string
	Success bool
}

// PrincipalStatus состояние входа одного вида пользователя
type PrincipalStatus struct {
	LoggedIn bool
	Name     string
}

// Header состояние входа обоих видов пользователей
type Header struct {
	Client PrincipalStatus
	Admin  PrincipalStatus
}

// AnyLoggedIn выполнен вход хотя бы одним пользователем
func (h Header) AnyLoggedIn() bool {
	return h.Client.LoggedIn || h.Admin.LoggedIn
}

// NewRegistrationForm форма регистрации клиента.
// Правило состава пароля стоит перед длиной, чтобы короткий слабый пароль показывал требования к составу.
func NewRegistrationForm() *forms.Form {
	nameRules := func() []forms.Rule {
		return []forms.Rule{
			forms.Required(),
			forms.MinLength(1),
			forms.MaxLength(50),
			forms.Pattern(forms.NamePattern, NameMessage),
		}
	}

	return forms.New(
		forms.FieldDef{Name: FieldUsername, Label: "Username", Rules: []forms.Rule{
			forms.Required(),
			forms.MinLength(3),
			forms.MaxLength(50),
			forms.Pattern(forms.UsernamePattern, UsernameMessage),
		}},
		forms.FieldDef{Name: FieldEmail, Label: "Email", Rules: []forms.Rule{
			forms.Required(),
			forms.Email(),
			forms.MaxLength(100),
		}},
		forms.FieldDef{Name: FieldPassword, Label: "Password", Rules: []forms.Rule{
			forms.Required(),
			forms.AllOf(ClientPasswordMessage, forms.HasLower, forms.HasUpper, forms.HasDigit, forms.HasSpecial, forms.ClientPasswordCharset),
			forms.MinLength(8),
		}},
		forms.FieldDef{Name: FieldFirstName, Label: "First name", Rules: nameRules()},
		forms.FieldDef{Name: FieldLastName, Label: "Last name", Rules: nameRules()},
		forms.FieldDef{Name: FieldPhone, Label: "Phone", Rules: []forms.Rule{
			forms.Required(),
			forms.Pattern(forms.PhonePattern, PhoneMessage),
		}},
		forms.FieldDef{Name: FieldAddress, Label: "Address", Rules: []forms.Rule{
			forms.MinLength(10),
			forms.MaxLength(200),
		}},
	)
}

// NewLoginForm форма входа клиента
func NewLoginForm() *forms.Form {
	return forms.New(
		forms.FieldDef{Name: FieldUsernameOrEmail, Label: "Username or email", Rules: []forms.Rule{forms.Required()}},
		forms.FieldDef{Name: FieldPassword, Label: "Password", Rules: []forms.Rule{forms.Required()}},
	)
}

// NewAdminLoginForm форма входа администратора
func NewAdminLoginForm() *forms.Form {
	return forms.New(
		forms.FieldDef{Name: FieldAdminUsername, Label: "Username", Rules: []forms.Rule{
			forms.Required(),
			forms.MinLength(2),
			forms.MaxLength(50),
		}},
		forms.FieldDef{Name: FieldAdminPassword, Label: "Password", Rules: []forms.Rule{
			forms.Required(),
			forms.AllOf(AdminPasswordMessage, forms.HasDigit, forms.HasLower, forms.HasUpper, atLeastEight),
		}},
	)
}

// NewProfileForm форма изменения профиля клиента. Все поля необязательны, пустое поле не меняется.
func NewProfileForm() *forms.Form {
	nameRules := []forms.Rule{
		forms.MaxLength(50),
		forms.Pattern(forms.NamePattern, NameMessage),
	}

	return forms.New(
		forms.FieldDef{Name: FieldFirstName, Label: "First name", Rules: nameRules},
		forms.FieldDef{Name: FieldLastName, Label: "Last name", Rules: nameRules},
		forms.FieldDef{Name: FieldEmail, Label: "Email", Rules: []forms.Rule{forms.Email(), forms.MaxLength(100)}},
		forms.FieldDef{Name: FieldPhone, Label: "Phone", Rules: []forms.Rule{forms.Pattern(forms.PhonePattern, PhoneMessage)}},
		forms.FieldDef{Name: FieldAddress, Label: "Address", Rules: []forms.Rule{forms.MinLength(10), forms.MaxLength(200)}},
	)
}

// ParsePrincipal разбирает вид пользователя из строки
func ParsePrincipal(s string) (Principal, error) {
	p := Principal(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PrincipalClient, PrincipalAdmin:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPrincipal, s)
	}
}
