package accounts

import "errors"

var (
	ErrInvalidForm      = errors.New("accounts: invalid form")
	ErrRejected         = errors.New("accounts: backend rejected request")
	ErrNotLoggedIn      = errors.New("accounts: not logged in")
	ErrUnknownPrincipal = errors.New("accounts: unknown principal")
	ErrTokenStorage     = errors.New("accounts: token storage failed")
)
