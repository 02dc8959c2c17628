package register_station

import "errors"

var (
	ErrInvalidForm = errors.New("register_station: invalid form")
	ErrRejected    = errors.New("register_station: backend rejected station")
	ErrSubmitting  = errors.New("register_station: submission already in progress")
)
