package search_tickets

import "errors"

var (
	ErrInvalidForm  = errors.New("search_tickets: invalid search criteria")
	ErrSearchFailed = errors.New("search_tickets: search failed")
	ErrSearching    = errors.New("search_tickets: search already in progress")
	ErrInvalidEmail = errors.New("search_tickets: invalid email")
)
