package forms

import "errors"

// ErrUnknownField возвращается при обращении к полю, которого нет в форме
var ErrUnknownField = errors.New("forms: unknown field")
