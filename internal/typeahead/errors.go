package typeahead

import "errors"

var (
	// ErrMissingField возвращается адаптером, если в записи нет обязательного поля
	ErrMissingField = errors.New("typeahead: missing field")

	// ErrInvalidRecord возвращается адаптером, если запись не удалось разобрать
	ErrInvalidRecord = errors.New("typeahead: invalid record")

	// ErrEmptyIdentifier возвращается при выборе станции без идентификатора
	ErrEmptyIdentifier = errors.New("typeahead: empty identifier")

	// ErrNoSuchResult возвращается при выборе по индексу вне списка результатов
	ErrNoSuchResult = errors.New("typeahead: no such result")
)
