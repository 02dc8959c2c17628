package create_details

import "errors"

var (
	// ErrInvalidForm возвращается, когда поля формы не прошли проверку
	ErrInvalidForm = errors.New("create_details: invalid form")

	// ErrUnresolved возвращается, когда станцию не удалось получить по идентификатору
	ErrUnresolved = errors.New("create_details: station could not be resolved")

	// ErrRejected возвращается, когда бэкенд отклонил рейс
	ErrRejected = errors.New("create_details: rejected by backend")

	// ErrSubmitting возвращается при повторной отправке до завершения предыдущей
	ErrSubmitting = errors.New("create_details: submission in progress")
)
