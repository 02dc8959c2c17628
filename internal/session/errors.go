package session

import "errors"

var (
	// ErrEmptyToken возвращается при попытке сохранить пустой токен
	ErrEmptyToken = errors.New("session: empty token")

	// ErrStorage возвращается при ошибке хранилища
	ErrStorage = errors.New("session: storage error")

	// ErrMalformedToken возвращается, если payload токена не удалось декодировать
	ErrMalformedToken = errors.New("session: malformed token")
)
