package tokens

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("tokens.storage: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения запроса к хранилищу
	ErrExecQuery = errors.New("tokens.storage: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("tokens.storage: failed to scan row")

	// ErrCorrupted возвращается, когда файл хранилища не удалось разобрать
	ErrCorrupted = errors.New("tokens.storage: corrupted storage file")
)
