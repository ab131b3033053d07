package catalog

import "errors"

var (
	// ErrPoolNotFound возвращается, когда пул ресурсов не найден
	ErrPoolNotFound = errors.New("resource pool not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
