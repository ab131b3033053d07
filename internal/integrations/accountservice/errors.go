package accountservice

import "errors"

var (
	// ErrAccountNotFound возвращается, когда учетная запись не найдена
	ErrAccountNotFound = errors.New("accountservice: account not found")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса
	ErrInvalidResponse = errors.New("accountservice: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("accountservice: internal error")
)
