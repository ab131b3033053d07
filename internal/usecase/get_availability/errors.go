package get_availability

import "errors"

var (
	// ErrPoolNotFound возвращается, когда пул ресурсов не найден
	ErrPoolNotFound = errors.New("get_availability: resource pool not found")

	// ErrInvalidWindow возвращается при некорректном окне запроса
	ErrInvalidWindow = errors.New("get_availability: invalid query window")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
