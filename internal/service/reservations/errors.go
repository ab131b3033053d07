package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidStateTransition возвращается при недопустимом переходе статуса:
	// approved, rejected и cancelled - терминальные состояния
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrDenialReasonRequired возвращается при отклонении без указания причины
	ErrDenialReasonRequired = errors.New("denial reason is required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
