package approve_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("approve_reservation: reservation not found")

	// ErrInvalidStateTransition возвращается при попытке подтвердить бронь
	// не в статусе pending (approved/rejected/cancelled - терминальные состояния)
	ErrInvalidStateTransition = errors.New("approve_reservation: invalid state transition")

	// ErrAccessDenied возвращается, когда оператор не является администратором
	ErrAccessDenied = errors.New("approve_reservation: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("approve_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("approve_reservation: internal error")
)
