package checkins

import "errors"

var (
	// ErrAlreadyCheckedIn возвращается, когда у актора уже есть открытая сессия
	ErrAlreadyCheckedIn = errors.New("actor already has an open check-in")

	// ErrNoActiveCheckIn возвращается, когда у актора нет открытой сессии
	ErrNoActiveCheckIn = errors.New("actor has no active check-in")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrReservationNotApproved возвращается при чек-ине по брони,
	// не принадлежащей актору или не находящейся в статусе approved
	ErrReservationNotApproved = errors.New("reservation is not approved for this actor")

	// ErrOutsideReservationWindow возвращается, когда текущий момент
	// дальше допуска от начала ближайшего вхождения брони
	ErrOutsideReservationWindow = errors.New("current time is outside the reservation window")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("checkins: internal error")
)
