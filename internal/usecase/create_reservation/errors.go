package create_reservation

import "errors"

var (
	// ErrInvalidRange возвращается, когда начало брони не раньше её конца
	ErrInvalidRange = errors.New("create_reservation: start must be before end")

	// ErrPastStart возвращается, когда начало брони в прошлом
	ErrPastStart = errors.New("create_reservation: start is in the past")

	// ErrOutsideBusinessHours возвращается, когда бронь выходит за рабочие часы площадки
	ErrOutsideBusinessHours = errors.New("create_reservation: outside business hours")

	// ErrActorSelfOverlap возвращается, когда актор уже держит пересекающуюся бронь в этом пуле
	ErrActorSelfOverlap = errors.New("create_reservation: actor already holds an overlapping reservation")

	// ErrNoResourceAvailable возвращается, когда в пуле нет свободного ресурса на запрошенное время
	ErrNoResourceAvailable = errors.New("create_reservation: no resource available")

	// ErrInvalidRecurrenceRule возвращается при некорректном правиле повторения
	ErrInvalidRecurrenceRule = errors.New("create_reservation: invalid recurrence rule")

	// ErrActorNotFound возвращается, когда учетная запись актора не найдена
	ErrActorNotFound = errors.New("create_reservation: actor account not found")

	// ErrPoolNotFound возвращается, когда пул ресурсов не найден
	ErrPoolNotFound = errors.New("create_reservation: resource pool not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
