package domain

// Business policy defaults
const (
	// DefaultOpenTime начало рабочего дня площадки
	DefaultOpenTime = "09:00"
	// DefaultCloseTime конец рабочего дня площадки
	DefaultCloseTime = "18:00"
	// DefaultCheckInToleranceMinutes допустимое отклонение от начала брони при чек-ине
	DefaultCheckInToleranceMinutes = 30

	MaxReasonLength       = 500
	MaxDenialReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AutoRejectReason системная причина отказа при каскадном отклонении
// конфликтующих pending-броней на подтверждённом ресурсе
const AutoRejectReason = "auto-rejected: resource no longer available"

// BlockingStatuses статусы, при которых бронь занимает ресурс
// Используется для расчёта доступности и проверки конфликтов
var BlockingStatuses = []ReservationStatus{
	StatusPending,
	StatusApproved,
}

// ValidEventTypes допустимые категории событий
var ValidEventTypes = []EventType{
	EventMeeting,
	EventWorkshop,
	EventConference,
	EventOther,
}

// IsValidEventType проверяет, что категория события допустима
func IsValidEventType(t EventType) bool {
	for _, v := range ValidEventTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ValidPoolKinds допустимые типы пулов ресурсов
var ValidPoolKinds = []PoolKind{
	PoolCoworking,
	PoolLaboratory,
	PoolAuditorium,
	PoolMeeting,
}

// IsValidPoolKind проверяет, что тип пула допустим
func IsValidPoolKind(k PoolKind) bool {
	for _, v := range ValidPoolKinds {
		if v == k {
			return true
		}
	}
	return false
}
