package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ActorID       int64      // ID актора (из заголовка аутентификации)
	PoolID        int64      // ID пула ресурсов
	StartAt       time.Time  // Начало брони
	EndAt         time.Time  // Конец брони
	Reason        string     // Свободное описание цели
	EventType     string     // Категория события (meeting, workshop, ...)
	RRule         *string    // Правило повторения (опционально)
	RecurrenceEnd *time.Time // Конец серии (обязателен при наличии правила)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64      // ID созданного бронирования
	ResourceID    int64      // ID привязанного ресурса
	PoolID        int64      // ID пула
	ActorType     string     // Тип актора
	ActorID       int64      // ID актора
	EventType     string     // Категория события
	Reason        string     // Описание цели
	StartAt       time.Time  // Начало
	EndAt         time.Time  // Конец
	Status        string     // Статус (всегда pending после создания)
	RRule         *string    // Правило повторения
	RecurrenceEnd *time.Time // Конец серии

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

// BusinessHoursPolicy политика рабочих часов площадки
// Все сравнения выполняются в канонической таймзоне площадки
type BusinessHoursPolicy struct {
	Location *time.Location
	Open     types.TimeString
	Close    types.TimeString
}

func fromDomain(res *domain.Reservation) *Response {
	return &Response{
		ID:            res.ID,
		ResourceID:    res.ResourceID,
		PoolID:        res.PoolID,
		ActorType:     string(res.Actor.Type),
		ActorID:       res.Actor.ID,
		EventType:     string(res.EventType),
		Reason:        res.Reason,
		StartAt:       res.StartAt,
		EndAt:         res.EndAt,
		Status:        string(res.Status),
		RRule:         res.RRule,
		RecurrenceEnd: res.RecurrenceEnd,
		CreatedAt:     res.CreatedAt,
		UpdatedAt:     res.UpdatedAt,
	}
}
