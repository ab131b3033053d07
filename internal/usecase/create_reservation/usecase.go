package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
	accountClient "github.com/m04kA/SMC-ReservationService/internal/integrations/accountservice"
	"github.com/m04kA/SMC-ReservationService/internal/recurrence"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	catalogRepo     CatalogRepository
	accountClient   AccountServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	policy          BusinessHoursPolicy
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	catalogRepo CatalogRepository,
	accountClient AccountServiceClient,
	txManager TransactionManager,
	policy BusinessHoursPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		catalogRepo:     catalogRepo,
		accountClient:   accountClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		policy:          policy,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Вся проверка доступности и вставка выполняются в сериализуемой транзакции
// с блокировкой броней пула (FOR UPDATE); exclusion constraint БД остается
// последней линией защиты от гонки двух одновременных создании
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: actor=%d, pool=%d, start=%s, end=%s, recurring=%t",
		req.ActorID, req.PoolID, req.StartAt.Format(domain.DateFormat+" "+domain.TimeFormat),
		req.EndAt.Format(domain.DateFormat+" "+domain.TimeFormat), req.RRule != nil)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Порядок границ интервала
	if err := validateRange(req.StartAt, req.EndAt); err != nil {
		uc.logger.Warn("CreateReservation: invalid range for actor=%d", req.ActorID)
		return nil, err
	}

	// 3. Начало не в прошлом
	if err := validateNotPast(req.StartAt, now); err != nil {
		uc.logger.Warn("CreateReservation: start in the past for actor=%d", req.ActorID)
		return nil, err
	}

	// 4. Рабочие часы площадки
	if err := validateBusinessHours(req.StartAt, req.EndAt, uc.policy); err != nil {
		uc.logger.Warn("CreateReservation: business hours violated for actor=%d: %v", req.ActorID, err)
		return nil, err
	}

	// 5. Проверяем существование актора
	if _, err := uc.accountClient.GetAccount(ctx, req.ActorID); err != nil {
		if errors.Is(err, accountClient.ErrAccountNotFound) {
			uc.logger.Warn("CreateReservation: actor id=%d not found", req.ActorID)
			return nil, ErrActorNotFound
		}
		uc.logger.Error("CreateReservation: failed to get account id=%d: %v", req.ActorID, err)
		return nil, fmt.Errorf("%w: failed to get account: %v", ErrInternal, err)
	}

	// 6. Проверяем существование пула
	if _, err := uc.catalogRepo.GetPoolByID(ctx, req.PoolID); err != nil {
		if errors.Is(err, resourceRepo.ErrPoolNotFound) {
			uc.logger.Warn("CreateReservation: pool id=%d not found", req.PoolID)
			return nil, ErrPoolNotFound
		}
		uc.logger.Error("CreateReservation: failed to get pool id=%d: %v", req.PoolID, err)
		return nil, fmt.Errorf("%w: failed to get pool: %v", ErrInternal, err)
	}

	actor := domain.PersonActor(req.ActorID)
	candidate := &domain.Reservation{
		PoolID:        req.PoolID,
		Actor:         actor,
		EventType:     domain.EventType(req.EventType),
		Reason:        req.Reason,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		Status:        domain.StatusPending,
		RRule:         req.RRule,
		RecurrenceEnd: req.RecurrenceEnd,
	}

	var result *domain.Reservation

	// 7. Проверка доступности и вставка в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Ресурсы пула в стабильном порядке (по ID)
		resources, err := uc.catalogRepo.ListByPool(txCtx, req.PoolID)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list resources: %v", err)
			return fmt.Errorf("%w: failed to list resources: %v", ErrInternal, err)
		}
		if len(resources) == 0 {
			uc.logger.Warn("CreateReservation: pool id=%d has no resources", req.PoolID)
			return ErrNoResourceAvailable
		}

		resourceIDs := make([]int64, len(resources))
		for i, res := range resources {
			resourceIDs[i] = res.ID
		}

		// Окно конфликта: от начала брони до конца занятости серии.
		// Последнее вхождение может начаться перед RecurrenceEnd и выйти
		// за него на свою длительность
		windowStart := candidate.StartAt
		windowEnd := candidate.OccupiedUntil()

		// 7.2. Блокирующие брони пула в окне, с блокировкой строк
		existing, err := uc.reservationRepo.GetWithFilter(txCtx, domain.ResourceReservationsFilter{
			ResourceIDs: resourceIDs,
			From:        &windowStart,
			To:          &windowEnd,
			Statuses:    domain.BlockingStatuses,
			ForUpdate:   true,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		existingIDs := make([]int64, len(existing))
		for i, res := range existing {
			existingIDs[i] = res.ID
		}

		exceptions, err := uc.reservationRepo.GetExceptionsByReservationIDs(txCtx, existingIDs)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get exceptions: %v", err)
			return fmt.Errorf("%w: failed to get exceptions: %v", ErrInternal, err)
		}

		// 7.3. Вхождения запрашиваемой брони
		wantedOccs, err := recurrence.Expand(candidate, windowStart, windowEnd, nil)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRecurrenceRule, err)
		}

		// 7.4. Пересечение с собственными бронями актора в этом пуле
		// (независимо от статуса pending/approved)
		for _, res := range existing {
			if res.Actor != actor {
				continue
			}
			occs, err := expandExisting(res, windowStart, windowEnd, exceptions)
			if err != nil {
				return err
			}
			if domain.OccurrencesOverlap(wantedOccs, occs) {
				uc.logger.Warn("CreateReservation: actor=%d self-overlap with reservation id=%d", req.ActorID, res.ID)
				return ErrActorSelfOverlap
			}
		}

		// 7.5. Детерминированный выбор первого свободного ресурса
		byResource := make(map[int64][]domain.Occurrence)
		for _, res := range existing {
			occs, err := expandExisting(res, windowStart, windowEnd, exceptions)
			if err != nil {
				return err
			}
			byResource[res.ResourceID] = append(byResource[res.ResourceID], occs...)
		}

		var chosen *domain.Resource
		for _, res := range resources {
			if !domain.OccurrencesOverlap(wantedOccs, byResource[res.ID]) {
				chosen = res
				break
			}
		}
		if chosen == nil {
			uc.logger.Warn("CreateReservation: no free resource in pool id=%d", req.PoolID)
			return ErrNoResourceAvailable
		}

		candidate.ResourceID = chosen.ID

		// 7.6. Вставка pending-брони
		created, err := uc.reservationRepo.Create(txCtx, candidate)
		if err != nil {
			// Проигравший в гонке получает NoResourceAvailable,
			// а не ошибку уровня хранилища
			if errors.Is(err, reservationRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateReservation: lost creation race for resource id=%d", chosen.ID)
				return ErrNoResourceAvailable
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d on resource id=%d",
		result.ID, result.ResourceID)

	return fromDomain(result), nil
}
