package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-ReservationService/internal/recurrence"
)

// UseCase use case для получения занятости пула и вхождений актора
type UseCase struct {
	reservationRepo ReservationRepository
	catalogRepo     CatalogRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		catalogRepo:     catalogRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case запроса доступности
// Обе проекции (занятые слоты и вхождения актора) читаются в одной
// read-only транзакции: ответ соответствует единому снапшоту
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: actor=%d, pool=%d, from=%s, to=%s",
		req.ActorID, req.PoolID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{
		PoolID:           req.PoolID,
		From:             req.From,
		To:               req.To,
		UnavailableSlots: []Slot{},
		ActorOccurrences: []OccurrenceView{},
	}

	actor := domain.PersonActor(req.ActorID)

	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		if _, err := uc.catalogRepo.GetPoolByID(txCtx, req.PoolID); err != nil {
			if errors.Is(err, resourceRepo.ErrPoolNotFound) {
				uc.logger.Warn("GetAvailability: pool id=%d not found", req.PoolID)
				return ErrPoolNotFound
			}
			uc.logger.Error("GetAvailability: failed to get pool id=%d: %v", req.PoolID, err)
			return fmt.Errorf("%w: failed to get pool: %v", ErrInternal, err)
		}

		resources, err := uc.catalogRepo.ListByPool(txCtx, req.PoolID)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to list resources: %v", err)
			return fmt.Errorf("%w: failed to list resources: %v", ErrInternal, err)
		}

		resourceIDs := make([]int64, len(resources))
		for i, res := range resources {
			resourceIDs[i] = res.ID
		}

		// Блокирующие брони пула в окне: pending чужих акторов
		// учитываются как занятость (пессимистичная политика)
		reservations, err := uc.reservationRepo.GetWithFilter(txCtx, domain.ResourceReservationsFilter{
			ResourceIDs: resourceIDs,
			From:        &req.From,
			To:          &req.To,
			Statuses:    domain.BlockingStatuses,
		})
		if err != nil {
			uc.logger.Error("GetAvailability: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		reservationIDs := make([]int64, len(reservations))
		for i, res := range reservations {
			reservationIDs[i] = res.ID
		}

		exceptions, err := uc.reservationRepo.GetExceptionsByReservationIDs(txCtx, reservationIDs)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to get exceptions: %v", err)
			return fmt.Errorf("%w: failed to get exceptions: %v", ErrInternal, err)
		}

		busy := make([]domain.Occurrence, 0)
		mine := make([]domain.Occurrence, 0)

		for _, res := range reservations {
			occs, err := recurrence.Expand(res, req.From, req.To, exceptions[res.ID])
			if err != nil {
				if errors.Is(err, recurrence.ErrInvalidRule) {
					return fmt.Errorf("%w: stored reservation id=%d has invalid rule: %v", ErrInternal, res.ID, err)
				}
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}

			if res.Actor == actor {
				// Собственные вхождения актора никогда не попадают
				// в занятые слоты
				mine = append(mine, occs...)
				continue
			}

			for _, occ := range occs {
				busy = append(busy, clampToWindow(occ, req.From, req.To))
			}
		}

		resp.UnavailableSlots = mergeSlots(busy)
		resp.ActorOccurrences = toOccurrenceViews(mine)
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetAvailability: pool=%d, %d unavailable slots, %d actor occurrences",
		req.PoolID, len(resp.UnavailableSlots), len(resp.ActorOccurrences))

	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}
	if req.PoolID <= 0 {
		return fmt.Errorf("%w: poolID must be positive", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidWindow)
	}
	if !req.From.Before(req.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidWindow)
	}
	return nil
}
