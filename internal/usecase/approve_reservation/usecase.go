package approve_reservation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	accountClient "github.com/m04kA/SMC-ReservationService/internal/integrations/accountservice"
	"github.com/m04kA/SMC-ReservationService/internal/recurrence"
)

// UseCase use case операций подтверждения бронирования
//
// Предпросмотр и подтверждение считают конфликты одной функцией resolve,
// параметризованной флагом commit: наборы никогда не расходятся.
// Предпросмотр выполняется в read-only транзакции и ничего не мутирует;
// подтверждение - в сериализуемой транзакции с блокировкой всех броней
// целевого ресурса, так что два конкурирующих подтверждения пересекающихся
// броней не могут завершиться двумя approved
type UseCase struct {
	reservationRepo ReservationRepository
	accountClient   AccountServiceClient
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	accountClient AccountServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		accountClient:   accountClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// Preview возвращает ID pending-броней, которые будут автоматически
// отклонены при подтверждении. Чистая операция: ничего не мутирует,
// идемпотентна
func (uc *UseCase) Preview(ctx context.Context, req *Request) (*PreviewResponse, error) {
	uc.logger.Info("PreviewApproval: admin=%d, reservation=%d", req.AdminID, req.ReservationID)

	if err := uc.authorize(ctx, req); err != nil {
		return nil, err
	}

	var conflictIDs []int64

	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		_, ids, err := uc.resolve(txCtx, req.ReservationID, false)
		conflictIDs = ids
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("PreviewApproval: reservation=%d has %d conflicts", req.ReservationID, len(conflictIDs))

	return &PreviewResponse{
		ReservationID: req.ReservationID,
		ConflictIDs:   conflictIDs,
	}, nil
}

// Approve атомарно подтверждает бронь и отклоняет конфликтующие pending-брони
// того же ресурса с системной причиной отказа. Либо выполняются все шаги,
// либо ни один
func (uc *UseCase) Approve(ctx context.Context, req *Request) (*ApproveResponse, error) {
	uc.logger.Info("ApproveReservation: admin=%d, reservation=%d", req.AdminID, req.ReservationID)

	if err := uc.authorize(ctx, req); err != nil {
		return nil, err
	}

	var (
		approved    *domain.Reservation
		conflictIDs []int64
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		target, ids, err := uc.resolve(txCtx, req.ReservationID, true)
		if err != nil {
			return err
		}

		if err := uc.reservationRepo.UpdateStatus(txCtx, target.ID, domain.StatusApproved); err != nil {
			uc.logger.Error("ApproveReservation: failed to approve id=%d: %v", target.ID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		for _, conflictID := range ids {
			if err := uc.reservationRepo.Reject(txCtx, conflictID, domain.AutoRejectReason); err != nil {
				uc.logger.Error("ApproveReservation: failed to auto-reject id=%d: %v", conflictID, err)
				return fmt.Errorf("%w: failed to auto-reject conflicting reservation: %v", ErrInternal, err)
			}
		}

		target.Status = domain.StatusApproved
		approved = target
		conflictIDs = ids
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ApproveReservation: reservation=%d approved, %d auto-rejected",
		req.ReservationID, len(conflictIDs))

	return &ApproveResponse{
		Reservation:     fromDomain(approved),
		AutoRejectedIDs: conflictIDs,
	}, nil
}

// resolve находит целевую бронь и набор конфликтующих pending-броней
// того же ресурса. При commit=true строки блокируются (FOR UPDATE)
// для последующей мутации в этой же транзакции
func (uc *UseCase) resolve(ctx context.Context, reservationID int64, commit bool) (*domain.Reservation, []int64, error) {
	target, err := uc.reservationRepo.GetByID(ctx, reservationID, commit)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("resolve: reservation id=%d not found", reservationID)
			return nil, nil, ErrReservationNotFound
		}
		uc.logger.Error("resolve: failed to get reservation id=%d: %v", reservationID, err)
		return nil, nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	if target.Status != domain.StatusPending {
		uc.logger.Warn("resolve: reservation id=%d is %s, not pending", reservationID, target.Status)
		return nil, nil, ErrInvalidStateTransition
	}

	// Окно конфликта: вся занятость целевой брони, включая хвост
	// последнего вхождения серии за RecurrenceEnd
	windowStart := target.StartAt
	windowEnd := target.OccupiedUntil()

	// Кандидаты на отклонение: pending-брони того же ресурса
	candidates, err := uc.reservationRepo.GetWithFilter(ctx, domain.ResourceReservationsFilter{
		ResourceIDs: []int64{target.ResourceID},
		From:        &windowStart,
		To:          &windowEnd,
		Statuses:    []domain.ReservationStatus{domain.StatusPending},
		ForUpdate:   commit,
	})
	if err != nil {
		uc.logger.Error("resolve: failed to get candidates: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to get candidate reservations: %v", ErrInternal, err)
	}

	ids := make([]int64, 0, len(candidates)+1)
	for _, res := range candidates {
		ids = append(ids, res.ID)
	}
	ids = append(ids, target.ID)

	exceptions, err := uc.reservationRepo.GetExceptionsByReservationIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("resolve: failed to get exceptions: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to get exceptions: %v", ErrInternal, err)
	}

	targetOccs, err := uc.expand(target, windowStart, windowEnd, exceptions)
	if err != nil {
		return nil, nil, err
	}

	conflictIDs := make([]int64, 0)
	for _, res := range candidates {
		if res.ID == target.ID {
			continue
		}
		occs, err := uc.expand(res, windowStart, windowEnd, exceptions)
		if err != nil {
			return nil, nil, err
		}
		if domain.OccurrencesOverlap(targetOccs, occs) {
			conflictIDs = append(conflictIDs, res.ID)
		}
	}

	sort.Slice(conflictIDs, func(i, j int) bool { return conflictIDs[i] < conflictIDs[j] })

	return target, conflictIDs, nil
}

// expand разворачивает бронь в окне конфликта
// Ошибка правила сохраненной брони - внутренняя: строка прошла валидацию
// при создании
func (uc *UseCase) expand(
	res *domain.Reservation,
	windowStart, windowEnd time.Time,
	exceptions map[int64][]domain.ReservationException,
) ([]domain.Occurrence, error) {
	occs, err := recurrence.Expand(res, windowStart, windowEnd, exceptions[res.ID])
	if err != nil {
		if errors.Is(err, recurrence.ErrInvalidRule) {
			uc.logger.Error("expand: stored reservation id=%d has invalid rule: %v", res.ID, err)
			return nil, fmt.Errorf("%w: stored reservation id=%d has invalid rule: %v", ErrInternal, res.ID, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return occs, nil
}

// authorize проверяет, что оператор существует и имеет права администратора
func (uc *UseCase) authorize(ctx context.Context, req *Request) error {
	if req.AdminID <= 0 || req.ReservationID <= 0 {
		return fmt.Errorf("%w: adminID and reservationID must be positive", ErrInvalidInput)
	}

	account, err := uc.accountClient.GetAccount(ctx, req.AdminID)
	if err != nil {
		if errors.Is(err, accountClient.ErrAccountNotFound) {
			uc.logger.Warn("authorize: admin account id=%d not found", req.AdminID)
			return ErrAccessDenied
		}
		uc.logger.Error("authorize: failed to get account id=%d: %v", req.AdminID, err)
		return fmt.Errorf("%w: failed to get account: %v", ErrInternal, err)
	}

	if !account.IsAdmin() {
		uc.logger.Warn("authorize: account id=%d is not an administrator", req.AdminID)
		return ErrAccessDenied
	}

	return nil
}
