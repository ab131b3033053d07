package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	accountClient "github.com/m04kA/SMC-ReservationService/internal/integrations/accountservice"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	accountClient   AccountServiceClient
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	accountClient AccountServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		accountClient:   accountClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь видит только своё бронирование,
// администратор - любое
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for requester=%d", id, requesterID)

	res, err := s.reservationRepo.GetByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkOwnerOrAdmin(ctx, res, requesterID); err != nil {
		s.logger.Warn("GetByID: access denied for requester=%d to reservation id=%d", requesterID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(res), nil
}

// GetActorReservations получает историю бронирований актора
// Опционально фильтрует по статусу
func (s *Service) GetActorReservations(ctx context.Context, req *models.GetActorReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetActorReservations: fetching reservations for actor=%d, status=%v", req.ActorID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetActorReservations: invalid status=%s for actor=%d", *req.Status, req.ActorID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	list, err := s.reservationRepo.GetByActor(ctx, domain.PersonActor(req.ActorID), domainStatus)
	if err != nil {
		s.logger.Error("GetActorReservations: repository error for actor=%d: %v", req.ActorID, err)
		return nil, fmt.Errorf("%w: GetActorReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetActorReservations: successfully fetched %d reservations for actor=%d", len(list), req.ActorID)
	return models.FromDomainReservationList(list), nil
}

// Reject отклоняет pending-бронирование с обязательной причиной отказа
// Доступно только администраторам. Каскадных эффектов нет - отклонение
// одной брони не освобождает и не затрагивает другие
func (s *Service) Reject(ctx context.Context, reservationID int64, req *models.RejectReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Reject: rejecting reservation id=%d by admin=%d", reservationID, req.AdminID)

	if strings.TrimSpace(req.DenialReason) == "" {
		s.logger.Warn("Reject: empty denial reason for reservation id=%d", reservationID)
		return nil, ErrDenialReasonRequired
	}

	if err := s.checkAdminAccess(ctx, req.AdminID); err != nil {
		return nil, err
	}

	var rejected *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		res, err := s.reservationRepo.GetByID(txCtx, reservationID, true)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("Reject: reservation id=%d not found", reservationID)
				return ErrReservationNotFound
			}
			s.logger.Error("Reject: repository error for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
		}

		if res.Status != domain.StatusPending {
			s.logger.Warn("Reject: reservation id=%d is %s, not pending", reservationID, res.Status)
			return ErrInvalidStateTransition
		}

		if err := s.reservationRepo.Reject(txCtx, reservationID, req.DenialReason); err != nil {
			s.logger.Error("Reject: failed to reject reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
		}

		res.Status = domain.StatusRejected
		res.DenialReason = &req.DenialReason
		rejected = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reject: successfully rejected reservation id=%d", reservationID)
	return models.FromDomainReservation(rejected), nil
}

// Cancel отменяет бронирование
// Владелец может отменить своё бронирование, администратор - любое.
// Отмена возможна только из pending: остальные статусы терминальны
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by requester=%d", reservationID, req.RequesterID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		res, err := s.reservationRepo.GetByID(txCtx, reservationID, true)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
				return ErrReservationNotFound
			}
			s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if err := s.checkOwnerOrAdmin(txCtx, res, req.RequesterID); err != nil {
			s.logger.Warn("Cancel: access denied for requester=%d to reservation id=%d", req.RequesterID, reservationID)
			return err
		}

		if !res.CanBeCancelled() {
			s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, res.Status)
			return ErrInvalidStateTransition
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, reservationID, domain.StatusCancelled); err != nil {
			s.logger.Error("Cancel: failed to cancel reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return nil
}

// Вспомогательные методы

// checkOwnerOrAdmin проверяет, что запрашивающий - владелец бронирования
// или администратор
func (s *Service) checkOwnerOrAdmin(ctx context.Context, res *domain.Reservation, requesterID int64) error {
	if res.Actor.Type == domain.ActorPerson && res.Actor.ID == requesterID {
		return nil
	}

	if err := s.checkAdminAccess(ctx, requesterID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkAdminAccess проверяет, что аккаунт существует и имеет роль администратора
func (s *Service) checkAdminAccess(ctx context.Context, accountID int64) error {
	account, err := s.accountClient.GetAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, accountClient.ErrAccountNotFound) {
			s.logger.Warn("checkAdminAccess: account id=%d not found", accountID)
			return ErrAccessDenied
		}
		s.logger.Error("checkAdminAccess: failed to get account id=%d: %v", accountID, err)
		return fmt.Errorf("%w: checkAdminAccess - failed to get account: %v", ErrInternal, err)
	}

	if !account.IsAdmin() {
		s.logger.Warn("checkAdminAccess: account id=%d is not an administrator", accountID)
		return ErrAccessDenied
	}

	return nil
}
