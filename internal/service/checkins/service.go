package checkins

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	checkInRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/checkin"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	accountClient "github.com/m04kA/SMC-ReservationService/internal/integrations/accountservice"
	"github.com/m04kA/SMC-ReservationService/internal/recurrence"
	"github.com/m04kA/SMC-ReservationService/internal/service/checkins/models"
)

// Service сервис для работы с сессиями присутствия
type Service struct {
	checkInRepo     CheckInRepository
	reservationRepo ReservationRepository
	accountClient   AccountServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	tolerance       time.Duration // допуск чек-ина относительно начала брони
	logger          Logger
}

// NewService создает новый экземпляр сервиса чек-инов
func NewService(
	checkInRepo CheckInRepository,
	reservationRepo ReservationRepository,
	accountClient AccountServiceClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	tolerance time.Duration,
	logger Logger,
) *Service {
	return &Service{
		checkInRepo:     checkInRepo,
		reservationRepo: reservationRepo,
		accountClient:   accountClient,
		txManager:       txManager,
		timeProvider:    timeProvider,
		tolerance:       tolerance,
		logger:          logger,
	}
}

// CheckIn открывает сессию присутствия актора
// Актор может иметь не более одной открытой сессии. При привязке к брони
// бронь должна принадлежать актору, быть подтвержденной, а текущий момент -
// лежать в пределах допуска от начала ближайшего вхождения
func (s *Service) CheckIn(ctx context.Context, req *models.CheckInRequest) (*models.CheckInResponse, error) {
	s.logger.Info("CheckIn: actor=%d, reservation=%v", req.ActorID, req.ReservationID)

	if req.ActorID <= 0 {
		return nil, fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}
	if req.ReservationID != nil && *req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	actor := domain.PersonActor(req.ActorID)
	now := s.timeProvider.Now()

	var created *domain.CheckIn

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		_, err := s.checkInRepo.GetOpenByActor(txCtx, actor)
		if err == nil {
			s.logger.Warn("CheckIn: actor=%d already has an open session", req.ActorID)
			return ErrAlreadyCheckedIn
		}
		if !errors.Is(err, checkInRepo.ErrCheckInNotFound) {
			s.logger.Error("CheckIn: failed to get open session for actor=%d: %v", req.ActorID, err)
			return fmt.Errorf("%w: CheckIn - repository error: %v", ErrInternal, err)
		}

		if req.ReservationID != nil {
			if err := s.validateReservation(txCtx, actor, *req.ReservationID, now); err != nil {
				return err
			}
		}

		checkIn, err := s.checkInRepo.Create(txCtx, &domain.CheckIn{
			Actor:         actor,
			ReservationID: req.ReservationID,
			CheckInTime:   now,
		})
		if err != nil {
			if errors.Is(err, checkInRepo.ErrOpenSessionExists) {
				s.logger.Warn("CheckIn: concurrent open session detected for actor=%d", req.ActorID)
				return ErrAlreadyCheckedIn
			}
			s.logger.Error("CheckIn: failed to create session for actor=%d: %v", req.ActorID, err)
			return fmt.Errorf("%w: CheckIn - repository error: %v", ErrInternal, err)
		}

		created = checkIn
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CheckIn: actor=%d checked in, session id=%d", req.ActorID, created.ID)
	return models.FromDomainCheckIn(created), nil
}

// CheckOut закрывает собственную открытую сессию актора
func (s *Service) CheckOut(ctx context.Context, req *models.CheckOutRequest) (*models.CheckInResponse, error) {
	s.logger.Info("CheckOut: actor=%d, session=%d", req.ActorID, req.CheckInID)

	if req.ActorID <= 0 || req.CheckInID <= 0 {
		return nil, fmt.Errorf("%w: actorID and checkInID must be positive", ErrInvalidInput)
	}

	closed, err := s.closeOpenSession(ctx, domain.PersonActor(req.ActorID), &req.CheckInID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("CheckOut: actor=%d checked out, session id=%d", req.ActorID, closed.ID)
	return models.FromDomainCheckIn(closed), nil
}

// CheckOutByActor закрывает открытую сессию указанного актора
// Доступно только администраторам
func (s *Service) CheckOutByActor(ctx context.Context, req *models.CheckOutByActorRequest) (*models.CheckInResponse, error) {
	s.logger.Info("CheckOutByActor: admin=%d, actor=%d", req.AdminID, req.ActorID)

	if req.AdminID <= 0 || req.ActorID <= 0 {
		return nil, fmt.Errorf("%w: adminID and actorID must be positive", ErrInvalidInput)
	}

	if err := s.checkAdminAccess(ctx, req.AdminID); err != nil {
		return nil, err
	}

	closed, err := s.closeOpenSession(ctx, domain.PersonActor(req.ActorID), nil)
	if err != nil {
		return nil, err
	}

	s.logger.Info("CheckOutByActor: admin=%d closed session id=%d of actor=%d", req.AdminID, closed.ID, req.ActorID)
	return models.FromDomainCheckIn(closed), nil
}

// ListOpen возвращает все открытые сессии присутствия
// Доступно только администраторам
func (s *Service) ListOpen(ctx context.Context, adminID int64) (*models.CheckInListResponse, error) {
	s.logger.Info("ListOpen: admin=%d", adminID)

	if err := s.checkAdminAccess(ctx, adminID); err != nil {
		return nil, err
	}

	list, err := s.checkInRepo.ListOpen(ctx)
	if err != nil {
		s.logger.Error("ListOpen: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListOpen - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListOpen: %d open sessions", len(list))
	return models.FromDomainCheckInList(list), nil
}

// Вспомогательные методы

// closeOpenSession находит и закрывает открытую сессию актора
// Если expectedID задан, закрывается только сессия с этим ID
func (s *Service) closeOpenSession(ctx context.Context, actor domain.Actor, expectedID *int64) (*domain.CheckIn, error) {
	var closed *domain.CheckIn

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		open, err := s.checkInRepo.GetOpenByActor(txCtx, actor)
		if err != nil {
			if errors.Is(err, checkInRepo.ErrCheckInNotFound) {
				s.logger.Warn("closeOpenSession: actor=%d has no active session", actor.ID)
				return ErrNoActiveCheckIn
			}
			s.logger.Error("closeOpenSession: failed to get open session for actor=%d: %v", actor.ID, err)
			return fmt.Errorf("%w: closeOpenSession - repository error: %v", ErrInternal, err)
		}

		if expectedID != nil && open.ID != *expectedID {
			s.logger.Warn("closeOpenSession: session id=%d is not the active session of actor=%d", *expectedID, actor.ID)
			return ErrNoActiveCheckIn
		}

		now := s.timeProvider.Now()
		if err := s.checkInRepo.Close(txCtx, open.ID, now); err != nil {
			if errors.Is(err, checkInRepo.ErrCheckInNotFound) {
				return ErrNoActiveCheckIn
			}
			s.logger.Error("closeOpenSession: failed to close session id=%d: %v", open.ID, err)
			return fmt.Errorf("%w: closeOpenSession - repository error: %v", ErrInternal, err)
		}

		open.CheckOutTime = &now
		closed = open
		return nil
	})
	if err != nil {
		return nil, err
	}

	return closed, nil
}

// validateReservation проверяет привязку чек-ина к брони: бронь принадлежит
// актору, подтверждена, и now лежит в пределах допуска от начала вхождения
func (s *Service) validateReservation(ctx context.Context, actor domain.Actor, reservationID int64, now time.Time) error {
	res, err := s.reservationRepo.GetByID(ctx, reservationID, false)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("validateReservation: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("validateReservation: failed to get reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: validateReservation - repository error: %v", ErrInternal, err)
	}

	if res.Actor != actor || res.Status != domain.StatusApproved {
		s.logger.Warn("validateReservation: reservation id=%d is not approved for actor=%d", reservationID, actor.ID)
		return ErrReservationNotApproved
	}

	exceptions, err := s.reservationRepo.GetExceptionsByReservationIDs(ctx, []int64{res.ID})
	if err != nil {
		s.logger.Error("validateReservation: failed to get exceptions for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: validateReservation - repository error: %v", ErrInternal, err)
	}

	// Окно, гарантированно содержащее любое вхождение, чей старт лежит
	// в пределах допуска от now
	duration := res.EndAt.Sub(res.StartAt)
	occs, err := recurrence.Expand(res, now.Add(-s.tolerance-duration), now.Add(s.tolerance+duration), exceptions[res.ID])
	if err != nil {
		s.logger.Error("validateReservation: failed to expand reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: validateReservation - expand error: %v", ErrInternal, err)
	}

	for _, occ := range occs {
		diff := now.Sub(occ.Start)
		if diff < 0 {
			diff = -diff
		}
		if diff <= s.tolerance {
			return nil
		}
	}

	s.logger.Warn("validateReservation: now=%s is outside the check-in window of reservation id=%d",
		now.Format(time.RFC3339), reservationID)
	return ErrOutsideReservationWindow
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
