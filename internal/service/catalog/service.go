package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
	accountClient "github.com/m04kA/SMC-ReservationService/internal/integrations/accountservice"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog/models"
)

// Service сервис каталога пулов ресурсов
type Service struct {
	resourceRepo  ResourceRepository
	accountClient AccountServiceClient
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	resourceRepo ResourceRepository,
	accountClient AccountServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		resourceRepo:  resourceRepo,
		accountClient: accountClient,
		txManager:     txManager,
		logger:        logger,
	}
}

// CreatePool создает пул с capacity взаимозаменяемыми единицами ресурсов
// Доступно только администраторам
func (s *Service) CreatePool(ctx context.Context, req *models.CreatePoolRequest) (*models.PoolResponse, error) {
	s.logger.Info("CreatePool: admin=%d, name=%s, kind=%s, capacity=%d", req.AdminID, req.Name, req.Kind, req.Capacity)

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: pool name must not be empty", ErrInvalidInput)
	}
	if !domain.IsValidPoolKind(domain.PoolKind(req.Kind)) {
		return nil, fmt.Errorf("%w: unknown pool kind %q", ErrInvalidInput, req.Kind)
	}
	if req.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1", ErrInvalidInput)
	}

	if err := s.checkAdminAccess(ctx, req.AdminID); err != nil {
		return nil, err
	}

	var created *domain.ResourcePool

	// Пул и его единицы создаются атомарно
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		pool, err := s.resourceRepo.CreatePool(txCtx, &domain.ResourcePool{
			Name:     req.Name,
			Kind:     domain.PoolKind(req.Kind),
			Capacity: req.Capacity,
		})
		if err != nil {
			s.logger.Error("CreatePool: repository error: %v", err)
			return fmt.Errorf("%w: CreatePool - repository error: %v", ErrInternal, err)
		}
		created = pool
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreatePool: successfully created pool id=%d", created.ID)
	return models.FromDomainPool(created), nil
}

// GetPool получает пул и его единицы ресурсов
func (s *Service) GetPool(ctx context.Context, poolID int64) (*models.PoolDetailsResponse, error) {
	s.logger.Info("GetPool: fetching pool id=%d", poolID)

	pool, err := s.resourceRepo.GetPoolByID(ctx, poolID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrPoolNotFound) {
			s.logger.Warn("GetPool: pool id=%d not found", poolID)
			return nil, ErrPoolNotFound
		}
		s.logger.Error("GetPool: repository error for pool id=%d: %v", poolID, err)
		return nil, fmt.Errorf("%w: GetPool - repository error: %v", ErrInternal, err)
	}

	units, err := s.resourceRepo.ListByPool(ctx, poolID)
	if err != nil {
		s.logger.Error("GetPool: failed to list resources of pool id=%d: %v", poolID, err)
		return nil, fmt.Errorf("%w: GetPool - repository error: %v", ErrInternal, err)
	}

	resp := &models.PoolDetailsResponse{
		Pool:      models.FromDomainPool(pool),
		Resources: make([]*models.ResourceResponse, 0, len(units)),
	}
	for _, unit := range units {
		resp.Resources = append(resp.Resources, models.FromDomainResource(unit))
	}

	s.logger.Info("GetPool: successfully fetched pool id=%d with %d resources", poolID, len(units))
	return resp, nil
}

// ListPools получает все пулы ресурсов
func (s *Service) ListPools(ctx context.Context) (*models.PoolListResponse, error) {
	s.logger.Info("ListPools: fetching all pools")

	pools, err := s.resourceRepo.ListPools(ctx)
	if err != nil {
		s.logger.Error("ListPools: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPools - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListPools: successfully fetched %d pools", len(pools))
	return models.FromDomainPoolList(pools), nil
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
