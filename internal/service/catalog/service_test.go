package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/accountservice"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog/models"
)

type fakeResourceRepo struct {
	pools     map[int64]*domain.ResourcePool
	resources map[int64][]*domain.Resource
	created   *domain.ResourcePool
}

func newFakeRepo() *fakeResourceRepo {
	return &fakeResourceRepo{
		pools:     map[int64]*domain.ResourcePool{},
		resources: map[int64][]*domain.Resource{},
	}
}

func (f *fakeResourceRepo) CreatePool(_ context.Context, pool *domain.ResourcePool) (*domain.ResourcePool, error) {
	stored := *pool
	stored.ID = 1
	f.created = &stored
	return &stored, nil
}

func (f *fakeResourceRepo) GetPoolByID(_ context.Context, id int64) (*domain.ResourcePool, error) {
	pool, ok := f.pools[id]
	if !ok {
		return nil, resourceRepo.ErrPoolNotFound
	}
	return pool, nil
}

func (f *fakeResourceRepo) ListByPool(_ context.Context, poolID int64) ([]*domain.Resource, error) {
	return f.resources[poolID], nil
}

func (f *fakeResourceRepo) ListPools(_ context.Context) ([]*domain.ResourcePool, error) {
	pools := make([]*domain.ResourcePool, 0, len(f.pools))
	for _, pool := range f.pools {
		pools = append(pools, pool)
	}
	return pools, nil
}

type fakeAccountClient struct {
	accounts map[int64]*accountservice.Account
}

func (f *fakeAccountClient) GetAccount(_ context.Context, accountID int64) (*accountservice.Account, error) {
	account, ok := f.accounts[accountID]
	if !ok {
		return nil, accountservice.ErrAccountNotFound
	}
	return account, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testAccounts() *fakeAccountClient {
	return &fakeAccountClient{accounts: map[int64]*accountservice.Account{
		1:   {ID: 1, Name: "Мария", Role: accountservice.RoleAdmin},
		100: {ID: 100, Name: "Иван", Role: accountservice.RoleMember},
	}}
}

func newTestService(repo *fakeResourceRepo) *Service {
	return NewService(repo, testAccounts(), &fakeTxManager{}, nopLogger{})
}

func TestCreatePool_AdminCreatesPool(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	resp, err := svc.CreatePool(context.Background(), &models.CreatePoolRequest{
		AdminID:  1,
		Name:     "Коворкинг на третьем этаже",
		Kind:     string(domain.PoolCoworking),
		Capacity: 12,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.PoolCoworking), resp.Kind)
	assert.Equal(t, 12, resp.Capacity)
	require.NotNil(t, repo.created)
	assert.Equal(t, "Коворкинг на третьем этаже", repo.created.Name)
}

func TestCreatePool_Validation(t *testing.T) {
	cases := []struct {
		name string
		req  *models.CreatePoolRequest
	}{
		{"пустое имя", &models.CreatePoolRequest{AdminID: 1, Name: "  ", Kind: "coworking", Capacity: 1}},
		{"неизвестный тип", &models.CreatePoolRequest{AdminID: 1, Name: "Зал", Kind: "garage", Capacity: 1}},
		{"нулевая вместимость", &models.CreatePoolRequest{AdminID: 1, Name: "Зал", Kind: "auditorium", Capacity: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			_, err := newTestService(repo).CreatePool(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, repo.created)
		})
	}
}

func TestCreatePool_NonAdminDenied(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.CreatePool(context.Background(), &models.CreatePoolRequest{
		AdminID:  100,
		Name:     "Лаборатория",
		Kind:     string(domain.PoolLaboratory),
		Capacity: 3,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.created)
}

func TestGetPool_ReturnsPoolWithResources(t *testing.T) {
	repo := newFakeRepo()
	repo.pools[1] = &domain.ResourcePool{ID: 1, Name: "Переговорные", Kind: domain.PoolMeeting, Capacity: 2}
	repo.resources[1] = []*domain.Resource{
		{ID: 10, PoolID: 1, Label: "Переговорная 1"},
		{ID: 11, PoolID: 1, Label: "Переговорная 2"},
	}
	svc := newTestService(repo)

	resp, err := svc.GetPool(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.Pool.ID)
	require.Len(t, resp.Resources, 2)
	assert.Equal(t, "Переговорная 1", resp.Resources[0].Label)
}

func TestGetPool_NotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.GetPool(context.Background(), 404)
	assert.ErrorIs(t, err, ErrPoolNotFound)
}

func TestListPools(t *testing.T) {
	repo := newFakeRepo()
	repo.pools[1] = &domain.ResourcePool{ID: 1, Name: "Коворкинг", Kind: domain.PoolCoworking, Capacity: 10}
	svc := newTestService(repo)

	resp, err := svc.ListPools(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Pools, 1)
	assert.Equal(t, "Коворкинг", resp.Pools[0].Name)
}
