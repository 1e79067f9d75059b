package usecase_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/customers-api/internal/application/dto"
	"github.com/jhoicas/customers-api/internal/application/usecase"
	"github.com/jhoicas/customers-api/internal/domain"
	"github.com/jhoicas/customers-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorio en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memoryCustomerRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]entity.Customer
	calls  int
	err    error
}

func newMemoryCustomerRepo() *memoryCustomerRepo {
	return &memoryCustomerRepo{rows: make(map[int64]entity.Customer)}
}

func (m *memoryCustomerRepo) List(_ context.Context) ([]*entity.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*entity.Customer, 0, len(m.rows))
	for _, c := range m.rows {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryCustomerRepo) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memoryCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.nextID++
	customer.ID = m.nextID
	m.rows[customer.ID] = *customer
	return nil
}

func (m *memoryCustomerRepo) Update(_ context.Context, id int64, patch entity.CustomerPatch) (*entity.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c = patch.Apply(c)
	m.rows[id] = c
	return &c, nil
}

func (m *memoryCustomerRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	if _, ok := m.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func strPtr(s string) *string { return &s }

func anaSilva() dto.CreateCustomerRequest {
	return dto.CreateCustomerRequest{
		Name:       "Ana",
		Surname:    "Silva",
		Phone:      "1111",
		Address:    "Rua A",
		PostalCode: "00000",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AssignsUniqueIDs(t *testing.T) {
	repo := newMemoryCustomerRepo()
	uc := usecase.NewCustomerUseCase(repo)
	ctx := context.Background()

	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		out, err := uc.Create(ctx, anaSilva())
		require.NoError(t, err)
		assert.False(t, seen[out.ID], "el ID %d no debe repetirse", out.ID)
		seen[out.ID] = true
	}
	assert.Len(t, seen, 5)
}

func TestCreate_RoundTrip(t *testing.T) {
	uc := usecase.NewCustomerUseCase(newMemoryCustomerRepo())
	ctx := context.Background()

	created, err := uc.Create(ctx, anaSilva())
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, &dto.CustomerResponse{
		ID: created.ID, Name: "Ana", Surname: "Silva", Phone: "1111", Address: "Rua A", PostalCode: "00000",
	}, got)
}

func TestCreate_TrimsAndNormalizes(t *testing.T) {
	uc := usecase.NewCustomerUseCase(newMemoryCustomerRepo())

	in := anaSilva()
	in.Name = "  Joa\u0303o  " // tilde combinante (NFD)
	out, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Jo\u00e3o", out.Name)
}

func TestCreate_MissingFieldsDoNotReachStore(t *testing.T) {
	repo := newMemoryCustomerRepo()
	uc := usecase.NewCustomerUseCase(repo)

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Ana", Phone: "   "})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *dto.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{
		"surname":     "required",
		"phone":       "required",
		"address":     "required",
		"postal_code": "required",
	}, verr.Fields)
	assert.Zero(t, repo.calls, "no se debe consultar la base con un cuerpo inválido")
}

func TestCreate_TooLong(t *testing.T) {
	uc := usecase.NewCustomerUseCase(newMemoryCustomerRepo())

	in := anaSilva()
	in.PostalCode = strings.Repeat("9", entity.MaxPostalCodeLen+1)
	_, err := uc.Create(context.Background(), in)

	var verr *dto.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be at most 10 characters", verr.Fields["postal_code"])
}

func TestCreate_ControlCharsDoNotReachStore(t *testing.T) {
	repo := newMemoryCustomerRepo()
	uc := usecase.NewCustomerUseCase(repo)

	in := anaSilva()
	in.Name = "Ana\x00"
	in.Address = "Rua\nA"
	in.Phone = "11\xff11"
	_, err := uc.Create(context.Background(), in)

	var verr *dto.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"name":    "invalid characters",
		"address": "invalid characters",
		"phone":   "invalid characters",
	}, verr.Fields)
	assert.Zero(t, repo.calls)
}

func TestCreate_StoreErrorPropagates(t *testing.T) {
	repo := newMemoryCustomerRepo()
	repo.err = errors.New("connection refused")
	uc := usecase.NewCustomerUseCase(repo)

	_, err := uc.Create(context.Background(), anaSilva())
	assert.EqualError(t, err, "connection refused")
}

// ──────────────────────────────────────────────────────────────────────────────
// List
// ──────────────────────────────────────────────────────────────────────────────

func TestList_EmptyIsNotNil(t *testing.T) {
	uc := usecase.NewCustomerUseCase(newMemoryCustomerRepo())

	out, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestList_ReturnsAllInIDOrder(t *testing.T) {
	uc := usecase.NewCustomerUseCase(newMemoryCustomerRepo())
	ctx := context.Background()

	names := []string{"Ana", "Bruno", "Carla"}
	for _, n := range names {
		in := anaSilva()
		in.Name = n
		_, err := uc.Create(ctx, in)
		require.NoError(t, err)
	}

	out, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, out, len(names))
	for i, c := range out {
		assert.Equal(t, int64(i+1), c.ID)
		assert.Equal(t, names[i], c.Name)
		assert.Equal(t, "Silva", c.Surname)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_PartialKeepsOtherFields(t *testing.T) {
	uc := usecase.NewCustomerUseCase(newMemoryCustomerRepo())
	ctx := context.Background()

	created, err := uc.Create(ctx, anaSilva())
	require.NoError(t, err)

	updated, err := uc.Update(ctx, created.ID, dto.UpdateCustomerRequest{Phone: strPtr("2222")})
	require.NoError(t, err)

	expected := *created
	expected.Phone = "2222"
	assert.Equal(t, &expected, updated)
}

func TestUpdate_EmptyPatchReturnsCurrent(t *testing.T) {
	uc := usecase.NewCustomerUseCase(newMemoryCustomerRepo())
	ctx := context.Background()

	created, err := uc.Create(ctx, anaSilva())
	require.NoError(t, err)

	updated, err := uc.Update(ctx, created.ID, dto.UpdateCustomerRequest{})
	require.NoError(t, err)
	assert.Equal(t, created, updated)
}

func TestUpdate_NotFoundLeavesStoreUnchanged(t *testing.T) {
	repo := newMemoryCustomerRepo()
	uc := usecase.NewCustomerUseCase(repo)
	ctx := context.Background()

	_, err := uc.Create(ctx, anaSilva())
	require.NoError(t, err)

	_, err = uc.Update(ctx, 99, dto.UpdateCustomerRequest{Name: strPtr("Zé")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana", list[0].Name)
}

func TestUpdate_BlankFieldRejected(t *testing.T) {
	uc := usecase.NewCustomerUseCase(newMemoryCustomerRepo())
	ctx := context.Background()

	created, err := uc.Create(ctx, anaSilva())
	require.NoError(t, err)

	_, err = uc.Update(ctx, created.ID, dto.UpdateCustomerRequest{Address: strPtr(" ")})
	var verr *dto.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "required", verr.Fields["address"])

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rua A", got.Address)
}

func TestUpdate_ControlCharsRejected(t *testing.T) {
	repo := newMemoryCustomerRepo()
	uc := usecase.NewCustomerUseCase(repo)
	ctx := context.Background()

	created, err := uc.Create(ctx, anaSilva())
	require.NoError(t, err)
	calls := repo.calls

	_, err = uc.Update(ctx, created.ID, dto.UpdateCustomerRequest{Surname: strPtr("Sil\x00va")})
	var verr *dto.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "invalid characters", verr.Fields["surname"])
	assert.Equal(t, calls, repo.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete / GetByID
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_ThenNotFound(t *testing.T) {
	uc := usecase.NewCustomerUseCase(newMemoryCustomerRepo())
	ctx := context.Background()

	created, err := uc.Create(ctx, anaSilva())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)
	_, err = uc.Update(ctx, created.ID, dto.UpdateCustomerRequest{Phone: strPtr("3333")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNonPositiveIDIsNotFound(t *testing.T) {
	repo := newMemoryCustomerRepo()
	uc := usecase.NewCustomerUseCase(repo)
	ctx := context.Background()

	_, err := uc.GetByID(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, -1), domain.ErrNotFound)
	assert.Zero(t, repo.calls)
}
