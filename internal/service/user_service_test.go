package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/lingua-center-api/internal/models"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
	"github.com/noah-isme/lingua-center-api/pkg/validation"
)

type mockUserRepo struct {
	users   map[int64]*models.User
	nextID  int64
	deleted []int64
	filter  models.UserFilter
}

func newMockUserRepo(users ...*models.User) *mockUserRepo {
	m := &mockUserRepo{users: map[int64]*models.User{}, nextID: 100}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) List(_ context.Context, filter models.UserFilter) ([]models.User, int, error) {
	m.filter = filter
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, u := range m.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	m.nextID++
	user.ID = m.nextID
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return sql.ErrNoRows
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func newTestUserService(repo *mockUserRepo) *UserService {
	svc := NewUserService(repo, validation.New(), zap.NewNop())
	svc.hashCost = bcrypt.MinCost
	return svc
}

func TestUserServiceList(t *testing.T) {
	repo := newMockUserRepo(&models.User{ID: 1, Email: "admin@example.com"})
	svc := newTestUserService(repo)

	page, err := svc.List(context.Background(), models.UserFilter{PageRequest: models.PageRequest{PageNumber: 0, PageSize: 500}})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
	assert.Equal(t, 10, repo.filter.PageSize)
	assert.Equal(t, 1, repo.filter.PageNumber)
}

func TestUserServiceCreateHashesPassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestUserService(repo)

	user, err := svc.Create(context.Background(), models.CreateUserRequest{
		Email:    " Staff@Example.com ",
		Password: "sup3rsecret",
		FullName: "Front Desk",
		Role:     models.RoleStaff,
	})
	require.NoError(t, err)
	assert.Equal(t, "staff@example.com", user.Email)
	assert.True(t, user.Active)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("sup3rsecret")))
}

func TestUserServiceCreateDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo(&models.User{ID: 1, Email: "staff@example.com"})
	svc := newTestUserService(repo)

	_, err := svc.Create(context.Background(), models.CreateUserRequest{
		Email:    "staff@example.com",
		Password: "sup3rsecret",
		FullName: "Someone",
		Role:     models.RoleStaff,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestUserServiceCreateRejectsUnknownRole(t *testing.T) {
	svc := newTestUserService(newMockUserRepo())

	_, err := svc.Create(context.Background(), models.CreateUserRequest{
		Email:    "x@example.com",
		Password: "sup3rsecret",
		FullName: "X",
		Role:     "SUPERADMIN",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUserServiceUpdateKeepsPasswordWhenEmpty(t *testing.T) {
	repo := newMockUserRepo(&models.User{ID: 5, Email: "i@example.com", PasswordHash: "keep", Role: models.RoleInstructor, Active: true})
	svc := newTestUserService(repo)

	user, err := svc.Update(context.Background(), 5, models.UpdateUserRequest{
		Email:    "i@example.com",
		FullName: "Instructor",
		Role:     models.RoleStaff,
		Active:   false,
	})
	require.NoError(t, err)
	assert.Equal(t, "keep", user.PasswordHash)
	assert.Equal(t, models.RoleStaff, repo.users[5].Role)
	assert.False(t, repo.users[5].Active)
}

func TestUserServiceUpdateMissing(t *testing.T) {
	svc := newTestUserService(newMockUserRepo())

	_, err := svc.Update(context.Background(), 9, models.UpdateUserRequest{Email: "a@example.com", FullName: "A", Role: models.RoleStaff})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestUserServiceDelete(t *testing.T) {
	repo := newMockUserRepo(&models.User{ID: 2})
	svc := newTestUserService(repo)

	require.NoError(t, svc.Delete(context.Background(), 2))
	assert.Equal(t, []int64{2}, repo.deleted)

	err := svc.Delete(context.Background(), 3)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
