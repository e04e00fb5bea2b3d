package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, login, passwordHash string) (int, error) {
	args := m.Called(ctx, login, passwordHash)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) FindByLogin(ctx context.Context, login string) (User, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(User), args.Error(1)
}

func TestService_Register(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewPasswordValidator(), slog.Default())

	login := "nurse.asha"
	password := "Password123"

	// The exact hash is unpredictable; assert a non-empty one reaches the repo.
	mockRepo.On("Create", mock.Anything, login, mock.MatchedBy(func(hash string) bool {
		return hash != ""
	})).Return(123, nil)

	userID, err := service.Register(context.Background(), login, password)
	assert.NoError(t, err)
	assert.Equal(t, 123, userID)

	mockRepo.AssertExpectations(t)
}

func TestService_Register_InvalidPassword(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewPasswordValidator(), slog.Default())

	_, err := service.Register(context.Background(), "nurse.asha", "short")
	assert.ErrorIs(t, err, ErrInvalidInput)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Register_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewPasswordValidator(), slog.Default())

	mockRepo.On("Create", mock.Anything, "nurse.asha", mock.AnythingOfType("string")).
		Return(0, errors.New("database error"))

	_, err := service.Register(context.Background(), "nurse.asha", "Password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")

	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewPasswordValidator(), slog.Default())

	login := "nurse.asha"
	password := "Password123"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)

	mockRepo.On("FindByLogin", mock.Anything, login).
		Return(User{ID: 123, Login: login, Password: string(hash)}, nil)

	u, err := service.Authenticate(context.Background(), login, password)
	assert.NoError(t, err)
	assert.Equal(t, 123, u.ID)

	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_WrongPassword(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewPasswordValidator(), slog.Default())

	login := "nurse.asha"
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	mockRepo.On("FindByLogin", mock.Anything, login).
		Return(User{ID: 123, Login: login, Password: string(hash)}, nil)

	_, err = service.Authenticate(context.Background(), login, "WrongPassword1")
	assert.ErrorIs(t, err, ErrInvalidAuth)
}

func TestService_Authenticate_UnknownUser(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, NewPasswordValidator(), slog.Default())

	mockRepo.On("FindByLogin", mock.Anything, "ghost").
		Return(User{}, errors.New("no rows"))

	_, err := service.Authenticate(context.Background(), "ghost", "Password123")
	assert.ErrorIs(t, err, ErrNotFound)
}
