package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/affirmed-honey/dulin2/internal/auth"
	"github.com/affirmed-honey/dulin2/internal/domain"
	apperrors "github.com/affirmed-honey/dulin2/pkg/errors"
)

func newUserTestService(users *mockUserRepository, events *mockEventPublisher) *UserService {
	jwtManager := auth.NewJWTManager("test-secret", 24*time.Hour, 7*24*time.Hour)
	return NewUserService(users, jwtManager, events, newTestLogger())
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestSignup_NewAccount(t *testing.T) {
	users := new(mockUserRepository)
	events := new(mockEventPublisher)
	svc := newUserTestService(users, events)

	users.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, apperrors.NotFound("user", "ada@example.com"))
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 5
		}).
		Return(nil)
	events.On("PublishUserRegistered", mock.Anything, mock.Anything).Return(nil)

	user, token, err := svc.Signup(context.Background(), SignupInput{
		Email:    "ada@example.com",
		Name:     "Ada",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)
	assert.NotEmpty(t, token)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))
	users.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestSignup_ClaimsGuestAccount(t *testing.T) {
	users := new(mockUserRepository)
	events := new(mockEventPublisher)
	svc := newUserTestService(users, events)

	guest := &domain.User{ID: 9, Email: "guest@example.com"}
	claimed := &domain.User{ID: 9, Email: "guest@example.com", Name: "Grace", PasswordHash: "$2a$10$x"}

	users.On("GetByEmail", mock.Anything, "guest@example.com").Return(guest, nil)
	users.On("SetCredentials", mock.Anything, int64(9), "Grace", mock.AnythingOfType("string")).Return(nil)
	users.On("GetByID", mock.Anything, int64(9)).Return(claimed, nil)
	events.On("PublishUserRegistered", mock.Anything, claimed).Return(nil)

	user, token, err := svc.Signup(context.Background(), SignupInput{
		Email:    "guest@example.com",
		Name:     "Grace",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), user.ID)
	assert.NotEmpty(t, token)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignup_ExistingCredentialedAccountRejected(t *testing.T) {
	users := new(mockUserRepository)
	svc := newUserTestService(users, new(mockEventPublisher))

	users.On("GetByEmail", mock.Anything, "taken@example.com").
		Return(&domain.User{ID: 1, Email: "taken@example.com", PasswordHash: "$2a$10$x"}, nil)

	_, _, err := svc.Signup(context.Background(), SignupInput{
		Email:    "taken@example.com",
		Password: "hunter22",
	})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	users := new(mockUserRepository)
	svc := newUserTestService(users, new(mockEventPublisher))

	users.On("GetByEmail", mock.Anything, "ada@example.com").
		Return(&domain.User{ID: 5, Email: "ada@example.com", PasswordHash: hashOf(t, "hunter22")}, nil)

	user, token, err := svc.Login(context.Background(), LoginInput{
		Email:    "ada@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(mockUserRepository)
	svc := newUserTestService(users, new(mockEventPublisher))

	users.On("GetByEmail", mock.Anything, "ada@example.com").
		Return(&domain.User{ID: 5, Email: "ada@example.com", PasswordHash: hashOf(t, "hunter22")}, nil)

	_, _, err := svc.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogin_UnknownEmailSameErrorAsWrongPassword(t *testing.T) {
	users := new(mockUserRepository)
	svc := newUserTestService(users, new(mockEventPublisher))

	users.On("GetByEmail", mock.Anything, "nobody@example.com").
		Return(nil, apperrors.NotFound("user", "nobody@example.com"))

	_, _, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogin_GuestAccountCannotLogin(t *testing.T) {
	users := new(mockUserRepository)
	svc := newUserTestService(users, new(mockEventPublisher))

	users.On("GetByEmail", mock.Anything, "guest@example.com").
		Return(&domain.User{ID: 9, Email: "guest@example.com", PasswordHash: ""}, nil)

	_, _, err := svc.Login(context.Background(), LoginInput{Email: "guest@example.com", Password: ""})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestChangePassword_Success(t *testing.T) {
	users := new(mockUserRepository)
	svc := newUserTestService(users, new(mockEventPublisher))

	users.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.User{ID: 5, PasswordHash: hashOf(t, "old-pass")}, nil)
	users.On("UpdatePassword", mock.Anything, int64(5), mock.AnythingOfType("string")).Return(nil)

	err := svc.ChangePassword(context.Background(), 5, "old-pass", "new-pass")
	assert.NoError(t, err)
	users.AssertExpectations(t)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	users := new(mockUserRepository)
	svc := newUserTestService(users, new(mockEventPublisher))

	users.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.User{ID: 5, PasswordHash: hashOf(t, "old-pass")}, nil)

	err := svc.ChangePassword(context.Background(), 5, "not-it", "new-pass")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeEmail_Success(t *testing.T) {
	users := new(mockUserRepository)
	svc := newUserTestService(users, new(mockEventPublisher))

	users.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.User{ID: 5, Email: "old@example.com", PasswordHash: hashOf(t, "hunter22")}, nil).Once()
	users.On("UpdateEmail", mock.Anything, int64(5), "new@example.com").Return(nil)
	users.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.User{ID: 5, Email: "new@example.com", PasswordHash: "$2a$10$x"}, nil).Once()

	user, err := svc.ChangeEmail(context.Background(), 5, "new@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
}
