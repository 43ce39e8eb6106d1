package auth

import (
	"context"
	"fmt"
	"testing"

	"servicemarket/internal/database"
	"servicemarket/internal/domain"
	"servicemarket/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Mock JWT service
type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(userID int64, role string, isStaff bool) (string, error) {
	args := m.Called(userID, role, isStaff)
	return args.String(0), args.Error(1)
}

func setupDB(t *testing.T, name string) *gorm.DB {
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestService(t *testing.T, name string) (*Service, *gorm.DB, *mockJWTService) {
	db := setupDB(t, name)
	jwtSvc := new(mockJWTService)
	svc := NewService(
		repository.NewUserRepository(db),
		repository.NewProfileRepository(db),
		jwtSvc,
	)
	return svc, db, jwtSvc
}

func TestService_Register_Success(t *testing.T) {
	svc, db, jwtSvc := newTestService(t, "auth_register_ok")
	jwtSvc.On("GenerateToken", mock.Anything, "customer", false).Return("fake-jwt-token", nil)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Username:         "exampleUsername",
		Email:            "example@mail.de",
		Password:         "examplePassword",
		RepeatedPassword: "examplePassword",
		Type:             "customer",
	})

	require.NoError(t, err)
	assert.Equal(t, "fake-jwt-token", resp.Token)
	assert.Equal(t, "exampleUsername", resp.Username)
	assert.NotZero(t, resp.UserID)

	// Registration creates the profile in the same transaction.
	var profile domain.Profile
	require.NoError(t, db.Where("user_id = ?", resp.UserID).First(&profile).Error)

	// The hash is stored, never the raw password.
	var user domain.User
	require.NoError(t, db.First(&user, resp.UserID).Error)
	assert.NotEqual(t, "examplePassword", user.PasswordHash)

	jwtSvc.AssertExpectations(t)
}

func TestService_Register_PasswordMismatch(t *testing.T) {
	svc, _, _ := newTestService(t, "auth_register_mismatch")

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username:         "user1",
		Email:            "user1@mail.de",
		Password:         "passwordA",
		RepeatedPassword: "passwordB",
		Type:             "customer",
	})

	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestService_Register_InvalidRole(t *testing.T) {
	svc, _, _ := newTestService(t, "auth_register_role")

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username:         "user1",
		Email:            "user1@mail.de",
		Password:         "password",
		RepeatedPassword: "password",
		Type:             "admin",
	})

	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestService_Register_UsernameTaken(t *testing.T) {
	svc, _, jwtSvc := newTestService(t, "auth_register_taken")
	jwtSvc.On("GenerateToken", mock.Anything, "business", false).Return("tok", nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username:         "kevin",
		Email:            "kevin@mail.de",
		Password:         "password",
		RepeatedPassword: "password",
		Type:             "business",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Username:         "kevin",
		Email:            "other@mail.de",
		Password:         "password",
		RepeatedPassword: "password",
		Type:             "business",
	})
	assert.ErrorIs(t, err, ErrUsernameAlreadyTaken)
}

func TestService_Register_EmailExists(t *testing.T) {
	svc, _, jwtSvc := newTestService(t, "auth_register_email")
	jwtSvc.On("GenerateToken", mock.Anything, "customer", false).Return("tok", nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username:         "first",
		Email:            "dup@mail.de",
		Password:         "password",
		RepeatedPassword: "password",
		Type:             "customer",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Username:         "second",
		Email:            "dup@mail.de",
		Password:         "password",
		RepeatedPassword: "password",
		Type:             "customer",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_Login_Success(t *testing.T) {
	svc, _, jwtSvc := newTestService(t, "auth_login_ok")
	jwtSvc.On("GenerateToken", mock.Anything, "customer", false).Return("login-token", nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username:         "andrey",
		Email:            "andrey@mail.de",
		Password:         "asdasd",
		RepeatedPassword: "asdasd",
		Type:             "customer",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Username: "andrey",
		Password: "asdasd",
	})

	require.NoError(t, err)
	assert.Equal(t, "login-token", resp.Token)
	assert.Equal(t, "andrey", resp.Username)
	assert.Equal(t, "andrey@mail.de", resp.Email)
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc, _, jwtSvc := newTestService(t, "auth_login_wrong")
	jwtSvc.On("GenerateToken", mock.Anything, "customer", false).Return("tok", nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username:         "andrey",
		Email:            "andrey@mail.de",
		Password:         "asdasd",
		RepeatedPassword: "asdasd",
		Type:             "customer",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{
		Username: "andrey",
		Password: "not-the-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t, "auth_login_unknown")

	_, err := svc.Login(context.Background(), LoginRequest{
		Username: "nobody",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
