package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edr/internal/core/apperror"
	"edr/internal/domain/auth"
	"edr/internal/infrastructure/storage/memstore"
)

const (
	adminEmail    = "admin@edr-solution.fr"
	adminPassword = "changeme123"
)

func newTestService(t *testing.T) (*auth.Service, *memstore.UserStore) {
	t.Helper()
	users := memstore.NewUserStore()
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig("test-secret"))
	svc := auth.NewService(users, jwtService, auth.DefaultServiceConfig())
	require.NoError(t, svc.EnsureAdmin(context.Background(), adminEmail, adminPassword))
	return svc, users
}

func TestEnsureAdmin_SeedsOnce(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	// second call is a no-op, not a duplicate error
	require.NoError(t, svc.EnsureAdmin(ctx, adminEmail, adminPassword))

	admin, err := users.GetByEmail(ctx, adminEmail)
	require.NoError(t, err)
	assert.Equal(t, "Administrateur", admin.Name)
	assert.True(t, admin.IsAdmin)
	assert.NotEqual(t, adminPassword, admin.PasswordHash)
}

func TestEnsureAdmin_RejectsShortPassword(t *testing.T) {
	users := memstore.NewUserStore()
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig("test-secret"))
	svc := auth.NewService(users, jwtService, auth.DefaultServiceConfig())

	err := svc.EnsureAdmin(context.Background(), adminEmail, "short")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestLogin_ValidCredentials(t *testing.T) {
	svc, _ := newTestService(t)

	session, err := svc.Login(context.Background(), auth.Credentials{
		Email:    adminEmail,
		Password: adminPassword,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "Bearer", session.TokenType)
	assert.False(t, session.ExpiresAt.IsZero())
	require.NotNil(t, session.User)
	assert.Equal(t, adminEmail, session.User.Email)
	require.NotNil(t, session.User.LastLoginAt)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.Credentials{
		Email:    adminEmail,
		Password: "wrong-password",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	svc, _ := newTestService(t)

	// unknown accounts and wrong passwords answer identically
	_, err := svc.Login(context.Background(), auth.Credentials{
		Email:    "nobody@edr-solution.fr",
		Password: adminPassword,
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestLogin_LockoutAfterRepeatedFailures(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Login(ctx, auth.Credentials{Email: adminEmail, Password: "wrong"})
		require.Error(t, err)
	}

	// account is now locked even with the right password
	_, err := svc.Login(ctx, auth.Credentials{Email: adminEmail, Password: adminPassword})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestLogin_SuccessResetsFailureCounter(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = svc.Login(ctx, auth.Credentials{Email: adminEmail, Password: "wrong"})
	}
	_, err := svc.Login(ctx, auth.Credentials{Email: adminEmail, Password: adminPassword})
	require.NoError(t, err)

	admin, err := users.GetByEmail(ctx, adminEmail)
	require.NoError(t, err)
	assert.Zero(t, admin.FailedLoginAttempts)
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	admin, err := users.GetByEmail(ctx, adminEmail)
	require.NoError(t, err)
	admin.IsActive = false
	require.NoError(t, users.Update(ctx, admin))

	_, err = svc.Login(ctx, auth.Credentials{Email: adminEmail, Password: adminPassword})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}
