// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyfix/electrox-backend/internal/models"
	"github.com/easyfix/electrox-backend/internal/utils"
)

func TestRegisterCreatesClientAccount(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	svc := NewAuthService(db, cfg)

	resp, err := svc.Register(&RegisterRequest{
		Username: "shopper",
		Email:    "shopper@example.com",
		Password: "Str0ng!Pass",
	})
	require.NoError(t, err)

	// Self-registration never yields a back-office account.
	assert.Equal(t, models.UserRoleClient, resp.User.Role)
	assert.Equal(t, models.UserStatusActive, resp.User.Status)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	claims, err := utils.ValidateJWT(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "shopper", claims.Username)
	assert.Equal(t, "client", claims.Role)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	svc := NewAuthService(db, cfg)

	_, err := svc.Register(&RegisterRequest{
		Username: "first",
		Email:    "taken@example.com",
		Password: "Str0ng!Pass",
	})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterRequest{
		Username: "second",
		Email:    "taken@example.com",
		Password: "Str0ng!Pass",
	})
	assert.Error(t, err)
}

func TestLoginRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	svc := NewAuthService(db, cfg)

	_, err := svc.Register(&RegisterRequest{
		Username: "shopper",
		Email:    "shopper@example.com",
		Password: "Str0ng!Pass",
	})
	require.NoError(t, err)

	resp, err := svc.Login(&LoginRequest{
		Email:    "shopper@example.com",
		Password: "Str0ng!Pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotNil(t, resp.User.LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	svc := NewAuthService(db, cfg)

	_, err := svc.Register(&RegisterRequest{
		Username: "shopper",
		Email:    "shopper@example.com",
		Password: "Str0ng!Pass",
	})
	require.NoError(t, err)

	_, err = svc.Login(&LoginRequest{
		Email:    "shopper@example.com",
		Password: "wrong-password",
	})
	assert.Error(t, err)
}

func TestLoginSuspendedAccount(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	svc := NewAuthService(db, cfg)

	resp, err := svc.Register(&RegisterRequest{
		Username: "troublemaker",
		Email:    "trouble@example.com",
		Password: "Str0ng!Pass",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(resp.User).Update("status", models.UserStatusSuspended).Error)

	_, err = svc.Login(&LoginRequest{
		Email:    "trouble@example.com",
		Password: "Str0ng!Pass",
	})
	assert.Error(t, err)
}

func TestRefreshTokenIssuesNewPair(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	svc := NewAuthService(db, cfg)

	reg, err := svc.Register(&RegisterRequest{
		Username: "shopper",
		Email:    "shopper@example.com",
		Password: "Str0ng!Pass",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(reg.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken("bogus-token")
	assert.Error(t, err)
}
