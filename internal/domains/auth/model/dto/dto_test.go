package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bookingpay/infras/jwt"
	"bookingpay/internal/domains/auth/model/dto"
	"bookingpay/shared/constant"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	tests := []struct {
		name          string
		req           dto.RegisterRequest
		expectedLevel string
	}{
		{
			name:          "defaults to admin",
			req:           dto.RegisterRequest{Email: "ops@example.com", Password: "password123"},
			expectedLevel: constant.RoleAdmin,
		},
		{
			name:          "explicit super admin",
			req:           dto.RegisterRequest{Email: "root@example.com", Password: "password123", Level: constant.RoleSuperAdmin},
			expectedLevel: constant.RoleSuperAdmin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tt.req.ToUserModel("root@example.com", "hashed")

			assert.NotEmpty(t, user.ID)
			assert.Equal(t, tt.req.Email, user.Email)
			assert.Equal(t, "hashed", user.Password)
			assert.Equal(t, tt.expectedLevel, user.Level)
			assert.True(t, user.Active)
			assert.Equal(t, "root@example.com", user.CreatedBy)
			assert.Equal(t, user.CreatedAt, user.ModifiedAt)
		})
	}
}
