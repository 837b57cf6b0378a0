package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/auth"
	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockmaster-api/pkg/jwt"
)

const testSecret = "test-secret"

func newAuth(t *testing.T, clock func() time.Time) *auth.AuthUseCase {
	t.Helper()
	uc, err := auth.NewAuthUseCase(
		memory.NewTxRunner(memory.NewStore()),
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "stockmaster"},
		clock,
	)
	require.NoError(t, err)
	return uc
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(t, nil)

	user, err := uc.Signup(ctx, dto.SignupRequest{Name: "Ana", Email: " Ana@Example.com ", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)

	_, err = uc.Signup(ctx, dto.SignupRequest{Email: "ANA@example.com", Password: "otro123"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@EXAMPLE.com", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)

	userID, email, err := jwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, "ana@example.com", email)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "incorrecto"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSignup_NameDefaultsToEmail(t *testing.T) {
	user, err := newAuth(t, nil).Signup(context.Background(), dto.SignupRequest{Email: "bob@example.com", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", user.Name)

	_, err = newAuth(t, nil).Signup(context.Background(), dto.SignupRequest{Email: "bob@example.com"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPasswordResetWithOTP(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	uc := newAuth(t, func() time.Time { return now })

	_, err := uc.Signup(ctx, dto.SignupRequest{Email: "ana@example.com", Password: "secreto1"})
	require.NoError(t, err)

	_, err = uc.RequestOTP(ctx, dto.RequestOTPRequest{Email: "nadie@example.com"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	otp, err := uc.RequestOTP(ctx, dto.RequestOTPRequest{Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9]{6}$`, otp.OTP)

	wrong := "000000"
	if otp.OTP == wrong {
		wrong = "111111"
	}
	err = uc.ResetPassword(ctx, dto.ResetPasswordRequest{Email: "ana@example.com", OTP: wrong, NewPassword: "nueva123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, uc.ResetPassword(ctx, dto.ResetPasswordRequest{Email: "ana@example.com", OTP: otp.OTP, NewPassword: "nueva123"}))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "nueva123"})
	require.NoError(t, err)

	// el código es de un solo uso
	err = uc.ResetPassword(ctx, dto.ResetPasswordRequest{Email: "ana@example.com", OTP: otp.OTP, NewPassword: "otra1234"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPasswordReset_ExpiredOTP(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	uc := newAuth(t, func() time.Time { return now })

	_, err := uc.Signup(ctx, dto.SignupRequest{Email: "ana@example.com", Password: "secreto1"})
	require.NoError(t, err)
	otp, err := uc.RequestOTP(ctx, dto.RequestOTPRequest{Email: "ana@example.com"})
	require.NoError(t, err)

	now = now.Add(11 * time.Minute)
	err = uc.ResetPassword(ctx, dto.ResetPasswordRequest{Email: "ana@example.com", OTP: otp.OTP, NewPassword: "nueva123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
