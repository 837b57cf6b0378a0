package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	nanoid "github.com/jaevor/go-nanoid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/pkg/jwt"
)

const (
	otpDigits = 6
	otpTTL    = 10 * time.Minute
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y recuperación por OTP.
type AuthUseCase struct {
	txRunner inventory.TxRunner
	jwtCfg   JWTConfig
	clock    inventory.Clock
	otpGen   func() string
}

// NewAuthUseCase construye el caso de uso de auth. clock nil = time.Now.
func NewAuthUseCase(txRunner inventory.TxRunner, jwtCfg JWTConfig, clock inventory.Clock) (*AuthUseCase, error) {
	gen, err := nanoid.CustomASCII("0123456789", otpDigits)
	if err != nil {
		return nil, fmt.Errorf("otp generator: %w", err)
	}
	if clock == nil {
		clock = time.Now
	}
	return &AuthUseCase{txRunner: txRunner, jwtCfg: jwtCfg, clock: clock, otpGen: gen}, nil
}

// Signup crea un usuario: email en minúsculas y único, password hasheado con bcrypt.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son requeridos", domain.ErrValidation)
	}
	if name == "" {
		name = email
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.clock().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		return repos.Users().Create(user)
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.findUser(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// RequestOTP genera un código de 6 dígitos válido por 10 minutos.
// No hay canal de envío: el código viaja en la respuesta.
func (uc *AuthUseCase) RequestOTP(ctx context.Context, in dto.RequestOTPRequest) (*dto.RequestOTPResponse, error) {
	code := uc.otpGen()
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		user, err := repos.Users().FindByEmail(normalizeEmail(in.Email))
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("%w: usuario", domain.ErrNotFound)
		}
		return repos.OTPs().Create(&entity.OTP{
			UserID:    user.ID,
			Code:      code,
			ExpiresAt: uc.clock().Add(otpTTL),
		})
	})
	if err != nil {
		return nil, err
	}
	return &dto.RequestOTPResponse{Message: "código generado", OTP: code}, nil
}

// ResetPassword consume un OTP vigente y reemplaza el hash del password.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	if in.NewPassword == "" {
		return fmt.Errorf("%w: new_password es requerido", domain.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := uc.clock()
	return uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		user, err := repos.Users().FindByEmail(normalizeEmail(in.Email))
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUnauthorized
		}
		ok, err := repos.OTPs().Consume(user.ID, strings.TrimSpace(in.OTP), now)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: código inválido o vencido", domain.ErrUnauthorized)
		}
		user.PasswordHash = string(hash)
		user.UpdatedAt = now.UTC()
		return repos.Users().Update(user)
	})
}

func (uc *AuthUseCase) findUser(ctx context.Context, email string) (*entity.User, error) {
	var user *entity.User
	err := uc.txRunner.View(ctx, func(repos repository.Repos) error {
		u, err := repos.Users().FindByEmail(normalizeEmail(email))
		user = u
		return err
	})
	return user, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
