package repository

import (
	"time"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
}

// OTPRepository códigos de un solo uso para restablecer contraseña.
type OTPRepository interface {
	Create(otp *entity.OTP) error
	// Consume marca como usado un código vigente del usuario; false si no hay ninguno válido.
	Consume(userID, code string, now time.Time) (bool, error)
}
