package entity

import "time"

// User representa un usuario del sistema (instalación de una sola empresa).
type User struct {
	ID           string
	Name         string
	Email        string // siempre en minúsculas
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OTP código de un solo uso para restablecer la contraseña.
type OTP struct {
	UserID    string
	Code      string
	ExpiresAt time.Time
	Used      bool
}
