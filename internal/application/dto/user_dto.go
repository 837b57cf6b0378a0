package dto

import "time"

// SignupRequest entrada para registro: nombre, email y password (se hashea en el use case).
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RequestOTPRequest solicita un código para restablecer la contraseña.
type RequestOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RequestOTPResponse en modo demo el código se devuelve en la respuesta (no hay envío por email/SMS).
type RequestOTPResponse struct {
	Message string `json:"message"`
	OTP     string `json:"otp"`
}

// ResetPasswordRequest restablece la contraseña con un OTP vigente.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}
