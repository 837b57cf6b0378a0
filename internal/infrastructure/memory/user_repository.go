package memory

import (
	"fmt"
	"time"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*UserRepo)(nil)
	_ repository.OTPRepository  = (*OTPRepo)(nil)
)

// UserRepo implementación del puerto UserRepository en memoria. Email único.
type UserRepo struct {
	u *unitOfWork
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	s := r.u.store
	for _, existing := range s.users {
		if existing.Email == user.Email || existing.ID == user.ID {
			return fmt.Errorf("insert user: %w", domain.ErrDuplicate)
		}
	}
	id := user.ID
	if err := r.u.write(func() {
		delete(s.users, id)
		s.userOrder = removeID(s.userOrder, id)
	}); err != nil {
		return err
	}
	cp := *user
	s.users[id] = &cp
	s.userOrder = append(s.userOrder, id)
	return nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.u.store.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// FindByEmail busca un usuario por email (ya normalizado); (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.u.store.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// Update reemplaza un usuario existente.
func (r *UserRepo) Update(user *entity.User) error {
	s := r.u.store
	prev, ok := s.users[user.ID]
	if !ok {
		return fmt.Errorf("update user: %w", domain.ErrNotFound)
	}
	if err := r.u.write(func() { s.users[prev.ID] = prev }); err != nil {
		return err
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

// OTPRepo códigos OTP en memoria.
type OTPRepo struct {
	u *unitOfWork
}

// Create guarda un nuevo código.
func (r *OTPRepo) Create(otp *entity.OTP) error {
	s := r.u.store
	n := len(s.otps)
	if err := r.u.write(func() { s.otps = s.otps[:n] }); err != nil {
		return err
	}
	cp := *otp
	s.otps = append(s.otps, &cp)
	return nil
}

// Consume marca como usado el primer código vigente que coincide.
func (r *OTPRepo) Consume(userID, code string, now time.Time) (bool, error) {
	for _, o := range r.u.store.otps {
		if o.UserID != userID || o.Code != code || o.Used || o.ExpiresAt.Before(now) {
			continue
		}
		target := o
		if err := r.u.write(func() { target.Used = false }); err != nil {
			return false, err
		}
		target.Used = true
		return true, nil
	}
	return false, nil
}
