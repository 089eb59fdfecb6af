package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleGestor  = "gestor"
	RoleCliente = "cliente"
)

// User representa un usuario del sistema: cliente del estudio o personal (gestor/admin).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Phone        string
	Role         string // admin, gestor, cliente
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsStaff indica si el usuario pertenece al estudio (puede mutar trámites).
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleGestor
}
