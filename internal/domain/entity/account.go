package entity

import "time"

// Account representa una cuenta de acceso al marketplace.
// Token es la sesión vigente (nil = sesión cerrada); como máximo una por cuenta.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt hash, nunca plano
	Email        *string
	Token        *string
	Active       bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
}

// HasSession informa si la cuenta tiene un token de sesión asignado.
func (a *Account) HasSession() bool {
	return a.Token != nil && *a.Token != ""
}
