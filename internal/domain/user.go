package domain

import (
	"strings"
	"time"
)

// Valores permitidos para User.AuthProvider.
const (
	AuthProviderLocal  = "local"
	AuthProviderGoogle = "google"
)

// User es el registro de identidad de la plataforma. PasswordHash nunca
// se serializa: siempre contiene un hash bcrypt, incluso para cuentas
// creadas via Google (se genera un secreto aleatorio y se hashea).
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	AuthProvider   string    `json:"auth_provider"`
	IsAdmin        bool      `json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasCustomPhoto indica si la foto actual fue subida por el usuario al
// storage de la plataforma, en cuyo caso un login de Google no debe
// pisarla. Las fotos provistas por Google viven en el CDN del proveedor
// y no contienen el marcador del storage propio.
func (u User) HasCustomPhoto(storageMarker string) bool {
	if u.ProfilePicture == "" || storageMarker == "" {
		return false
	}
	return strings.Contains(u.ProfilePicture, storageMarker)
}

// PasswordManaged indica si el password de la cuenta lo administra un
// proveedor externo y no puede cambiarse directamente.
func (u User) PasswordManaged() bool {
	return u.AuthProvider == AuthProviderGoogle
}
