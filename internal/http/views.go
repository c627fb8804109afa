package http

import (
	"time"

	"github.com/AmirSohelSardar/mern-blog-backend/internal/domain"
)

// UserView es la representacion expuesta de una identidad. Mantiene los
// campos snake_case del esquema actual y los alias camelCase (`_id`,
// `isAdmin`, ...) que el frontend heredo del esquema anterior. Nunca
// incluye el hash de password.
type UserView struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profile_picture"`
	AuthProvider   string    `json:"auth_provider"`
	IsAdmin        bool      `json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	LegacyID             string    `json:"_id"`
	LegacyIsAdmin        bool      `json:"isAdmin"`
	LegacyProfilePicture string    `json:"profilePicture"`
	LegacyAuthProvider   string    `json:"authProvider"`
	LegacyCreatedAt      time.Time `json:"createdAt"`
	LegacyUpdatedAt      time.Time `json:"updatedAt"`
}

// newUserView es el unico punto donde se arma la vista legacy-compatible.
func newUserView(u domain.User) UserView {
	return UserView{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		AuthProvider:   u.AuthProvider,
		IsAdmin:        u.IsAdmin,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,

		LegacyID:             u.ID,
		LegacyIsAdmin:        u.IsAdmin,
		LegacyProfilePicture: u.ProfilePicture,
		LegacyAuthProvider:   u.AuthProvider,
		LegacyCreatedAt:      u.CreatedAt,
		LegacyUpdatedAt:      u.UpdatedAt,
	}
}

func newUserViews(users []domain.User) []UserView {
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, newUserView(u))
	}
	return views
}
