package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AmirSohelSardar/mern-blog-backend/internal/domain"
	"github.com/AmirSohelSardar/mern-blog-backend/internal/repository"
)

// UserService coordina reglas de negocio para identidades: signup y
// signin locales, reconciliacion de logins de Google y edicion de perfil.
type UserService struct {
	logger        *zap.Logger
	users         repository.UserRepository
	loginLimiter  LoginRateLimiter
	storageMarker string
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUser      = errors.New("username or email already exists")
	ErrPasswordManaged    = errors.New("password managed by external provider")
	ErrRateLimited        = errors.New("rate limited")
)

// ValidationError transporta el mensaje de validacion que ve el usuario.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func newValidationError(msg string) error { return &ValidationError{msg: msg} }

const (
	defaultStorageMarker = "supabase.co/storage"
	loginAttemptWindow   = 10 * time.Minute
	maxLoginAttempts     = 10
	usernameAttempts     = 3
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

func NewUserService(logger *zap.Logger, users repository.UserRepository, loginLimiter LoginRateLimiter, storageMarker string) *UserService {
	if loginLimiter == nil {
		loginLimiter = NewLoginRateLimiter(loginAttemptWindow, maxLoginAttempts)
	}
	if storageMarker == "" {
		storageMarker = defaultStorageMarker
	}
	return &UserService{
		logger:        logger,
		users:         users,
		loginLimiter:  loginLimiter,
		storageMarker: storageMarker,
	}
}

// Signup registra una cuenta local. El password se guarda solo como hash.
func (s *UserService) Signup(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return newValidationError("All fields are required")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		AuthProvider: domain.AuthProviderLocal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrDuplicateUser
		}
		return err
	}
	return nil
}

// Authenticate valida credenciales locales y devuelve la identidad.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return domain.User{}, newValidationError("All fields are required")
	}
	if s.loginLimiter != nil && !s.loginLimiter.Allow(email) {
		return domain.User{}, ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	ok, err := CheckPassword(password, user.PasswordHash)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// GoogleLogin es la asercion ya verificada del proveedor externo.
type GoogleLogin struct {
	Email    string
	Name     string
	PhotoURL string
}

// ReconcileGoogle resuelve un login de Google contra las cuentas locales:
// actualiza la cuenta existente del mismo email o crea una nueva. Una foto
// subida por el usuario al storage propio nunca se pisa con la del CDN de
// Google; el tag de proveedor se actualiza siempre.
func (s *UserService) ReconcileGoogle(ctx context.Context, input GoogleLogin) (domain.User, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if email == "" || name == "" {
		return domain.User{}, newValidationError("Email and name are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return s.linkGoogleAccount(ctx, user, input.PhotoURL)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.User{}, err
	}
	return s.createGoogleUser(ctx, email, name, input.PhotoURL)
}

func (s *UserService) linkGoogleAccount(ctx context.Context, user domain.User, photoURL string) (domain.User, error) {
	provider := domain.AuthProviderGoogle
	update := repository.UserUpdate{AuthProvider: &provider}
	if photoURL != "" && !user.HasCustomPhoto(s.storageMarker) {
		update.ProfilePicture = &photoURL
	}
	updated, err := s.users.Update(ctx, user.ID, update)
	if err != nil {
		return domain.User{}, err
	}
	return updated, nil
}

func (s *UserService) createGoogleUser(ctx context.Context, email, name, photoURL string) (domain.User, error) {
	// La cuenta necesita un password no nulo aunque nadie lo use: se
	// genera un secreto aleatorio y se guarda solo su hash.
	secret, err := randomSecret()
	if err != nil {
		return domain.User{}, err
	}
	hash, err := HashPassword(secret)
	if err != nil {
		return domain.User{}, err
	}

	for attempt := 0; attempt < usernameAttempts; attempt++ {
		username, err := derivedUsername(name)
		if err != nil {
			return domain.User{}, err
		}
		now := time.Now().UTC()
		user := domain.User{
			ID:             uuid.NewString(),
			Username:       username,
			Email:          email,
			PasswordHash:   hash,
			ProfilePicture: photoURL,
			AuthProvider:   domain.AuthProviderGoogle,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		err = s.users.Create(ctx, user)
		switch {
		case err == nil:
			return user, nil
		case errors.Is(err, repository.ErrDuplicateUsername):
			// Sufijo en uso: se reintenta con uno nuevo.
			continue
		case errors.Is(err, repository.ErrDuplicateEmail):
			// Otro request del mismo usuario gano la carrera del insert;
			// se resuelve releyendo y tomando la rama de cuenta existente.
			existing, gerr := s.users.GetByEmail(ctx, email)
			if gerr != nil {
				return domain.User{}, gerr
			}
			return s.linkGoogleAccount(ctx, existing, photoURL)
		default:
			return domain.User{}, err
		}
	}
	if s.logger != nil {
		s.logger.Warn("username generation exhausted", zap.String("email", email))
	}
	return domain.User{}, ErrDuplicateUser
}

// UpdateProfileInput es una edicion parcial; los campos nil no se tocan.
type UpdateProfileInput struct {
	Username       *string
	Email          *string
	Password       *string
	ProfilePicture *string
}

// UpdateProfile aplica una edicion de perfil validada. Las cuentas cuyo
// password administra Google rechazan cambios de password.
func (s *UserService) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (domain.User, error) {
	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	var update repository.UserUpdate

	if input.Password != nil {
		if current.PasswordManaged() {
			return domain.User{}, ErrPasswordManaged
		}
		if len(*input.Password) < 6 {
			return domain.User{}, newValidationError("Password must be at least 6 characters")
		}
		hash, err := HashPassword(*input.Password)
		if err != nil {
			return domain.User{}, err
		}
		update.PasswordHash = &hash
	}

	if input.Username != nil {
		username := *input.Username
		if err := validateUsername(username); err != nil {
			return domain.User{}, err
		}
		update.Username = &username
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email == "" {
			return domain.User{}, newValidationError("Email cannot be empty")
		}
		update.Email = &email
	}

	if input.ProfilePicture != nil {
		update.ProfilePicture = input.ProfilePicture
	}

	updated, err := s.users.Update(ctx, id, update)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return domain.User{}, ErrDuplicateUser
		case errors.Is(err, repository.ErrNotFound):
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return updated, nil
}

// Delete elimina la cuenta.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// Get devuelve una identidad por id.
func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// ListUsersInput controla el listado administrativo.
type ListUsersInput struct {
	StartIndex int
	Limit      int
	Ascending  bool
}

// ListUsersResult agrega el listado con los contadores del dashboard.
type ListUsersResult struct {
	Users          []domain.User
	TotalUsers     int64
	LastMonthUsers int64
}

// ListUsers devuelve una pagina de usuarios mas contadores totales y del
// ultimo mes.
func (s *UserService) ListUsers(ctx context.Context, input ListUsersInput) (ListUsersResult, error) {
	if input.StartIndex < 0 {
		input.StartIndex = 0
	}
	if input.Limit <= 0 {
		input.Limit = 9
	}

	users, err := s.users.List(ctx, repository.ListUsersParams{
		Offset:    input.StartIndex,
		Limit:     input.Limit,
		Ascending: input.Ascending,
	})
	if err != nil {
		return ListUsersResult{}, err
	}

	total, err := s.users.Count(ctx)
	if err != nil {
		return ListUsersResult{}, err
	}

	oneMonthAgo := time.Now().UTC().AddDate(0, -1, 0)
	lastMonth, err := s.users.CountCreatedSince(ctx, oneMonthAgo)
	if err != nil {
		return ListUsersResult{}, err
	}

	return ListUsersResult{
		Users:          users,
		TotalUsers:     total,
		LastMonthUsers: lastMonth,
	}, nil
}

func validateUsername(username string) error {
	if len(username) < 7 || len(username) > 20 {
		return newValidationError("Username must be between 7 and 20 characters")
	}
	if strings.Contains(username, " ") {
		return newValidationError("Username cannot contain spaces")
	}
	if username != strings.ToLower(username) {
		return newValidationError("Username must be lowercase")
	}
	if !usernamePattern.MatchString(username) {
		return newValidationError("Username can only contain letters and numbers")
	}
	return nil
}

// derivedUsername construye un candidato a partir del display name mas un
// sufijo numerico aleatorio para reducir colisiones.
func derivedUsername(name string) (string, error) {
	base := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
	if base == "" {
		base = "user"
	}
	suffix, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", base, suffix.Int64()), nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
