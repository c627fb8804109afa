package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AmirSohelSardar/mern-blog-backend/internal/domain"
)

var (
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate y sus variantes distinguen que constraint unico fue
	// violado; los servicios deciden si reintentar o devolver conflicto.
	ErrDuplicate         = errors.New("duplicate record")
	ErrDuplicateEmail    = fmt.Errorf("%w: email", ErrDuplicate)
	ErrDuplicateUsername = fmt.Errorf("%w: username", ErrDuplicate)
)

// UserUpdate describe una actualizacion parcial; solo los campos no nulos
// se escriben. updated_at se refresca siempre.
type UserUpdate struct {
	Username       *string
	Email          *string
	PasswordHash   *string
	ProfilePicture *string
	AuthProvider   *string
}

// ListUsersParams controla paginacion y orden del listado administrativo.
type ListUsersParams struct {
	Offset    int
	Limit     int
	Ascending bool
}

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) (domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListUsersParams) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

const userColumns = `id, username, email, password, profile_picture, auth_provider, is_admin, created_at, updated_at`

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, username, email, password, profile_picture, auth_provider, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.ProfilePicture,
		user.AuthProvider,
		user.IsAdmin,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return translateError(err)
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *PgUserRepository) Update(ctx context.Context, id string, update UserUpdate) (domain.User, error) {
	sets := []string{"updated_at = $2"}
	args := []any{id, time.Now().UTC()}

	appendSet := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	appendSet("username", update.Username)
	appendSet("email", update.Email)
	appendSet("password", update.PasswordHash)
	appendSet("profile_picture", update.ProfilePicture)
	appendSet("auth_provider", update.AuthProvider)

	query := `UPDATE users SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 RETURNING ` + userColumns

	return r.scanOne(r.pool.QueryRow(ctx, query, args...))
}

func (r *PgUserRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM users WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgUserRepository) List(ctx context.Context, params ListUsersParams) ([]domain.User, error) {
	direction := "DESC"
	if params.Ascending {
		direction = "ASC"
	}
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ` + direction +
		` OFFSET $1 LIMIT $2`

	rows, err := r.pool.Query(ctx, query, params.Offset, params.Limit)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.Email,
			&u.PasswordHash,
			&u.ProfilePicture,
			&u.AuthProvider,
			&u.IsAdmin,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PgUserRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM users`
	var count int64
	err := r.pool.QueryRow(ctx, query).Scan(&count)
	return count, err
}

func (r *PgUserRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	const query = `SELECT COUNT(*) FROM users WHERE created_at >= $1`
	var count int64
	err := r.pool.QueryRow(ctx, query, since).Scan(&count)
	return count, err
}

func (r *PgUserRepository) scanOne(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.ProfilePicture,
		&u.AuthProvider,
		&u.IsAdmin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, translateError(err)
	}
	return u, nil
}

// translateError mapea errores de pgx a los sentinels del paquete. Las
// violaciones de unicidad (23505) se distinguen por constraint para que
// el reconciliador pueda reintentar usernames sin tocar conflictos de email.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "email"):
			return ErrDuplicateEmail
		case strings.Contains(pgErr.ConstraintName, "username"):
			return ErrDuplicateUsername
		default:
			return ErrDuplicate
		}
	}
	return err
}
