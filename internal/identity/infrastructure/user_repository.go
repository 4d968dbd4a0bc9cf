package infrastructure

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"tienda/internal/apperr"
	"tienda/internal/identity/domain"
	"tienda/internal/shared/infrastructure"
)

const userColumns = "id, email, password_hash, role, created_at, active"

// UserRepository accès SQL aux comptes utilisateurs
type UserRepository struct {
	infrastructure.BaseRepository
}

// NewUserRepository crée un nouveau repository d'utilisateurs
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// NextID génère un nouvel identifiant d'utilisateur
func (r *UserRepository) NextID() uuid.UUID {
	return uuid.New()
}

// Insert persiste un utilisateur. L'index unique sur email produit une
// erreur Conflict en cas de doublon.
func (r *UserRepository) Insert(user *domain.User) error {
	_, err := r.Exec(
		`INSERT INTO users (id, email, password_hash, role, created_at, active) VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID(), user.Email(), user.PasswordHash(), string(user.Role()), user.CreatedAt(), user.IsActive(),
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return apperr.Conflict("email %s already registered", user.Email())
	}
	if err != nil {
		return errors.Wrap(err, "insert user")
	}
	return nil
}

// FindByID retourne un utilisateur actif par identifiant
func (r *UserRepository) FindByID(id uuid.UUID) (*domain.User, error) {
	user, err := scanUser(r.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND active = TRUE`, id,
	))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("user %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	return user, nil
}

// FindByEmail retourne un utilisateur actif par email
func (r *UserRepository) FindByEmail(email string) (*domain.User, error) {
	user, err := scanUser(r.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND active = TRUE`, email,
	))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("user %s not found", email)
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user by email")
	}
	return user, nil
}

// FindAll retourne tous les utilisateurs actifs
func (r *UserRepository) FindAll() ([]*domain.User, error) {
	rows, err := r.Query(`SELECT ` + userColumns + ` FROM users WHERE active = TRUE ORDER BY created_at`)
	if err != nil {
		return nil, errors.Wrap(err, "query users")
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan user")
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdatePassword remplace le hash du mot de passe
func (r *UserRepository) UpdatePassword(id uuid.UUID, passwordHash string) error {
	result, err := r.Exec(
		`UPDATE users SET password_hash = $2 WHERE id = $1 AND active = TRUE`,
		id, passwordHash,
	)
	if err != nil {
		return errors.Wrap(err, "update password")
	}
	return requireAffected(result, "user %s not found", id)
}

// UpdateRole remplace le rôle de l'utilisateur
func (r *UserRepository) UpdateRole(id uuid.UUID, role domain.Role) error {
	result, err := r.Exec(
		`UPDATE users SET role = $2 WHERE id = $1 AND active = TRUE`,
		id, string(role),
	)
	if err != nil {
		return errors.Wrap(err, "update role")
	}
	return requireAffected(result, "user %s not found", id)
}

// SoftDelete désactive un compte sans effacer la ligne
func (r *UserRepository) SoftDelete(id uuid.UUID) error {
	result, err := r.Exec(`UPDATE users SET active = FALSE WHERE id = $1 AND active = TRUE`, id)
	if err != nil {
		return errors.Wrap(err, "soft delete user")
	}
	return requireAffected(result, "user %s not found", id)
}

// scanner abstraction commune à *sql.Row et *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanUser hydrate un utilisateur depuis une ligne SQL
func scanUser(s scanner) (*domain.User, error) {
	var (
		id           uuid.UUID
		email        string
		passwordHash string
		role         string
		createdAt    time.Time
		active       bool
	)

	if err := s.Scan(&id, &email, &passwordHash, &role, &createdAt, &active); err != nil {
		return nil, err
	}

	return domain.RehydrateUser(id, email, passwordHash, domain.Role(role), createdAt, active), nil
}

// requireAffected convertit un résultat sans ligne affectée en NotFound
func requireAffected(result sql.Result, format string, args ...interface{}) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if affected == 0 {
		return apperr.NotFound(format, args...)
	}
	return nil
}
