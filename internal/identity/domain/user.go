package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role rôle d'un utilisateur du back-office
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole valide un rôle brut
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin, RoleUser:
		return Role(raw), nil
	default:
		return "", errors.New("unknown role: " + raw)
	}
}

// User compte d'accès à l'API. Le mot de passe n'est jamais conservé en
// clair: seul le hash bcrypt transite par l'entité.
type User struct {
	id           uuid.UUID
	email        string
	passwordHash string
	role         Role
	createdAt    time.Time
	active       bool
}

// NewUser crée un utilisateur avec validation
func NewUser(id uuid.UUID, email, passwordHash string, role Role, createdAt time.Time) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("user requires a valid email")
	}
	if passwordHash == "" {
		return nil, errors.New("user requires a password hash")
	}
	if role != RoleAdmin && role != RoleUser {
		return nil, errors.New("user requires a valid role")
	}

	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
		active:       true,
	}, nil
}

// RehydrateUser reconstruit un utilisateur depuis le stockage
func RehydrateUser(id uuid.UUID, email, passwordHash string, role Role, createdAt time.Time, active bool) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
		active:       active,
	}
}

// ID retourne l'identifiant de l'utilisateur
func (u *User) ID() uuid.UUID {
	return u.id
}

// Email retourne l'email de connexion
func (u *User) Email() string {
	return u.email
}

// PasswordHash retourne le hash bcrypt du mot de passe
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// Role retourne le rôle de l'utilisateur
func (u *User) Role() Role {
	return u.role
}

// CreatedAt retourne la date de création
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// IsActive indique si le compte est actif
func (u *User) IsActive() bool {
	return u.active
}

// IsAdmin indique si l'utilisateur a le rôle admin
func (u *User) IsAdmin() bool {
	return u.role == RoleAdmin
}
