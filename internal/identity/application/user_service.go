package application

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"tienda/internal/apperr"
	"tienda/internal/identity/domain"
	"tienda/internal/identity/infrastructure"
	shareddomain "tienda/internal/shared/domain"
)

// UserService gestion des comptes utilisateurs
type UserService struct {
	users *infrastructure.UserRepository
	log   *logrus.Entry
}

// NewUserService crée une nouvelle instance de UserService
func NewUserService(users *infrastructure.UserRepository, log *logrus.Logger) *UserService {
	return &UserService{
		users: users,
		log:   log.WithField("component", "users"),
	}
}

// RegisterUserInput données de création d'un compte
type RegisterUserInput struct {
	Email    string
	Password string
	Role     string
}

// Register crée un compte utilisateur. Le rôle vide vaut user.
func (s *UserService) Register(in RegisterUserInput) (*domain.User, error) {
	role := domain.RoleUser
	if strings.TrimSpace(in.Role) != "" {
		parsed, err := domain.ParseRole(in.Role)
		if err != nil {
			return nil, apperr.Validation("%s", err)
		}
		role = parsed
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := domain.NewUser(s.users.NextID(), in.Email, hash, role, time.Now().UTC())
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}

	if err := s.users.Insert(user); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"email": user.Email(), "role": user.Role()}).Info("user registered")
	return user, nil
}

// Get retourne un compte par identifiant
func (s *UserService) Get(rawID string) (*domain.User, error) {
	id, err := shareddomain.ParseID(rawID, "user")
	if err != nil {
		return nil, err
	}
	return s.users.FindByID(id)
}

// List retourne tous les comptes actifs
func (s *UserService) List() ([]*domain.User, error) {
	return s.users.FindAll()
}

// ChangePassword remplace le mot de passe d'un compte
func (s *UserService) ChangePassword(rawID, password string) error {
	id, err := shareddomain.ParseID(rawID, "user")
	if err != nil {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(id, hash); err != nil {
		return err
	}

	s.log.WithField("user_id", id).Info("password changed")
	return nil
}

// ChangeRole remplace le rôle d'un compte
func (s *UserService) ChangeRole(rawID, rawRole string) error {
	id, err := shareddomain.ParseID(rawID, "user")
	if err != nil {
		return err
	}

	role, err := domain.ParseRole(rawRole)
	if err != nil {
		return apperr.Validation("%s", err)
	}

	return s.users.UpdateRole(id, role)
}

// SoftDelete désactive un compte
func (s *UserService) SoftDelete(rawID string) error {
	id, err := shareddomain.ParseID(rawID, "user")
	if err != nil {
		return err
	}

	if err := s.users.SoftDelete(id); err != nil {
		return err
	}

	s.log.WithField("user_id", id).Info("user deactivated")
	return nil
}
