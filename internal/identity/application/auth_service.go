package application

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"tienda/internal/apperr"
	"tienda/internal/identity/domain"
	"tienda/internal/identity/infrastructure"
)

// Principal identité extraite d'un token vérifié
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   domain.Role
}

// authClaims claims JWT signés par le service
type authClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService authentification par mot de passe et tokens JWT HS256
type AuthService struct {
	users    *infrastructure.UserRepository
	secret   []byte
	tokenTTL time.Duration
	log      *logrus.Entry
}

// NewAuthService crée une nouvelle instance de AuthService
func NewAuthService(
	users *infrastructure.UserRepository,
	secret string,
	tokenTTL time.Duration,
	log *logrus.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		log:      log.WithField("component", "auth"),
	}
}

// Login vérifie les identifiants et émet un token. Identifiants
// invalides et compte inconnu produisent la même erreur pour ne pas
// révéler l'existence du compte.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", apperr.Validation("invalid credentials")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(password)); err != nil {
		s.log.WithField("email", email).Warn("failed login attempt")
		return "", apperr.Validation("invalid credentials")
	}

	now := time.Now().UTC()
	claims := authClaims{
		Email: user.Email(),
		Role:  string(user.Role()),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", apperr.Internal(err, "sign token")
	}

	s.log.WithField("email", email).Info("user logged in")
	return token, nil
}

// Verify valide un token et retourne l'identité qu'il porte
func (s *AuthService) Verify(tokenString string) (*Principal, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&authClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.secret, nil
		},
	)
	if err != nil || !token.Valid {
		return nil, apperr.Validation("invalid or expired token")
	}

	claims, ok := token.Claims.(*authClaims)
	if !ok {
		return nil, apperr.Validation("invalid token claims")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperr.Validation("invalid token subject")
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, apperr.Validation("invalid token role")
	}

	return &Principal{UserID: userID, Email: claims.Email, Role: role}, nil
}

// HashPassword produit un hash bcrypt du mot de passe
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", apperr.Validation("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Internal(err, "hash password")
	}
	return string(hash), nil
}
