package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Customer fiche client. Nom, téléphone et adresse sont des données
// personnelles: chiffrées au repos par la couche de persistance,
// toujours en clair dans le domaine.
type Customer struct {
	id        uuid.UUID
	email     string
	name      string
	phone     string
	address   string
	createdAt time.Time
	active    bool
}

// NewCustomer crée un client avec validation
func NewCustomer(id uuid.UUID, email, name, phone, address string, createdAt time.Time) (*Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("customer requires a valid email")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("customer requires a name")
	}

	return &Customer{
		id:        id,
		email:     email,
		name:      name,
		phone:     phone,
		address:   address,
		createdAt: createdAt,
		active:    true,
	}, nil
}

// RehydrateCustomer reconstruit un client depuis le stockage
func RehydrateCustomer(id uuid.UUID, email, name, phone, address string, createdAt time.Time, active bool) *Customer {
	return &Customer{
		id:        id,
		email:     email,
		name:      name,
		phone:     phone,
		address:   address,
		createdAt: createdAt,
		active:    active,
	}
}

// ID retourne l'identifiant du client
func (c *Customer) ID() uuid.UUID {
	return c.id
}

// Email retourne l'email du client
func (c *Customer) Email() string {
	return c.email
}

// Name retourne le nom du client
func (c *Customer) Name() string {
	return c.name
}

// Phone retourne le téléphone du client
func (c *Customer) Phone() string {
	return c.phone
}

// Address retourne l'adresse du client
func (c *Customer) Address() string {
	return c.address
}

// CreatedAt retourne la date de création
func (c *Customer) CreatedAt() time.Time {
	return c.createdAt
}

// IsActive indique si la fiche est active
func (c *Customer) IsActive() bool {
	return c.active
}

// CustomerUpdate champs modifiables d'une fiche client, nil = inchangé
type CustomerUpdate struct {
	Name    *string
	Phone   *string
	Address *string
}

// IsEmpty indique si la mise à jour ne modifie rien
func (u CustomerUpdate) IsEmpty() bool {
	return u.Name == nil && u.Phone == nil && u.Address == nil
}
