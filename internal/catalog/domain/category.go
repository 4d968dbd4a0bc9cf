package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Category représente une catégorie d'articles
type Category struct {
	id          uuid.UUID
	name        string
	description string
	createdAt   time.Time
	active      bool
}

// NewCategory crée une nouvelle catégorie avec validation
func NewCategory(id uuid.UUID, name, description string, createdAt time.Time) (*Category, error) {
	if name == "" {
		return nil, errors.New("category name cannot be empty")
	}

	return &Category{
		id:          id,
		name:        name,
		description: description,
		createdAt:   createdAt,
		active:      true,
	}, nil
}

// RehydrateCategory reconstruit une catégorie depuis le stockage
func RehydrateCategory(id uuid.UUID, name, description string, createdAt time.Time, active bool) *Category {
	return &Category{
		id:          id,
		name:        name,
		description: description,
		createdAt:   createdAt,
		active:      active,
	}
}

// ID retourne l'identifiant de la catégorie
func (c *Category) ID() uuid.UUID {
	return c.id
}

// Name retourne le nom de la catégorie
func (c *Category) Name() string {
	return c.name
}

// Description retourne la description de la catégorie
func (c *Category) Description() string {
	return c.description
}

// CreatedAt retourne la date de création
func (c *Category) CreatedAt() time.Time {
	return c.createdAt
}

// Active indique si la catégorie est visible
func (c *Category) Active() bool {
	return c.active
}
