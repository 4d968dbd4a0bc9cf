package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	shareddomain "tienda/internal/shared/domain"
)

// Article représente un article du catalogue.
// Invariant: le stock n'est jamais négatif; il n'est décrémenté que par
// la création de commande (décrément atomique avec plancher à zéro).
type Article struct {
	id          uuid.UUID
	name        string
	description string
	price       shareddomain.Money
	stock       shareddomain.Quantity
	categoryID  uuid.UUID
	imageURL    string
	featured    bool
	createdAt   time.Time
	active      bool
}

// NewArticle crée un nouvel article avec validation
func NewArticle(
	id uuid.UUID,
	name string,
	description string,
	price shareddomain.Money,
	stock shareddomain.Quantity,
	categoryID uuid.UUID,
	imageURL string,
	featured bool,
	createdAt time.Time,
) (*Article, error) {
	if name == "" {
		return nil, errors.New("article name cannot be empty")
	}
	if price.IsZero() {
		return nil, errors.New("article price must be positive")
	}

	return &Article{
		id:          id,
		name:        name,
		description: description,
		price:       price,
		stock:       stock,
		categoryID:  categoryID,
		imageURL:    imageURL,
		featured:    featured,
		createdAt:   createdAt,
		active:      true,
	}, nil
}

// RehydrateArticle reconstruit un article depuis le stockage, sans validation
func RehydrateArticle(
	id uuid.UUID,
	name string,
	description string,
	price shareddomain.Money,
	stock shareddomain.Quantity,
	categoryID uuid.UUID,
	imageURL string,
	featured bool,
	createdAt time.Time,
	active bool,
) *Article {
	return &Article{
		id:          id,
		name:        name,
		description: description,
		price:       price,
		stock:       stock,
		categoryID:  categoryID,
		imageURL:    imageURL,
		featured:    featured,
		createdAt:   createdAt,
		active:      active,
	}
}

// ID retourne l'identifiant de l'article
func (a *Article) ID() uuid.UUID {
	return a.id
}

// Name retourne le nom de l'article
func (a *Article) Name() string {
	return a.name
}

// Description retourne la description de l'article
func (a *Article) Description() string {
	return a.description
}

// Price retourne le prix unitaire
func (a *Article) Price() shareddomain.Money {
	return a.price
}

// Stock retourne la quantité en stock
func (a *Article) Stock() shareddomain.Quantity {
	return a.stock
}

// CategoryID retourne la catégorie de l'article
func (a *Article) CategoryID() uuid.UUID {
	return a.categoryID
}

// ImageURL retourne l'URL de l'image
func (a *Article) ImageURL() string {
	return a.imageURL
}

// Featured indique si l'article est mis en avant
func (a *Article) Featured() bool {
	return a.featured
}

// CreatedAt retourne la date de création
func (a *Article) CreatedAt() time.Time {
	return a.createdAt
}

// Active indique si l'article est visible (borrado lógico sinon)
func (a *Article) Active() bool {
	return a.active
}

// IsInStock vérifie si l'article est en stock
func (a *Article) IsInStock() bool {
	return !a.stock.IsZero()
}
