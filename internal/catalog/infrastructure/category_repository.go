package infrastructure

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"tienda/internal/apperr"
	"tienda/internal/catalog/domain"
	"tienda/internal/shared/infrastructure"
)

// CategoryRepository accès SQL aux catégories
type CategoryRepository struct {
	infrastructure.BaseRepository
}

// NewCategoryRepository crée un nouveau repository de catégories
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// NextID génère un nouvel identifiant de catégorie
func (r *CategoryRepository) NextID() uuid.UUID {
	return uuid.New()
}

// Insert persiste une nouvelle catégorie
func (r *CategoryRepository) Insert(category *domain.Category) error {
	_, err := r.Exec(
		`INSERT INTO categories (id, name, description, created_at, active) VALUES ($1, $2, $3, $4, $5)`,
		category.ID(), category.Name(), category.Description(), category.CreatedAt(), category.Active(),
	)
	if err != nil {
		return errors.Wrap(err, "insert category")
	}
	return nil
}

// FindByID retourne une catégorie active par identifiant
func (r *CategoryRepository) FindByID(id uuid.UUID) (*domain.Category, error) {
	var (
		name        string
		description string
		createdAt   time.Time
		active      bool
	)

	err := r.QueryRow(
		`SELECT name, description, created_at, active FROM categories WHERE id = $1 AND active = TRUE`,
		id,
	).Scan(&name, &description, &createdAt, &active)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("category %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "find category")
	}

	return domain.RehydrateCategory(id, name, description, createdAt, active), nil
}

// FindAll retourne toutes les catégories actives
func (r *CategoryRepository) FindAll() ([]*domain.Category, error) {
	rows, err := r.Query(`SELECT id, name, description, created_at, active FROM categories WHERE active = TRUE ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "query categories")
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var (
			id          uuid.UUID
			name        string
			description string
			createdAt   time.Time
			active      bool
		)
		if err := rows.Scan(&id, &name, &description, &createdAt, &active); err != nil {
			return nil, errors.Wrap(err, "scan category")
		}
		categories = append(categories, domain.RehydrateCategory(id, name, description, createdAt, active))
	}
	return categories, rows.Err()
}

// Update modifie le nom et/ou la description d'une catégorie
func (r *CategoryRepository) Update(id uuid.UUID, name, description *string) error {
	if name == nil && description == nil {
		return apperr.Validation("no fields to update")
	}

	result, err := r.Exec(
		`UPDATE categories SET name = COALESCE($2, name), description = COALESCE($3, description) WHERE id = $1 AND active = TRUE`,
		id, name, description,
	)
	if err != nil {
		return errors.Wrap(err, "update category")
	}
	return requireAffected(result, "category %s not found", id)
}

// SoftDelete désactive une catégorie
func (r *CategoryRepository) SoftDelete(id uuid.UUID) error {
	result, err := r.Exec(`UPDATE categories SET active = FALSE WHERE id = $1 AND active = TRUE`, id)
	if err != nil {
		return errors.Wrap(err, "soft delete category")
	}
	return requireAffected(result, "category %s not found", id)
}
