package application

import (
	"time"

	"tienda/internal/apperr"
	"tienda/internal/catalog/domain"
	"tienda/internal/catalog/infrastructure"
	shareddomain "tienda/internal/shared/domain"
)

// CategoryService opérations sur les catégories
type CategoryService struct {
	categories *infrastructure.CategoryRepository
}

// NewCategoryService crée une nouvelle instance de CategoryService
func NewCategoryService(categories *infrastructure.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create crée une catégorie
func (s *CategoryService) Create(name, description string) (*domain.Category, error) {
	category, err := domain.NewCategory(s.categories.NextID(), name, description, time.Now().UTC())
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}
	if err := s.categories.Insert(category); err != nil {
		return nil, err
	}
	return category, nil
}

// List retourne toutes les catégories actives
func (s *CategoryService) List() ([]*domain.Category, error) {
	return s.categories.FindAll()
}

// Get retourne une catégorie par identifiant
func (s *CategoryService) Get(rawID string) (*domain.Category, error) {
	id, err := shareddomain.ParseID(rawID, "category")
	if err != nil {
		return nil, err
	}
	return s.categories.FindByID(id)
}

// Update modifie le nom et/ou la description
func (s *CategoryService) Update(rawID string, name, description *string) error {
	id, err := shareddomain.ParseID(rawID, "category")
	if err != nil {
		return err
	}
	return s.categories.Update(id, name, description)
}

// SoftDelete désactive une catégorie
func (s *CategoryService) SoftDelete(rawID string) error {
	id, err := shareddomain.ParseID(rawID, "category")
	if err != nil {
		return err
	}
	return s.categories.SoftDelete(id)
}
