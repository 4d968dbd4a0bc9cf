package application

import (
	"time"

	"github.com/sirupsen/logrus"

	"tienda/internal/apperr"
	"tienda/internal/catalog/domain"
	"tienda/internal/catalog/infrastructure"
	shareddomain "tienda/internal/shared/domain"
)

// ArticleService opérations sur le catalogue d'articles
type ArticleService struct {
	articles *infrastructure.ArticleRepository
	log      *logrus.Entry
}

// NewArticleService crée une nouvelle instance de ArticleService
func NewArticleService(articles *infrastructure.ArticleRepository, log *logrus.Logger) *ArticleService {
	return &ArticleService{
		articles: articles,
		log:      log.WithField("component", "catalog"),
	}
}

// CreateArticleInput données de création d'un article
type CreateArticleInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	CategoryID  string
	ImageURL    string
	Featured    bool
}

// Create crée un article et le persiste
func (s *ArticleService) Create(in CreateArticleInput) (*domain.Article, error) {
	categoryID, err := shareddomain.ParseID(in.CategoryID, "category")
	if err != nil {
		return nil, err
	}

	price, err := shareddomain.NewMoney(in.Price, "EUR")
	if err != nil || price.IsZero() {
		return nil, apperr.Validation("article price must be positive")
	}
	stock, err := shareddomain.NewQuantity(in.Stock)
	if err != nil {
		return nil, apperr.Validation("article stock cannot be negative")
	}

	article, err := domain.NewArticle(
		s.articles.NextID(), in.Name, in.Description,
		price, stock, categoryID, in.ImageURL, in.Featured,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}

	if err := s.articles.Insert(article); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"article_id": article.ID(),
		"stock":      article.Stock().Value(),
	}).Info("article created")

	return article, nil
}

// List retourne tous les articles actifs
func (s *ArticleService) List() ([]*domain.Article, error) {
	return s.articles.FindAll()
}

// Get retourne un article actif par identifiant
func (s *ArticleService) Get(rawID string) (*domain.Article, error) {
	id, err := shareddomain.ParseID(rawID, "article")
	if err != nil {
		return nil, err
	}
	return s.articles.FindByID(id)
}

// UpdateArticleInput mise à jour partielle d'un article
type UpdateArticleInput struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	CategoryID  *string
	ImageURL    *string
	Featured    *bool
}

// Update applique une mise à jour partielle
func (s *ArticleService) Update(rawID string, in UpdateArticleInput) error {
	id, err := shareddomain.ParseID(rawID, "article")
	if err != nil {
		return err
	}

	upd := domain.ArticleUpdate{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		Featured:    in.Featured,
	}

	if in.Price != nil && *in.Price <= 0 {
		return apperr.Validation("article price must be positive")
	}
	if in.Stock != nil && *in.Stock < 0 {
		return apperr.Validation("article stock cannot be negative")
	}
	if in.CategoryID != nil {
		categoryID, err := shareddomain.ParseID(*in.CategoryID, "category")
		if err != nil {
			return err
		}
		upd.CategoryID = &categoryID
	}

	return s.articles.Update(id, upd)
}

// SoftDelete désactive un article
func (s *ArticleService) SoftDelete(rawID string) error {
	id, err := shareddomain.ParseID(rawID, "article")
	if err != nil {
		return err
	}
	return s.articles.SoftDelete(id)
}

// SearchByCategory retourne les articles actifs d'une catégorie
func (s *ArticleService) SearchByCategory(rawCategoryID string) ([]*domain.Article, error) {
	categoryID, err := shareddomain.ParseID(rawCategoryID, "category")
	if err != nil {
		return nil, err
	}
	return s.articles.FindByCategory(categoryID)
}

// SearchByName recherche par sous-chaîne de nom, insensible à la casse
func (s *ArticleService) SearchByName(name string) ([]*domain.Article, error) {
	if name == "" {
		return nil, apperr.Validation("search name cannot be empty")
	}
	return s.articles.SearchByName(name)
}

// ListFeatured retourne les articles actifs mis en avant
func (s *ArticleService) ListFeatured() ([]*domain.Article, error) {
	return s.articles.FindFeatured()
}
