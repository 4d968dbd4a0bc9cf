package infrastructure

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"tienda/internal/apperr"
	"tienda/internal/catalog/domain"
	shareddomain "tienda/internal/shared/domain"
	"tienda/internal/shared/infrastructure"
)

const articleColumns = "id, name, description, price, stock, category_id, image_url, featured, created_at, active"

// ArticleRepository accès SQL aux articles
type ArticleRepository struct {
	infrastructure.BaseRepository
}

// NewArticleRepository crée un nouveau repository d'articles
func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// WithTx retourne une copie du repository liée à la transaction donnée
func (r *ArticleRepository) WithTx(tx *sql.Tx) *ArticleRepository {
	return &ArticleRepository{BaseRepository: r.BaseRepository.WithTx(tx)}
}

// NextID génère un nouvel identifiant d'article
func (r *ArticleRepository) NextID() uuid.UUID {
	return uuid.New()
}

// Insert persiste un nouvel article
func (r *ArticleRepository) Insert(article *domain.Article) error {
	query := `
		INSERT INTO articles (id, name, description, price, stock, category_id, image_url, featured, created_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.Exec(query,
		article.ID(), article.Name(), article.Description(),
		article.Price().Amount(), article.Stock().Value(), article.CategoryID(),
		article.ImageURL(), article.Featured(), article.CreatedAt(), article.Active(),
	)
	if err != nil {
		return errors.Wrap(err, "insert article")
	}
	return nil
}

// FindByID retourne un article actif par identifiant
func (r *ArticleRepository) FindByID(id uuid.UUID) (*domain.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE id = $1 AND active = TRUE`, articleColumns)

	article, err := scanArticle(r.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("article %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "find article")
	}
	return article, nil
}

// FindAll retourne tous les articles actifs
func (r *ArticleRepository) FindAll() ([]*domain.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE active = TRUE ORDER BY created_at DESC`, articleColumns)
	return r.queryArticles(query)
}

// FindByCategory retourne les articles actifs d'une catégorie
func (r *ArticleRepository) FindByCategory(categoryID uuid.UUID) ([]*domain.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE category_id = $1 AND active = TRUE ORDER BY created_at DESC`, articleColumns)
	return r.queryArticles(query, categoryID)
}

// SearchByName recherche par sous-chaîne de nom, insensible à la casse
func (r *ArticleRepository) SearchByName(name string) ([]*domain.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE name ILIKE '%%' || $1 || '%%' AND active = TRUE ORDER BY name`, articleColumns)
	return r.queryArticles(query, name)
}

// FindFeatured retourne les articles actifs mis en avant
func (r *ArticleRepository) FindFeatured() ([]*domain.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE featured = TRUE AND active = TRUE ORDER BY created_at DESC`, articleColumns)
	return r.queryArticles(query)
}

// Update applique une mise à jour partielle. Seuls les champs renseignés
// sont inclus dans le SET.
func (r *ArticleRepository) Update(id uuid.UUID, upd domain.ArticleUpdate) error {
	sets := make([]string, 0, 7)
	args := make([]interface{}, 0, 8)

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Price != nil {
		add("price", *upd.Price)
	}
	if upd.Stock != nil {
		add("stock", *upd.Stock)
	}
	if upd.CategoryID != nil {
		add("category_id", *upd.CategoryID)
	}
	if upd.ImageURL != nil {
		add("image_url", *upd.ImageURL)
	}
	if upd.Featured != nil {
		add("featured", *upd.Featured)
	}

	if len(sets) == 0 {
		return apperr.Validation("no fields to update")
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE articles SET %s WHERE id = $%d AND active = TRUE",
		strings.Join(sets, ", "), len(args))

	result, err := r.Exec(query, args...)
	if err != nil {
		return errors.Wrap(err, "update article")
	}
	return requireAffected(result, "article %s not found", id)
}

// SoftDelete désactive un article (borrado lógico)
func (r *ArticleRepository) SoftDelete(id uuid.UUID) error {
	result, err := r.Exec(`UPDATE articles SET active = FALSE WHERE id = $1 AND active = TRUE`, id)
	if err != nil {
		return errors.Wrap(err, "soft delete article")
	}
	return requireAffected(result, "article %s not found", id)
}

// DecrementStock décrémente le stock de qty avec plancher à zéro.
// UPDATE atomique: des décréments concurrents ne perdent pas de mise à jour
// et le stock ne devient jamais négatif.
func (r *ArticleRepository) DecrementStock(id uuid.UUID, qty int) error {
	if qty <= 0 {
		return apperr.Validation("decrement quantity must be positive")
	}

	result, err := r.Exec(
		`UPDATE articles SET stock = GREATEST(stock - $2, 0) WHERE id = $1 AND active = TRUE`,
		id, qty,
	)
	if err != nil {
		return errors.Wrap(err, "decrement stock")
	}
	return requireAffected(result, "article %s not found", id)
}

// queryArticles exécute une requête liste et hydrate les résultats
func (r *ArticleRepository) queryArticles(query string, args ...interface{}) ([]*domain.Article, error) {
	rows, err := r.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query articles")
	}
	defer rows.Close()

	var articles []*domain.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan article")
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// scanner abstraction commune à *sql.Row et *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanArticle hydrate un article depuis une ligne SQL
func scanArticle(s scanner) (*domain.Article, error) {
	var (
		id          uuid.UUID
		name        string
		description string
		price       float64
		stock       int
		categoryID  uuid.UUID
		imageURL    sql.NullString
		featured    bool
		createdAt   time.Time
		active      bool
	)

	if err := s.Scan(&id, &name, &description, &price, &stock, &categoryID,
		&imageURL, &featured, &createdAt, &active); err != nil {
		return nil, err
	}

	money, _ := shareddomain.NewMoney(price, "EUR")
	qty, _ := shareddomain.NewQuantity(stock)

	return domain.RehydrateArticle(id, name, description, money, qty,
		categoryID, imageURL.String, featured, createdAt, active), nil
}

// requireAffected convertit "0 ligne modifiée" en erreur not-found
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
