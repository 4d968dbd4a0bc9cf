package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	catalogapp "tienda/internal/catalog/application"
)

// CatalogHandlers handlers du catalogue: articles et catégories
type CatalogHandlers struct {
	articles   *catalogapp.ArticleService
	categories *catalogapp.CategoryService
	log        *logrus.Entry
}

// NewCatalogHandlers crée les handlers du catalogue
func NewCatalogHandlers(
	articles *catalogapp.ArticleService,
	categories *catalogapp.CategoryService,
	log *logrus.Logger,
) *CatalogHandlers {
	return &CatalogHandlers{
		articles:   articles,
		categories: categories,
		log:        log.WithField("component", "api.catalog"),
	}
}

type createArticleRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  string  `json:"category_id"`
	ImageURL    string  `json:"image_url"`
	Featured    bool    `json:"featured"`
}

// CreateArticle handler pour POST /api/articulos
func (h *CatalogHandlers) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req createArticleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	article, err := h.articles.Create(catalogapp.CreateArticleInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		Featured:    req.Featured,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toArticleDTO(article))
}

// ListArticles handler pour GET /api/articulos
func (h *CatalogHandlers) ListArticles(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("name"); name != "" {
		articles, err := h.articles.SearchByName(name)
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, toArticleDTOs(articles))
		return
	}

	articles, err := h.articles.List()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toArticleDTOs(articles))
}

// ListFeaturedArticles handler pour GET /api/articulos/destacados
func (h *CatalogHandlers) ListFeaturedArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.ListFeatured()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toArticleDTOs(articles))
}

// ListArticlesByCategory handler pour GET /api/articulos/categoria/{id}
func (h *CatalogHandlers) ListArticlesByCategory(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.SearchByCategory(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toArticleDTOs(articles))
}

// GetArticle handler pour GET /api/articulos/{id}
func (h *CatalogHandlers) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := h.articles.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toArticleDTO(article))
}

type updateArticleRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	CategoryID  *string  `json:"category_id"`
	ImageURL    *string  `json:"image_url"`
	Featured    *bool    `json:"featured"`
}

// UpdateArticle handler pour PUT /api/articulos/{id}
func (h *CatalogHandlers) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	var req updateArticleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	id := mux.Vars(r)["id"]
	err := h.articles.Update(id, catalogapp.UpdateArticleInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		Featured:    req.Featured,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	article, err := h.articles.Get(id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toArticleDTO(article))
}

// DeleteArticle handler pour DELETE /api/articulos/{id}
func (h *CatalogHandlers) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := h.articles.SoftDelete(mux.Vars(r)["id"]); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateCategory handler pour POST /api/categorias
func (h *CatalogHandlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	category, err := h.categories.Create(req.Name, req.Description)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryDTO(category))
}

// ListCategories handler pour GET /api/categorias
func (h *CatalogHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryDTOs(categories))
}

// GetCategory handler pour GET /api/categorias/{id}
func (h *CatalogHandlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryDTO(category))
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// UpdateCategory handler pour PUT /api/categorias/{id}
func (h *CatalogHandlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	id := mux.Vars(r)["id"]
	if err := h.categories.Update(id, req.Name, req.Description); err != nil {
		writeError(w, h.log, err)
		return
	}

	category, err := h.categories.Get(id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryDTO(category))
}

// DeleteCategory handler pour DELETE /api/categorias/{id}
func (h *CatalogHandlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.SoftDelete(mux.Vars(r)["id"]); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
