package infrastructure

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda/internal/apperr"
	"tienda/internal/catalog/domain"
)

func articleRows(id, categoryID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "price", "stock", "category_id",
		"image_url", "featured", "created_at", "active",
	}).AddRow(id, "Teclado mecánico", "Switches rojos", 89.00, 45, categoryID,
		"", false, time.Now().UTC(), true)
}

func TestArticleRepositoryFindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	categoryID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, description, price, stock, category_id, image_url, featured, created_at, active FROM articles WHERE id = $1 AND active = TRUE`)).
		WithArgs(id).
		WillReturnRows(articleRows(id, categoryID))

	repo := NewArticleRepository(db)
	article, err := repo.FindByID(id)
	require.NoError(t, err)

	assert.Equal(t, id, article.ID())
	assert.Equal(t, "Teclado mecánico", article.Name())
	assert.Equal(t, 89.00, article.Price().Amount())
	assert.Equal(t, 45, article.Stock().Value())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM articles WHERE id = ").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewArticleRepository(db)
	_, err = repo.FindByID(id)
	assert.True(t, apperr.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepositoryDecrementStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE articles SET stock = GREATEST(stock - $2, 0) WHERE id = $1 AND active = TRUE`)).
		WithArgs(id, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewArticleRepository(db)
	require.NoError(t, repo.DecrementStock(id, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepositoryDecrementStockRejectsNonPositive(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewArticleRepository(db)
	assert.True(t, apperr.IsValidation(repo.DecrementStock(uuid.New(), 0)))
	assert.True(t, apperr.IsValidation(repo.DecrementStock(uuid.New(), -2)))
}

func TestArticleRepositoryDecrementStockUnknownArticle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec("UPDATE articles SET stock = ").
		WithArgs(id, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewArticleRepository(db)
	assert.True(t, apperr.IsNotFound(repo.DecrementStock(id, 1)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepositoryPartialUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	name := "Teclado inalámbrico"
	price := 99.90

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE articles SET name = $1, price = $2 WHERE id = $3 AND active = TRUE`)).
		WithArgs(name, price, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewArticleRepository(db)
	err = repo.Update(id, domain.ArticleUpdate{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepositoryUpdateRequiresFields(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewArticleRepository(db)
	assert.True(t, apperr.IsValidation(repo.Update(uuid.New(), domain.ArticleUpdate{})))
}

func TestArticleRepositorySoftDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE articles SET active = FALSE WHERE id = $1 AND active = TRUE`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewArticleRepository(db)
	require.NoError(t, repo.SoftDelete(id))
	assert.NoError(t, mock.ExpectationsWereMet())
}
