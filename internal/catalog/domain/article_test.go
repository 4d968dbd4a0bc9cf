package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shareddomain "tienda/internal/shared/domain"
)

func TestNewArticleValidation(t *testing.T) {
	price, err := shareddomain.NewMoney(89.00, "EUR")
	require.NoError(t, err)
	stock, err := shareddomain.NewQuantity(45)
	require.NoError(t, err)
	zero, err := shareddomain.NewMoney(0, "EUR")
	require.NoError(t, err)
	now := time.Now().UTC()

	article, err := NewArticle(uuid.New(), "Teclado mecánico", "Switches rojos",
		price, stock, uuid.New(), "", false, now)
	require.NoError(t, err)
	assert.True(t, article.Active())
	assert.True(t, article.IsInStock())

	_, err = NewArticle(uuid.New(), "", "", price, stock, uuid.New(), "", false, now)
	assert.Error(t, err, "name is required")

	_, err = NewArticle(uuid.New(), "Teclado", "", zero, stock, uuid.New(), "", false, now)
	assert.Error(t, err, "price must be positive")
}

func TestArticleOutOfStock(t *testing.T) {
	price, err := shareddomain.NewMoney(10, "EUR")
	require.NoError(t, err)
	empty, err := shareddomain.NewQuantity(0)
	require.NoError(t, err)

	article, err := NewArticle(uuid.New(), "Teclado", "", price, empty, uuid.New(), "", false, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, article.IsInStock())
}
