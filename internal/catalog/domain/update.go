package domain

import "github.com/google/uuid"

// ArticleUpdate mise à jour partielle d'un article: seuls les champs
// non nil sont modifiés
type ArticleUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	CategoryID  *uuid.UUID
	ImageURL    *string
	Featured    *bool
}

// IsEmpty vérifie qu'au moins un champ est renseigné
func (u ArticleUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil &&
		u.Stock == nil && u.CategoryID == nil && u.ImageURL == nil && u.Featured == nil
}
