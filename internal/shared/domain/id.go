package domain

import (
	"github.com/google/uuid"

	"tienda/internal/apperr"
)

// ParseID convertit un identifiant opaque reçu du client en UUID.
// Un identifiant malformé produit une erreur de validation, distincte
// du not-found renvoyé quand l'entité n'existe pas.
func ParseID(raw, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid %s identifier", entity)
	}
	return id, nil
}
