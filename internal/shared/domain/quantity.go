package domain

import "errors"

// Quantity nombre d'unités (stock d'un article, ligne de commande).
// Jamais négatif; zéro est permis pour représenter un stock épuisé.
type Quantity struct {
	value int
}

// NewQuantity crée une Quantity avec validation
func NewQuantity(value int) (Quantity, error) {
	if value < 0 {
		return Quantity{}, errors.New("quantity cannot be negative")
	}
	return Quantity{value: value}, nil
}

// Value retourne le nombre d'unités
func (q Quantity) Value() int {
	return q.value
}

// IsZero vérifie si la quantité est nulle
func (q Quantity) IsZero() bool {
	return q.value == 0
}
