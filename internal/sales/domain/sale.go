package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	shareddomain "tienda/internal/shared/domain"
)

// Sale enregistrement du registre des ventes, matérialisé quand une
// commande passe à l'état completed. Référence sa commande source par
// identifiant uniquement (au plus une vente par commande).
type Sale struct {
	id        uuid.UUID
	orderID   uuid.UUID
	ownerID   uuid.UUID
	total     shareddomain.Money
	createdAt time.Time
}

// NewSale crée une vente avec validation
func NewSale(id, orderID, ownerID uuid.UUID, total shareddomain.Money, createdAt time.Time) (*Sale, error) {
	if orderID == uuid.Nil {
		return nil, errors.New("sale requires an order reference")
	}
	if ownerID == uuid.Nil {
		return nil, errors.New("sale requires an owner reference")
	}

	return &Sale{
		id:        id,
		orderID:   orderID,
		ownerID:   ownerID,
		total:     total,
		createdAt: createdAt,
	}, nil
}

// RehydrateSale reconstruit une vente depuis le stockage
func RehydrateSale(id, orderID, ownerID uuid.UUID, total shareddomain.Money, createdAt time.Time) *Sale {
	return &Sale{
		id:        id,
		orderID:   orderID,
		ownerID:   ownerID,
		total:     total,
		createdAt: createdAt,
	}
}

// ID retourne l'identifiant de la vente
func (s *Sale) ID() uuid.UUID {
	return s.id
}

// OrderID retourne la commande source
func (s *Sale) OrderID() uuid.UUID {
	return s.orderID
}

// OwnerID retourne le propriétaire de la commande source
func (s *Sale) OwnerID() uuid.UUID {
	return s.ownerID
}

// Total retourne le montant réalisé
func (s *Sale) Total() shareddomain.Money {
	return s.total
}

// CreatedAt retourne la date d'enregistrement
func (s *Sale) CreatedAt() time.Time {
	return s.createdAt
}
