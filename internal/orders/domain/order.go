package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	shareddomain "tienda/internal/shared/domain"
)

// LineItem une ligne de commande: article, quantité, prix unitaire au
// moment de la commande, sous-total. Possédé par sa commande, sans cycle
// de vie propre.
type LineItem struct {
	articleID uuid.UUID
	quantity  shareddomain.Quantity
	unitPrice shareddomain.Money
	subtotal  shareddomain.Money
}

// NewLineItem crée une ligne de commande avec validation.
// Le sous-total est toujours dérivé: quantité × prix unitaire.
func NewLineItem(articleID uuid.UUID, quantity shareddomain.Quantity, unitPrice shareddomain.Money) (*LineItem, error) {
	if articleID == uuid.Nil {
		return nil, errors.New("line item requires an article reference")
	}
	if quantity.IsZero() {
		return nil, errors.New("line item quantity must be positive")
	}
	if unitPrice.IsZero() {
		return nil, errors.New("line item unit price must be positive")
	}

	subtotal, err := unitPrice.Multiply(float64(quantity.Value()))
	if err != nil {
		return nil, err
	}

	return &LineItem{
		articleID: articleID,
		quantity:  quantity,
		unitPrice: unitPrice,
		subtotal:  subtotal,
	}, nil
}

// RehydrateLineItem reconstruit une ligne depuis le stockage
func RehydrateLineItem(articleID uuid.UUID, quantity shareddomain.Quantity, unitPrice, subtotal shareddomain.Money) *LineItem {
	return &LineItem{
		articleID: articleID,
		quantity:  quantity,
		unitPrice: unitPrice,
		subtotal:  subtotal,
	}
}

// ArticleID retourne l'article référencé
func (li *LineItem) ArticleID() uuid.UUID {
	return li.articleID
}

// Quantity retourne la quantité commandée
func (li *LineItem) Quantity() shareddomain.Quantity {
	return li.quantity
}

// UnitPrice retourne le prix unitaire au moment de la commande
func (li *LineItem) UnitPrice() shareddomain.Money {
	return li.unitPrice
}

// Subtotal retourne le sous-total (quantité × prix unitaire)
func (li *LineItem) Subtotal() shareddomain.Money {
	return li.subtotal
}

// Order représente une commande (aggregate root).
// Invariant: le total égale la somme des sous-totaux des lignes.
type Order struct {
	id              uuid.UUID
	ownerID         uuid.UUID
	items           []*LineItem
	total           shareddomain.Money
	status          Status
	deliveryAddress string
	createdAt       time.Time
	updatedAt       time.Time
	active          bool
}

// NewOrder crée une commande à l'état pending avec validation.
// Le total est calculé depuis les lignes, jamais fourni.
func NewOrder(id, ownerID uuid.UUID, items []*LineItem, deliveryAddress string, now time.Time) (*Order, error) {
	if ownerID == uuid.Nil {
		return nil, errors.New("order requires an owner reference")
	}
	if len(items) == 0 {
		return nil, errors.New("order requires at least one line item")
	}

	o := &Order{
		id:              id,
		ownerID:         ownerID,
		items:           items,
		status:          StatusPending,
		deliveryAddress: deliveryAddress,
		createdAt:       now,
		updatedAt:       now,
		active:          true,
	}
	if err := o.recalculateTotal(); err != nil {
		return nil, err
	}
	return o, nil
}

// RehydrateOrder reconstruit une commande depuis le stockage
func RehydrateOrder(
	id, ownerID uuid.UUID,
	items []*LineItem,
	total shareddomain.Money,
	status Status,
	deliveryAddress string,
	createdAt, updatedAt time.Time,
	active bool,
) *Order {
	return &Order{
		id:              id,
		ownerID:         ownerID,
		items:           items,
		total:           total,
		status:          status,
		deliveryAddress: deliveryAddress,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		active:          active,
	}
}

// ID retourne l'identifiant de la commande
func (o *Order) ID() uuid.UUID {
	return o.id
}

// OwnerID retourne le propriétaire de la commande
func (o *Order) OwnerID() uuid.UUID {
	return o.ownerID
}

// Items retourne les lignes de la commande
func (o *Order) Items() []*LineItem {
	return append([]*LineItem{}, o.items...)
}

// Total retourne le montant total
func (o *Order) Total() shareddomain.Money {
	return o.total
}

// Status retourne l'état courant
func (o *Order) Status() Status {
	return o.status
}

// DeliveryAddress retourne l'adresse de livraison
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// CreatedAt retourne la date de création
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt retourne la date de dernière modification
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Active indique si la commande est visible
func (o *Order) Active() bool {
	return o.active
}

// TransitionTo fait passer la commande à l'état donné en appliquant
// la table de transitions. Une transition illégale est refusée.
func (o *Order) TransitionTo(next Status, now time.Time) error {
	if !o.status.CanTransitionTo(next) {
		return fmt.Errorf("illegal transition from %s to %s", o.status, next)
	}
	o.status = next
	o.updatedAt = now
	return nil
}

// MarkCompleted force l'état completed depuis tout état non annulé.
// Réservé à la matérialisation d'une vente: le registre des ventes peut
// compléter une commande sans passer par chaque étape intermédiaire.
func (o *Order) MarkCompleted(now time.Time) error {
	if o.status == StatusCancelled {
		return errors.New("cannot complete a cancelled order")
	}
	o.status = StatusCompleted
	o.updatedAt = now
	return nil
}

// recalculateTotal recalcule le total depuis les sous-totaux des lignes,
// arrondi à deux décimales pour absorber la dérive flottante des sommes
func (o *Order) recalculateTotal() error {
	total, _ := shareddomain.NewMoney(0, "EUR")
	for _, item := range o.items {
		sum, err := total.Add(item.Subtotal())
		if err != nil {
			return err
		}
		total = sum
	}
	o.total = total.Round2()
	return nil
}
