package application

import (
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"tienda/internal/apperr"
	cataloginfra "tienda/internal/catalog/infrastructure"
	"tienda/internal/orders/domain"
	"tienda/internal/orders/infrastructure"
	shareddomain "tienda/internal/shared/domain"
	sharedinfra "tienda/internal/shared/infrastructure"
)

// OrderService opérations sur les commandes et leur cycle de vie
type OrderService struct {
	orders   *infrastructure.OrderRepository
	articles *cataloginfra.ArticleRepository
	uow      sharedinfra.UnitOfWork
	log      *logrus.Entry
}

// NewOrderService crée une nouvelle instance de OrderService
func NewOrderService(
	orders *infrastructure.OrderRepository,
	articles *cataloginfra.ArticleRepository,
	uow sharedinfra.UnitOfWork,
	log *logrus.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		articles: articles,
		uow:      uow,
		log:      log.WithField("component", "orders"),
	}
}

// LineItemInput une ligne de la requête de création
type LineItemInput struct {
	ArticleID string
	Quantity  int
	UnitPrice float64
}

// CreateOrderInput données de création d'une commande
type CreateOrderInput struct {
	OwnerID         string
	DeliveryAddress string
	Items           []LineItemInput
	// Total optionnel fourni par le client; validé contre la somme des
	// sous-totaux, jamais pris pour argent comptant
	Total *float64
}

// Create crée une commande à l'état pending et décrémente le stock de
// chaque article référencé. Insertion de la commande, de ses lignes et
// décréments de stock forment une seule transaction: tout ou rien.
func (s *OrderService) Create(in CreateOrderInput) (*domain.Order, error) {
	ownerID, err := shareddomain.ParseID(in.OwnerID, "owner")
	if err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, apperr.Validation("order requires at least one line item")
	}

	items := make([]*domain.LineItem, 0, len(in.Items))
	for _, raw := range in.Items {
		articleID, err := shareddomain.ParseID(raw.ArticleID, "article")
		if err != nil {
			return nil, err
		}
		qty, err := shareddomain.NewQuantity(raw.Quantity)
		if err != nil || qty.IsZero() {
			return nil, apperr.Validation("line item quantity must be positive")
		}
		price, err := shareddomain.NewMoney(raw.UnitPrice, "EUR")
		if err != nil || price.IsZero() {
			return nil, apperr.Validation("line item unit price must be positive")
		}

		item, err := domain.NewLineItem(articleID, qty, price)
		if err != nil {
			return nil, apperr.Validation("%s", err)
		}
		items = append(items, item)
	}

	order, err := domain.NewOrder(s.orders.NextID(), ownerID, items, in.DeliveryAddress, time.Now().UTC())
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}

	if in.Total != nil {
		supplied, err := shareddomain.NewMoney(*in.Total, "EUR")
		if err != nil {
			return nil, apperr.Validation("order total cannot be negative")
		}
		if !order.Total().EqualsApprox(supplied) {
			return nil, apperr.Validation("supplied total %.2f does not match line items total %.2f",
				supplied.Amount(), order.Total().Amount())
		}
	}

	err = s.uow.Execute(func(tx *sql.Tx) error {
		if err := s.orders.WithTx(tx).Insert(order); err != nil {
			return err
		}
		articles := s.articles.WithTx(tx)
		for _, item := range order.Items() {
			if err := articles.DecrementStock(item.ArticleID(), item.Quantity().Value()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"order_id": order.ID(),
			"owner_id": ownerID,
		}).WithError(err).Error("order creation rolled back")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id": order.ID(),
		"items":    len(in.Items),
		"total":    order.Total().Amount(),
	}).Info("order created")

	return order, nil
}

// List retourne toutes les commandes actives
func (s *OrderService) List() ([]*domain.Order, error) {
	return s.orders.FindAll()
}

// Get retourne une commande active par identifiant
func (s *OrderService) Get(rawID string) (*domain.Order, error) {
	id, err := shareddomain.ParseID(rawID, "order")
	if err != nil {
		return nil, err
	}
	return s.orders.FindByID(id)
}

// ListByOwner retourne les commandes actives d'un propriétaire
func (s *OrderService) ListByOwner(rawOwnerID string) ([]*domain.Order, error) {
	ownerID, err := shareddomain.ParseID(rawOwnerID, "owner")
	if err != nil {
		return nil, err
	}
	return s.orders.FindByOwner(ownerID)
}

// ListByArticle retourne les commandes contenant une ligne référençant
// l'article donné
func (s *OrderService) ListByArticle(rawArticleID string) ([]*domain.Order, error) {
	articleID, err := shareddomain.ParseID(rawArticleID, "article")
	if err != nil {
		return nil, err
	}
	return s.orders.FindByArticle(articleID)
}

// UpdateStatus fait passer une commande à l'état donné.
// La valeur est d'abord validée contre l'énumération, puis la transition
// contre la table des états: aucun des deux refus ne touche au stockage.
func (s *OrderService) UpdateStatus(rawID, rawStatus string) error {
	id, err := shareddomain.ParseID(rawID, "order")
	if err != nil {
		return err
	}
	next, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return apperr.Validation("%s", err)
	}

	order, err := s.orders.FindByID(id)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := order.TransitionTo(next, now); err != nil {
		return apperr.Validation("%s", err)
	}

	return s.orders.UpdateStatus(id, order.Status(), now)
}

// Cancel annule une commande (raccourci vers l'état cancelled)
func (s *OrderService) Cancel(rawID string) error {
	return s.UpdateStatus(rawID, string(domain.StatusCancelled))
}

// UpdateOrderInput mise à jour partielle d'une commande
type UpdateOrderInput struct {
	DeliveryAddress *string
}

// Update applique une mise à jour partielle et rafraîchit updated_at
func (s *OrderService) Update(rawID string, in UpdateOrderInput) error {
	id, err := shareddomain.ParseID(rawID, "order")
	if err != nil {
		return err
	}
	if in.DeliveryAddress == nil {
		return apperr.Validation("no fields to update")
	}
	return s.orders.UpdateDeliveryAddress(id, *in.DeliveryAddress, time.Now().UTC())
}

// SoftDelete désactive une commande. Aucun effet en cascade sur une
// vente déjà enregistrée pour cette commande.
func (s *OrderService) SoftDelete(rawID string) error {
	id, err := shareddomain.ParseID(rawID, "order")
	if err != nil {
		return err
	}
	return s.orders.SoftDelete(id, time.Now().UTC())
}
