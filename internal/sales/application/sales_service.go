package application

import (
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"tienda/internal/apperr"
	ordersdomain "tienda/internal/orders/domain"
	ordersinfra "tienda/internal/orders/infrastructure"
	"tienda/internal/sales/domain"
	"tienda/internal/sales/infrastructure"
	shareddomain "tienda/internal/shared/domain"
	sharedinfra "tienda/internal/shared/infrastructure"
)

// SalesService opérations sur le registre des ventes
type SalesService struct {
	sales  *infrastructure.SalesRepository
	orders *ordersinfra.OrderRepository
	uow    sharedinfra.UnitOfWork
	log    *logrus.Entry
}

// NewSalesService crée une nouvelle instance de SalesService
func NewSalesService(
	sales *infrastructure.SalesRepository,
	orders *ordersinfra.OrderRepository,
	uow sharedinfra.UnitOfWork,
	log *logrus.Logger,
) *SalesService {
	return &SalesService{
		sales:  sales,
		orders: orders,
		uow:    uow,
		log:    log.WithField("component", "sales"),
	}
}

// CreateFromOrder matérialise la vente d'une commande: passe la commande
// à l'état completed et insère l'enregistrement de vente dans une seule
// transaction. Idempotent: si une vente existe déjà pour la commande,
// elle est retournée sans en créer une seconde.
func (s *SalesService) CreateFromOrder(rawOrderID string) (*domain.Sale, error) {
	orderID, err := shareddomain.ParseID(rawOrderID, "order")
	if err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.sales.FindByOrder(orderID); err == nil {
		s.log.WithField("order_id", orderID).Info("sale already recorded, returning existing")
		return existing, nil
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	now := time.Now().UTC()
	if err := order.MarkCompleted(now); err != nil {
		return nil, apperr.Validation("%s", err)
	}

	sale, err := domain.NewSale(s.sales.NextID(), orderID, order.OwnerID(), saleTotal(order), now)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}

	err = s.uow.Execute(func(tx *sql.Tx) error {
		if err := s.orders.WithTx(tx).UpdateStatus(orderID, order.Status(), now); err != nil {
			return err
		}
		return s.sales.WithTx(tx).Insert(sale)
	})
	if apperr.IsConflict(err) {
		// course perdue contre un autre appel: la vente existe désormais
		s.log.WithField("order_id", orderID).Warn("concurrent sale creation detected")
		return s.sales.FindByOrder(orderID)
	}
	if err != nil {
		s.log.WithField("order_id", orderID).WithError(err).Error("sale creation rolled back")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id": orderID,
		"sale_id":  sale.ID(),
		"total":    sale.Total().Amount(),
	}).Info("sale recorded")

	return sale, nil
}

// saleTotal détermine le montant de la vente: total stocké de la
// commande, sinon somme des sous-totaux des lignes, sinon quantité ×
// prix unitaire par ligne, sinon zéro.
func saleTotal(order *ordersdomain.Order) shareddomain.Money {
	if !order.Total().IsZero() {
		return order.Total()
	}

	total, _ := shareddomain.NewMoney(0, "EUR")
	for _, item := range order.Items() {
		line := item.Subtotal()
		if line.IsZero() {
			line, _ = item.UnitPrice().Multiply(float64(item.Quantity().Value()))
		}
		if sum, err := total.Add(line); err == nil {
			total = sum
		}
	}
	return total.Round2()
}

// GetByOrder retourne la vente d'une commande
func (s *SalesService) GetByOrder(rawOrderID string) (*domain.Sale, error) {
	orderID, err := shareddomain.ParseID(rawOrderID, "order")
	if err != nil {
		return nil, err
	}
	return s.sales.FindByOrder(orderID)
}

// ListByOwner retourne les ventes d'un propriétaire
func (s *SalesService) ListByOwner(rawOwnerID string) ([]*domain.Sale, error) {
	ownerID, err := shareddomain.ParseID(rawOwnerID, "owner")
	if err != nil {
		return nil, err
	}
	return s.sales.FindByOwner(ownerID)
}

// ListByDate retourne les ventes de la journée UTC donnée (YYYY-MM-DD),
// borne basse incluse, borne haute exclue
func (s *SalesService) ListByDate(rawDay string) ([]*domain.Sale, error) {
	day, err := time.Parse("2006-01-02", rawDay)
	if err != nil {
		return nil, apperr.Validation("invalid date %q, expected YYYY-MM-DD", rawDay)
	}
	return s.sales.FindByDateRange(shareddomain.NewDayRange(day))
}

// ListByDateRange retourne les ventes enregistrées dans [start, end)
func (s *SalesService) ListByDateRange(start, end time.Time) ([]*domain.Sale, error) {
	dateRange, err := shareddomain.NewDateRange(start, end)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}
	return s.sales.FindByDateRange(dateRange)
}

// ListByOrderAndOwner retourne les ventes d'une commande et d'un propriétaire
func (s *SalesService) ListByOrderAndOwner(rawOrderID, rawOwnerID string) ([]*domain.Sale, error) {
	orderID, err := shareddomain.ParseID(rawOrderID, "order")
	if err != nil {
		return nil, err
	}
	ownerID, err := shareddomain.ParseID(rawOwnerID, "owner")
	if err != nil {
		return nil, err
	}
	return s.sales.FindByOrderAndOwner(orderID, ownerID)
}

// ListAll retourne toutes les ventes
func (s *SalesService) ListAll() ([]*domain.Sale, error) {
	return s.sales.FindAll()
}

// DeleteByOrder supprime la vente d'une commande (annulation
// administrative). L'état completed de la commande source est conservé.
func (s *SalesService) DeleteByOrder(rawOrderID string) error {
	orderID, err := shareddomain.ParseID(rawOrderID, "order")
	if err != nil {
		return err
	}
	if err := s.sales.DeleteByOrder(orderID); err != nil {
		return err
	}
	s.log.WithField("order_id", orderID).Warn("sale deleted by administrative reversal")
	return nil
}
