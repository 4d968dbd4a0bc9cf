package infrastructure

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"tienda/internal/apperr"
	"tienda/internal/orders/domain"
	shareddomain "tienda/internal/shared/domain"
	"tienda/internal/shared/infrastructure"
)

const orderColumns = "id, owner_id, total, status, delivery_address, created_at, updated_at, active"

// OrderRepository accès SQL aux commandes et à leurs lignes
type OrderRepository struct {
	infrastructure.BaseRepository
}

// NewOrderRepository crée un nouveau repository de commandes
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// WithTx retourne une copie du repository liée à la transaction donnée
func (r *OrderRepository) WithTx(tx *sql.Tx) *OrderRepository {
	return &OrderRepository{BaseRepository: r.BaseRepository.WithTx(tx)}
}

// NextID génère un nouvel identifiant de commande
func (r *OrderRepository) NextID() uuid.UUID {
	return uuid.New()
}

// Insert persiste une commande et ses lignes
func (r *OrderRepository) Insert(order *domain.Order) error {
	_, err := r.Exec(
		`INSERT INTO orders (id, owner_id, total, status, delivery_address, created_at, updated_at, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		order.ID(), order.OwnerID(), order.Total().Amount(), string(order.Status()),
		order.DeliveryAddress(), order.CreatedAt(), order.UpdatedAt(), order.Active(),
	)
	if err != nil {
		return errors.Wrap(err, "insert order")
	}

	for i, item := range order.Items() {
		_, err := r.Exec(
			`INSERT INTO order_items (order_id, position, article_id, quantity, unit_price, subtotal)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			order.ID(), i+1, item.ArticleID(), item.Quantity().Value(),
			item.UnitPrice().Amount(), item.Subtotal().Amount(),
		)
		if err != nil {
			return errors.Wrap(err, "insert order item")
		}
	}
	return nil
}

// FindByID retourne une commande active avec ses lignes
func (r *OrderRepository) FindByID(id uuid.UUID) (*domain.Order, error) {
	row := r.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = $1 AND active = TRUE`, id)

	order, err := r.scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("order %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "find order")
	}
	return order, nil
}

// FindAll retourne toutes les commandes actives
func (r *OrderRepository) FindAll() ([]*domain.Order, error) {
	return r.queryOrders(`SELECT ` + orderColumns + ` FROM orders WHERE active = TRUE ORDER BY created_at DESC`)
}

// FindByOwner retourne les commandes actives d'un propriétaire
func (r *OrderRepository) FindByOwner(ownerID uuid.UUID) ([]*domain.Order, error) {
	return r.queryOrders(
		`SELECT `+orderColumns+` FROM orders WHERE owner_id = $1 AND active = TRUE ORDER BY created_at DESC`,
		ownerID,
	)
}

// FindByArticle retourne les commandes actives contenant une ligne
// référençant l'article donné
func (r *OrderRepository) FindByArticle(articleID uuid.UUID) ([]*domain.Order, error) {
	return r.queryOrders(
		`SELECT `+orderColumns+` FROM orders o
		 WHERE o.active = TRUE
		   AND EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = o.id AND oi.article_id = $1)
		 ORDER BY o.created_at DESC`,
		articleID,
	)
}

// UpdateStatus persiste un changement d'état et rafraîchit updated_at
func (r *OrderRepository) UpdateStatus(id uuid.UUID, status domain.Status, now time.Time) error {
	result, err := r.Exec(
		`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1 AND active = TRUE`,
		id, string(status), now,
	)
	if err != nil {
		return errors.Wrap(err, "update order status")
	}
	return requireAffected(result, "order %s not found", id)
}

// UpdateDeliveryAddress modifie l'adresse de livraison
func (r *OrderRepository) UpdateDeliveryAddress(id uuid.UUID, address string, now time.Time) error {
	result, err := r.Exec(
		`UPDATE orders SET delivery_address = $2, updated_at = $3 WHERE id = $1 AND active = TRUE`,
		id, address, now,
	)
	if err != nil {
		return errors.Wrap(err, "update order")
	}
	return requireAffected(result, "order %s not found", id)
}

// SoftDelete désactive une commande
func (r *OrderRepository) SoftDelete(id uuid.UUID, now time.Time) error {
	result, err := r.Exec(
		`UPDATE orders SET active = FALSE, updated_at = $2 WHERE id = $1 AND active = TRUE`,
		id, now,
	)
	if err != nil {
		return errors.Wrap(err, "soft delete order")
	}
	return requireAffected(result, "order %s not found", id)
}

// queryOrders exécute une requête liste et hydrate commandes et lignes
func (r *OrderRepository) queryOrders(query string, args ...interface{}) ([]*domain.Order, error) {
	rows, err := r.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query orders")
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan order")
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// scanner abstraction commune à *sql.Row et *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanOrder hydrate une commande puis charge ses lignes
func (r *OrderRepository) scanOrder(s scanner) (*domain.Order, error) {
	var (
		id        uuid.UUID
		ownerID   uuid.UUID
		total     float64
		status    string
		address   sql.NullString
		createdAt time.Time
		updatedAt time.Time
		active    bool
	)

	if err := s.Scan(&id, &ownerID, &total, &status, &address, &createdAt, &updatedAt, &active); err != nil {
		return nil, err
	}

	items, err := r.findItems(id)
	if err != nil {
		return nil, err
	}

	money, _ := shareddomain.NewMoney(total, "EUR")
	return domain.RehydrateOrder(id, ownerID, items, money, domain.Status(status),
		address.String, createdAt, updatedAt, active), nil
}

// findItems charge les lignes d'une commande dans l'ordre de soumission
func (r *OrderRepository) findItems(orderID uuid.UUID) ([]*domain.LineItem, error) {
	rows, err := r.Query(
		`SELECT article_id, quantity, unit_price, subtotal FROM order_items WHERE order_id = $1 ORDER BY position`,
		orderID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "query order items")
	}
	defer rows.Close()

	var items []*domain.LineItem
	for rows.Next() {
		var (
			articleID uuid.UUID
			quantity  int
			unitPrice float64
			subtotal  float64
		)
		if err := rows.Scan(&articleID, &quantity, &unitPrice, &subtotal); err != nil {
			return nil, errors.Wrap(err, "scan order item")
		}

		qty, _ := shareddomain.NewQuantity(quantity)
		price, _ := shareddomain.NewMoney(unitPrice, "EUR")
		sub, _ := shareddomain.NewMoney(subtotal, "EUR")
		items = append(items, domain.RehydrateLineItem(articleID, qty, price, sub))
	}
	return items, rows.Err()
}

// requireAffected convertit "0 ligne modifiée" en erreur not-found
func requireAffected(result sql.Result, format string, args ...interface{}) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if affected == 0 {
		return apperr.NotFound(format, args...)
	}
	return nil
}
