package infrastructure

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"tienda/internal/apperr"
	"tienda/internal/sales/domain"
	shareddomain "tienda/internal/shared/domain"
	"tienda/internal/shared/infrastructure"
)

const saleColumns = "id, order_id, owner_id, total, created_at"

// SalesRepository accès SQL au registre des ventes
type SalesRepository struct {
	infrastructure.BaseRepository
}

// NewSalesRepository crée un nouveau repository de ventes
func NewSalesRepository(db *sql.DB) *SalesRepository {
	return &SalesRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// WithTx retourne une copie du repository liée à la transaction donnée
func (r *SalesRepository) WithTx(tx *sql.Tx) *SalesRepository {
	return &SalesRepository{BaseRepository: r.BaseRepository.WithTx(tx)}
}

// NextID génère un nouvel identifiant de vente
func (r *SalesRepository) NextID() uuid.UUID {
	return uuid.New()
}

// Insert persiste une vente. L'index unique sur order_id garantit au
// plus une vente par commande: un doublon produit une erreur Conflict.
func (r *SalesRepository) Insert(sale *domain.Sale) error {
	_, err := r.Exec(
		`INSERT INTO sales (id, order_id, owner_id, total, created_at) VALUES ($1, $2, $3, $4, $5)`,
		sale.ID(), sale.OrderID(), sale.OwnerID(), sale.Total().Amount(), sale.CreatedAt(),
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return apperr.Conflict("sale already recorded for order %s", sale.OrderID())
	}
	if err != nil {
		return errors.Wrap(err, "insert sale")
	}
	return nil
}

// FindByOrder retourne la vente d'une commande
func (r *SalesRepository) FindByOrder(orderID uuid.UUID) (*domain.Sale, error) {
	sale, err := scanSale(r.QueryRow(`SELECT `+saleColumns+` FROM sales WHERE order_id = $1`, orderID))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("no sale recorded for order %s", orderID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "find sale")
	}
	return sale, nil
}

// FindByOwner retourne les ventes d'un propriétaire
func (r *SalesRepository) FindByOwner(ownerID uuid.UUID) ([]*domain.Sale, error) {
	return r.querySales(
		`SELECT `+saleColumns+` FROM sales WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID,
	)
}

// FindByDateRange retourne les ventes enregistrées dans [start, end)
func (r *SalesRepository) FindByDateRange(dateRange shareddomain.DateRange) ([]*domain.Sale, error) {
	return r.querySales(
		`SELECT `+saleColumns+` FROM sales WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at`,
		dateRange.Start(), dateRange.End(),
	)
}

// FindByOrderAndOwner retourne les ventes d'une commande et d'un propriétaire
func (r *SalesRepository) FindByOrderAndOwner(orderID, ownerID uuid.UUID) ([]*domain.Sale, error) {
	return r.querySales(
		`SELECT `+saleColumns+` FROM sales WHERE order_id = $1 AND owner_id = $2 ORDER BY created_at DESC`,
		orderID, ownerID,
	)
}

// FindAll retourne toutes les ventes
func (r *SalesRepository) FindAll() ([]*domain.Sale, error) {
	return r.querySales(`SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC`)
}

// DeleteByOrder supprime la vente d'une commande (annulation
// administrative). L'état de la commande source n'est pas modifié.
func (r *SalesRepository) DeleteByOrder(orderID uuid.UUID) error {
	result, err := r.Exec(`DELETE FROM sales WHERE order_id = $1`, orderID)
	if err != nil {
		return errors.Wrap(err, "delete sale")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if affected == 0 {
		return apperr.NotFound("no sale recorded for order %s", orderID)
	}
	return nil
}

// querySales exécute une requête liste et hydrate les résultats
func (r *SalesRepository) querySales(query string, args ...interface{}) ([]*domain.Sale, error) {
	rows, err := r.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query sales")
	}
	defer rows.Close()

	var sales []*domain.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan sale")
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

// scanner abstraction commune à *sql.Row et *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanSale hydrate une vente depuis une ligne SQL
func scanSale(s scanner) (*domain.Sale, error) {
	var (
		id        uuid.UUID
		orderID   uuid.UUID
		ownerID   uuid.UUID
		total     float64
		createdAt time.Time
	)

	if err := s.Scan(&id, &orderID, &ownerID, &total, &createdAt); err != nil {
		return nil, err
	}

	money, _ := shareddomain.NewMoney(total, "EUR")
	return domain.RehydrateSale(id, orderID, ownerID, money, createdAt), nil
}
