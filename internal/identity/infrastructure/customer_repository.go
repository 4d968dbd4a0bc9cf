package infrastructure

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"tienda/internal/apperr"
	"tienda/internal/identity/domain"
	"tienda/internal/shared/infrastructure"
)

const customerColumns = "id, email, name, phone, address, created_at, active"

// CustomerRepository accès SQL aux fiches clients. Nom, téléphone et
// adresse sont chiffrés au repos et déchiffrés à la lecture; l'email
// reste en clair pour servir de clé de recherche.
type CustomerRepository struct {
	infrastructure.BaseRepository
	cipher *infrastructure.FieldCipher
}

// NewCustomerRepository crée un nouveau repository de clients
func NewCustomerRepository(db *sql.DB, cipher *infrastructure.FieldCipher) *CustomerRepository {
	return &CustomerRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
		cipher:         cipher,
	}
}

// NextID génère un nouvel identifiant de client
func (r *CustomerRepository) NextID() uuid.UUID {
	return uuid.New()
}

// Insert persiste un client, champs personnels chiffrés
func (r *CustomerRepository) Insert(customer *domain.Customer) error {
	name, phone, address, err := r.sealFields(customer.Name(), customer.Phone(), customer.Address())
	if err != nil {
		return err
	}

	_, err = r.Exec(
		`INSERT INTO customers (id, email, name, phone, address, created_at, active) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		customer.ID(), customer.Email(), name, phone, address, customer.CreatedAt(), customer.IsActive(),
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return apperr.Conflict("email %s already registered", customer.Email())
	}
	if err != nil {
		return errors.Wrap(err, "insert customer")
	}
	return nil
}

// FindByID retourne un client actif par identifiant
func (r *CustomerRepository) FindByID(id uuid.UUID) (*domain.Customer, error) {
	customer, err := r.scanCustomer(r.QueryRow(
		`SELECT `+customerColumns+` FROM customers WHERE id = $1 AND active = TRUE`, id,
	))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("customer %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "find customer")
	}
	return customer, nil
}

// FindByEmail retourne un client actif par email
func (r *CustomerRepository) FindByEmail(email string) (*domain.Customer, error) {
	customer, err := r.scanCustomer(r.QueryRow(
		`SELECT `+customerColumns+` FROM customers WHERE email = $1 AND active = TRUE`, email,
	))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("customer %s not found", email)
	}
	if err != nil {
		return nil, errors.Wrap(err, "find customer by email")
	}
	return customer, nil
}

// FindAll retourne toutes les fiches clients actives
func (r *CustomerRepository) FindAll() ([]*domain.Customer, error) {
	rows, err := r.Query(`SELECT ` + customerColumns + ` FROM customers WHERE active = TRUE ORDER BY created_at`)
	if err != nil {
		return nil, errors.Wrap(err, "query customers")
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		customer, err := r.scanCustomer(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan customer")
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

// Update applique une mise à jour partielle, champs chiffrés au passage
func (r *CustomerRepository) Update(id uuid.UUID, update domain.CustomerUpdate) error {
	if update.IsEmpty() {
		return apperr.Validation("no fields to update")
	}

	var name, phone, address sql.NullString
	if update.Name != nil {
		enc, err := r.cipher.Encrypt(*update.Name)
		if err != nil {
			return errors.Wrap(err, "encrypt name")
		}
		name = sql.NullString{String: enc, Valid: true}
	}
	if update.Phone != nil {
		enc, err := r.cipher.Encrypt(*update.Phone)
		if err != nil {
			return errors.Wrap(err, "encrypt phone")
		}
		phone = sql.NullString{String: enc, Valid: true}
	}
	if update.Address != nil {
		enc, err := r.cipher.Encrypt(*update.Address)
		if err != nil {
			return errors.Wrap(err, "encrypt address")
		}
		address = sql.NullString{String: enc, Valid: true}
	}

	result, err := r.Exec(
		`UPDATE customers SET
			name = COALESCE($2, name),
			phone = COALESCE($3, phone),
			address = COALESCE($4, address)
		WHERE id = $1 AND active = TRUE`,
		id, name, phone, address,
	)
	if err != nil {
		return errors.Wrap(err, "update customer")
	}
	return requireAffected(result, "customer %s not found", id)
}

// SoftDelete désactive une fiche sans effacer la ligne
func (r *CustomerRepository) SoftDelete(id uuid.UUID) error {
	result, err := r.Exec(`UPDATE customers SET active = FALSE WHERE id = $1 AND active = TRUE`, id)
	if err != nil {
		return errors.Wrap(err, "soft delete customer")
	}
	return requireAffected(result, "customer %s not found", id)
}

// sealFields chiffre les champs personnels avant écriture
func (r *CustomerRepository) sealFields(name, phone, address string) (string, string, string, error) {
	encName, err := r.cipher.Encrypt(name)
	if err != nil {
		return "", "", "", errors.Wrap(err, "encrypt name")
	}
	encPhone, err := r.cipher.Encrypt(phone)
	if err != nil {
		return "", "", "", errors.Wrap(err, "encrypt phone")
	}
	encAddress, err := r.cipher.Encrypt(address)
	if err != nil {
		return "", "", "", errors.Wrap(err, "encrypt address")
	}
	return encName, encPhone, encAddress, nil
}

// scanCustomer hydrate un client depuis une ligne SQL et déchiffre les
// champs personnels
func (r *CustomerRepository) scanCustomer(s scanner) (*domain.Customer, error) {
	var (
		id        uuid.UUID
		email     string
		name      string
		phone     string
		address   string
		createdAt time.Time
		active    bool
	)

	if err := s.Scan(&id, &email, &name, &phone, &address, &createdAt, &active); err != nil {
		return nil, err
	}

	plainName, err := r.cipher.Decrypt(name)
	if err != nil {
		return nil, errors.Wrap(err, "decrypt name")
	}
	plainPhone, err := r.cipher.Decrypt(phone)
	if err != nil {
		return nil, errors.Wrap(err, "decrypt phone")
	}
	plainAddress, err := r.cipher.Decrypt(address)
	if err != nil {
		return nil, errors.Wrap(err, "decrypt address")
	}

	return domain.RehydrateCustomer(id, email, plainName, plainPhone, plainAddress, createdAt, active), nil
}
