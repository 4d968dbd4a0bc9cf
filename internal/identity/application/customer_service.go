package application

import (
	"time"

	"github.com/sirupsen/logrus"

	"tienda/internal/apperr"
	"tienda/internal/identity/domain"
	"tienda/internal/identity/infrastructure"
	shareddomain "tienda/internal/shared/domain"
)

// CustomerService gestion des fiches clients
type CustomerService struct {
	customers *infrastructure.CustomerRepository
	log       *logrus.Entry
}

// NewCustomerService crée une nouvelle instance de CustomerService
func NewCustomerService(customers *infrastructure.CustomerRepository, log *logrus.Logger) *CustomerService {
	return &CustomerService{
		customers: customers,
		log:       log.WithField("component", "customers"),
	}
}

// CreateCustomerInput données de création d'une fiche client
type CreateCustomerInput struct {
	Email   string
	Name    string
	Phone   string
	Address string
}

// Create enregistre une fiche client
func (s *CustomerService) Create(in CreateCustomerInput) (*domain.Customer, error) {
	customer, err := domain.NewCustomer(
		s.customers.NextID(), in.Email, in.Name, in.Phone, in.Address, time.Now().UTC(),
	)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}

	if err := s.customers.Insert(customer); err != nil {
		return nil, err
	}

	s.log.WithField("customer_id", customer.ID()).Info("customer created")
	return customer, nil
}

// Get retourne une fiche par identifiant
func (s *CustomerService) Get(rawID string) (*domain.Customer, error) {
	id, err := shareddomain.ParseID(rawID, "customer")
	if err != nil {
		return nil, err
	}
	return s.customers.FindByID(id)
}

// GetByEmail retourne une fiche par email
func (s *CustomerService) GetByEmail(email string) (*domain.Customer, error) {
	return s.customers.FindByEmail(email)
}

// List retourne toutes les fiches actives
func (s *CustomerService) List() ([]*domain.Customer, error) {
	return s.customers.FindAll()
}

// Update applique une mise à jour partielle
func (s *CustomerService) Update(rawID string, update domain.CustomerUpdate) (*domain.Customer, error) {
	id, err := shareddomain.ParseID(rawID, "customer")
	if err != nil {
		return nil, err
	}

	if err := s.customers.Update(id, update); err != nil {
		return nil, err
	}
	return s.customers.FindByID(id)
}

// SoftDelete désactive une fiche client
func (s *CustomerService) SoftDelete(rawID string) error {
	id, err := shareddomain.ParseID(rawID, "customer")
	if err != nil {
		return err
	}

	if err := s.customers.SoftDelete(id); err != nil {
		return err
	}

	s.log.WithField("customer_id", id).Info("customer deactivated")
	return nil
}
