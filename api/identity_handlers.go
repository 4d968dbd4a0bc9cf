package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	identityapp "tienda/internal/identity/application"
	identitydomain "tienda/internal/identity/domain"
)

// IdentityHandlers handlers d'authentification, comptes et clients
type IdentityHandlers struct {
	auth      *identityapp.AuthService
	users     *identityapp.UserService
	customers *identityapp.CustomerService
	log       *logrus.Entry
}

// NewIdentityHandlers crée les handlers d'identité
func NewIdentityHandlers(
	auth *identityapp.AuthService,
	users *identityapp.UserService,
	customers *identityapp.CustomerService,
	log *logrus.Logger,
) *IdentityHandlers {
	return &IdentityHandlers{
		auth:      auth,
		users:     users,
		customers: customers,
		log:       log.WithField("component", "api.identity"),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login handler pour POST /api/auth/login
func (h *IdentityHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

// Me handler pour GET /api/auth/me
func (h *IdentityHandlers) Me(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	if principal == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing identity"})
		return
	}

	user, err := h.users.Get(principal.UserID.String())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

type registerUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// RegisterUser handler pour POST /api/usuarios
func (h *IdentityHandlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	user, err := h.users.Register(identityapp.RegisterUserInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserDTO(user))
}

// ListUsers handler pour GET /api/usuarios
func (h *IdentityHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTOs(users))
}

// GetUser handler pour GET /api/usuarios/{id}
func (h *IdentityHandlers) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

type changePasswordRequest struct {
	Password string `json:"password"`
}

// ChangePassword handler pour PATCH /api/usuarios/{id}/password
func (h *IdentityHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.users.ChangePassword(mux.Vars(r)["id"], req.Password); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

// ChangeRole handler pour PATCH /api/usuarios/{id}/role
func (h *IdentityHandlers) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var req changeRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.users.ChangeRole(mux.Vars(r)["id"], req.Role); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// DeleteUser handler pour DELETE /api/usuarios/{id}
func (h *IdentityHandlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.SoftDelete(mux.Vars(r)["id"]); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type createCustomerRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CreateCustomer handler pour POST /api/clientes
func (h *IdentityHandlers) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	customer, err := h.customers.Create(identityapp.CreateCustomerInput{
		Email:   req.Email,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCustomerDTO(customer))
}

// ListCustomers handler pour GET /api/clientes
func (h *IdentityHandlers) ListCustomers(w http.ResponseWriter, r *http.Request) {
	if email := r.URL.Query().Get("email"); email != "" {
		customer, err := h.customers.GetByEmail(email)
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, toCustomerDTO(customer))
		return
	}

	customers, err := h.customers.List()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerDTOs(customers))
}

// GetCustomer handler pour GET /api/clientes/{id}
func (h *IdentityHandlers) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customers.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerDTO(customer))
}

type updateCustomerRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// UpdateCustomer handler pour PUT /api/clientes/{id}
func (h *IdentityHandlers) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req updateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	customer, err := h.customers.Update(mux.Vars(r)["id"], identitydomain.CustomerUpdate{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerDTO(customer))
}

// DeleteCustomer handler pour DELETE /api/clientes/{id}
func (h *IdentityHandlers) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.customers.SoftDelete(mux.Vars(r)["id"]); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
