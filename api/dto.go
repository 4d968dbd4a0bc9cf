package api

import (
	"time"

	catalogdomain "tienda/internal/catalog/domain"
	identitydomain "tienda/internal/identity/domain"
	ordersdomain "tienda/internal/orders/domain"
	salesdomain "tienda/internal/sales/domain"
)

// articleDTO représentation JSON d'un article
type articleDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	CategoryID  string    `json:"category_id"`
	ImageURL    string    `json:"image_url,omitempty"`
	Featured    bool      `json:"featured"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
}

func toArticleDTO(a *catalogdomain.Article) articleDTO {
	return articleDTO{
		ID:          a.ID().String(),
		Name:        a.Name(),
		Description: a.Description(),
		Price:       a.Price().Amount(),
		Stock:       a.Stock().Value(),
		CategoryID:  a.CategoryID().String(),
		ImageURL:    a.ImageURL(),
		Featured:    a.Featured(),
		InStock:     a.IsInStock(),
		CreatedAt:   a.CreatedAt(),
	}
}

func toArticleDTOs(articles []*catalogdomain.Article) []articleDTO {
	dtos := make([]articleDTO, 0, len(articles))
	for _, a := range articles {
		dtos = append(dtos, toArticleDTO(a))
	}
	return dtos
}

// categoryDTO représentation JSON d'une catégorie
type categoryDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func toCategoryDTO(c *catalogdomain.Category) categoryDTO {
	return categoryDTO{
		ID:          c.ID().String(),
		Name:        c.Name(),
		Description: c.Description(),
		CreatedAt:   c.CreatedAt(),
	}
}

func toCategoryDTOs(categories []*catalogdomain.Category) []categoryDTO {
	dtos := make([]categoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, toCategoryDTO(c))
	}
	return dtos
}

// lineItemDTO représentation JSON d'une ligne de commande
type lineItemDTO struct {
	ArticleID string  `json:"article_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// orderDTO représentation JSON d'une commande
type orderDTO struct {
	ID              string        `json:"id"`
	OwnerID         string        `json:"owner_id"`
	Items           []lineItemDTO `json:"items"`
	Total           float64       `json:"total"`
	Currency        string        `json:"currency"`
	Status          string        `json:"status"`
	DeliveryAddress string        `json:"delivery_address,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func toOrderDTO(o *ordersdomain.Order) orderDTO {
	items := make([]lineItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, lineItemDTO{
			ArticleID: item.ArticleID().String(),
			Quantity:  item.Quantity().Value(),
			UnitPrice: item.UnitPrice().Amount(),
			Subtotal:  item.Subtotal().Amount(),
		})
	}

	return orderDTO{
		ID:              o.ID().String(),
		OwnerID:         o.OwnerID().String(),
		Items:           items,
		Total:           o.Total().Amount(),
		Currency:        o.Total().Currency(),
		Status:          string(o.Status()),
		DeliveryAddress: o.DeliveryAddress(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
}

func toOrderDTOs(orders []*ordersdomain.Order) []orderDTO {
	dtos := make([]orderDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, toOrderDTO(o))
	}
	return dtos
}

// saleDTO représentation JSON d'une vente
type saleDTO struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	OwnerID   string    `json:"owner_id"`
	Total     float64   `json:"total"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

func toSaleDTO(s *salesdomain.Sale) saleDTO {
	return saleDTO{
		ID:        s.ID().String(),
		OrderID:   s.OrderID().String(),
		OwnerID:   s.OwnerID().String(),
		Total:     s.Total().Amount(),
		Currency:  s.Total().Currency(),
		CreatedAt: s.CreatedAt(),
	}
}

func toSaleDTOs(sales []*salesdomain.Sale) []saleDTO {
	dtos := make([]saleDTO, 0, len(sales))
	for _, s := range sales {
		dtos = append(dtos, toSaleDTO(s))
	}
	return dtos
}

// userDTO représentation JSON d'un compte, sans le hash
type userDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserDTO(u *identitydomain.User) userDTO {
	return userDTO{
		ID:        u.ID().String(),
		Email:     u.Email(),
		Role:      string(u.Role()),
		CreatedAt: u.CreatedAt(),
	}
}

func toUserDTOs(users []*identitydomain.User) []userDTO {
	dtos := make([]userDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, toUserDTO(u))
	}
	return dtos
}

// customerDTO représentation JSON d'une fiche client, champs déchiffrés
type customerDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toCustomerDTO(c *identitydomain.Customer) customerDTO {
	return customerDTO{
		ID:        c.ID().String(),
		Email:     c.Email(),
		Name:      c.Name(),
		Phone:     c.Phone(),
		Address:   c.Address(),
		CreatedAt: c.CreatedAt(),
	}
}

func toCustomerDTOs(customers []*identitydomain.Customer) []customerDTO {
	dtos := make([]customerDTO, 0, len(customers))
	for _, c := range customers {
		dtos = append(dtos, toCustomerDTO(c))
	}
	return dtos
}
