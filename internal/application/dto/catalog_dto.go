package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
)

// CreateItemRequest entrada para dar de alta un artículo.
type CreateItemRequest struct {
	ItemCode  string  `json:"item_code"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	ShortName *string `json:"short_name,omitempty"`
	Barcode   *string `json:"barcode,omitempty"`
	UOM       *string `json:"uom,omitempty"`
	Brand     *string `json:"brand,omitempty"`
}

// ItemResponse un artículo del catálogo.
type ItemResponse struct {
	ID        string    `json:"id"`
	ItemCode  string    `json:"item_code"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	ShortName *string   `json:"short_name,omitempty"`
	Barcode   *string   `json:"barcode,omitempty"`
	UOM       *string   `json:"uom,omitempty"`
	Brand     *string   `json:"brand,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToItemResponse convierte la entidad al DTO de respuesta.
func ToItemResponse(it *entity.Item) ItemResponse {
	return ItemResponse{
		ID:        it.ID,
		ItemCode:  it.ItemCode,
		SKU:       it.SKU,
		Name:      it.Name,
		ShortName: it.ShortName,
		Barcode:   it.Barcode,
		UOM:       it.UOM,
		Brand:     it.Brand,
		Active:    it.Active,
		CreatedAt: it.CreatedAt,
	}
}

// CreateLocationRequest entrada para dar de alta una ubicación.
type CreateLocationRequest struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

// LocationResponse una ubicación de stock.
type LocationResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToLocationResponse convierte la entidad al DTO de respuesta.
func ToLocationResponse(loc *entity.StoreLocation) LocationResponse {
	return LocationResponse{
		ID:        loc.ID,
		Code:      loc.Code,
		Name:      loc.Name,
		Address:   loc.Address,
		Phone:     loc.Phone,
		CreatedAt: loc.CreatedAt,
	}
}

// CreateCustomerRequest entrada para dar de alta un cliente.
type CreateCustomerRequest struct {
	CustomerCode string           `json:"customer_code"`
	Name         string           `json:"name"`
	Phone        *string          `json:"phone,omitempty"`
	Email        *string          `json:"email,omitempty"`
	Address      *string          `json:"address,omitempty"`
	CreditLimit  *decimal.Decimal `json:"credit_limit,omitempty"`
	CreditDays   *int             `json:"credit_days,omitempty"`
	Type         *string          `json:"type,omitempty"`
}

// CustomerResponse un cliente del catálogo comercial.
type CustomerResponse struct {
	ID           string           `json:"id"`
	CustomerCode string           `json:"customer_code"`
	Name         string           `json:"name"`
	Phone        *string          `json:"phone,omitempty"`
	Email        *string          `json:"email,omitempty"`
	Address      *string          `json:"address,omitempty"`
	CreditLimit  *decimal.Decimal `json:"credit_limit,omitempty"`
	CreditDays   *int             `json:"credit_days,omitempty"`
	Status       string           `json:"status"`
	Type         *string          `json:"type,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// ToCustomerResponse convierte la entidad al DTO de respuesta.
func ToCustomerResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           c.ID,
		CustomerCode: c.CustomerCode,
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		Address:      c.Address,
		CreditLimit:  c.CreditLimit,
		CreditDays:   c.CreditDays,
		Status:       c.Status,
		Type:         c.Type,
		CreatedAt:    c.CreatedAt,
	}
}

// CreateSupplierRequest entrada para dar de alta un proveedor.
type CreateSupplierRequest struct {
	SupplierCode string  `json:"supplier_code"`
	Name         string  `json:"name"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty"`
	Address      *string `json:"address,omitempty"`
	PaymentTerms *string `json:"payment_terms,omitempty"`
}

// SupplierResponse un proveedor del catálogo de compras.
type SupplierResponse struct {
	ID           string    `json:"id"`
	SupplierCode string    `json:"supplier_code"`
	Name         string    `json:"name"`
	Phone        *string   `json:"phone,omitempty"`
	Email        *string   `json:"email,omitempty"`
	Address      *string   `json:"address,omitempty"`
	PaymentTerms *string   `json:"payment_terms,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToSupplierResponse convierte la entidad al DTO de respuesta.
func ToSupplierResponse(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:           s.ID,
		SupplierCode: s.SupplierCode,
		Name:         s.Name,
		Phone:        s.Phone,
		Email:        s.Email,
		Address:      s.Address,
		PaymentTerms: s.PaymentTerms,
		CreatedAt:    s.CreatedAt,
	}
}
