package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/catalog"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/dto"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
)

// CatalogHandler maneja los maestros: artículos, ubicaciones, clientes y proveedores.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ── Items ────────────────────────────────────────────────────────────────────

// CreateItem godoc
// @Summary      Dar de alta un artículo
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "artículo"
// @Success      201   {object}  dto.ItemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/catalog/items [post]
func (h *CatalogHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item := &entity.Item{
		ItemCode:  in.ItemCode,
		SKU:       in.SKU,
		Name:      in.Name,
		ShortName: in.ShortName,
		Barcode:   in.Barcode,
		UOM:       in.UOM,
		Brand:     in.Brand,
	}
	if err := h.uc.CreateItem(c.Context(), item); err != nil {
		return h.writeError(c, err, "item_code o sku ya existe")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToItemResponse(item))
}

// ListItems godoc
// @Summary      Listar artículos
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Buscar por nombre, código o barcode"
// @Param        limit   query  int     false  "Límite"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/catalog/items [get]
func (h *CatalogHandler) ListItems(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	list, total, err := h.uc.ListItems(c.Context(), c.Query("search"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, dto.ToItemResponse(it))
	}
	return c.JSON(fiber.Map{
		"items": out,
		"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// GetItem godoc
// @Summary      Consultar artículo
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Item ID"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/items/{id} [get]
func (h *CatalogHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return h.writeError(c, err, "artículo no encontrado")
	}
	return c.JSON(dto.ToItemResponse(item))
}

// ── Locations ────────────────────────────────────────────────────────────────

// CreateLocation godoc
// @Summary      Dar de alta una ubicación
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "ubicación"
// @Success      201   {object}  dto.LocationResponse
// @Router       /api/catalog/locations [post]
func (h *CatalogHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loc := &entity.StoreLocation{
		Code:    in.Code,
		Name:    in.Name,
		Address: in.Address,
		Phone:   in.Phone,
	}
	if err := h.uc.CreateLocation(c.Context(), loc); err != nil {
		return h.writeError(c, err, "code ya existe")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToLocationResponse(loc))
}

// ListLocations godoc
// @Summary      Listar ubicaciones
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LocationResponse
// @Router       /api/catalog/locations [get]
func (h *CatalogHandler) ListLocations(c *fiber.Ctx) error {
	list, err := h.uc.ListLocations(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, loc := range list {
		out = append(out, dto.ToLocationResponse(loc))
	}
	return c.JSON(out)
}

// ── Customers ────────────────────────────────────────────────────────────────

// CreateCustomer godoc
// @Summary      Dar de alta un cliente
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Router       /api/catalog/customers [post]
func (h *CatalogHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cust := &entity.Customer{
		CustomerCode: in.CustomerCode,
		Name:         in.Name,
		Phone:        in.Phone,
		Email:        in.Email,
		Address:      in.Address,
		CreditLimit:  in.CreditLimit,
		CreditDays:   in.CreditDays,
		Type:         in.Type,
	}
	if err := h.uc.CreateCustomer(c.Context(), cust); err != nil {
		return h.writeError(c, err, "customer_code ya existe")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToCustomerResponse(cust))
}

// ListCustomers godoc
// @Summary      Listar clientes
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Buscar por nombre o código"
// @Param        limit   query  int     false  "Límite"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/catalog/customers [get]
func (h *CatalogHandler) ListCustomers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	list, total, err := h.uc.ListCustomers(c.Context(), c.Query("search"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, cust := range list {
		out = append(out, dto.ToCustomerResponse(cust))
	}
	return c.JSON(fiber.Map{
		"customers": out,
		"page":      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// ── Suppliers ────────────────────────────────────────────────────────────────

// CreateSupplier godoc
// @Summary      Dar de alta un proveedor
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Router       /api/catalog/suppliers [post]
func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sup := &entity.Supplier{
		SupplierCode: in.SupplierCode,
		Name:         in.Name,
		Phone:        in.Phone,
		Email:        in.Email,
		Address:      in.Address,
		PaymentTerms: in.PaymentTerms,
	}
	if err := h.uc.CreateSupplier(c.Context(), sup); err != nil {
		return h.writeError(c, err, "supplier_code ya existe")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToSupplierResponse(sup))
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Buscar por nombre o código"
// @Param        limit   query  int     false  "Límite"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/catalog/suppliers [get]
func (h *CatalogHandler) ListSuppliers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	list, total, err := h.uc.ListSuppliers(c.Context(), c.Query("search"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, sup := range list {
		out = append(out, dto.ToSupplierResponse(sup))
	}
	return c.JSON(fiber.Map{
		"suppliers": out,
		"page":      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

func (h *CatalogHandler) writeError(c *fiber.Ctx, err error, msg string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msg})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: msg})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
