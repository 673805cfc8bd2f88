package repository

import (
	"context"

	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
)

// SalesInvoiceRepository define el puerto de persistencia para facturas de venta.
type SalesInvoiceRepository interface {
	// Create persiste la factura con sus líneas.
	Create(ctx context.Context, inv *entity.SalesInvoice) error

	// GetWithLines carga la factura y sus líneas; nil si no existe.
	GetWithLines(ctx context.Context, id string) (*entity.SalesInvoice, error)

	List(ctx context.Context, status string, limit, offset int) ([]*entity.SalesInvoice, error)

	// UpdateStatus cambia el estado del documento (draft → finalized → posted).
	UpdateStatus(ctx context.Context, id, status string) error
}
