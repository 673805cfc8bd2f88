package repository

import (
	"context"

	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
)

// GoodsReceiptRepository define el puerto de persistencia para recepciones (GRN).
type GoodsReceiptRepository interface {
	Create(ctx context.Context, grn *entity.GoodsReceipt) error
	GetWithLines(ctx context.Context, id string) (*entity.GoodsReceipt, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.GoodsReceipt, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
