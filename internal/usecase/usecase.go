package usecase

import "context"

type OrderUC interface {
	ProcessOrder(ctx context.Context, req *ProcessOrderReq) (*ProcessOrderRes, error)
}

type ProductUC interface {
	GetProductsInfo(ctx context.Context, req *GetProductsReq) (*GetProductsRes, error)
}
