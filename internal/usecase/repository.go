package usecase

import (
	"context"

	"github.com/merjane-tech/go-backend/internal/domain"
)

type ProductRepository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProductsInfo(ctx context.Context, ids []int64) ([]ProductInfo, error)
}

type OrderRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error)
	SetProducts(ctx context.Context, products []ProductInfo) error
	DeleteProducts(ctx context.Context, ids []int64) error
}
