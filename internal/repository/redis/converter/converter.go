package converter

import (
	"github.com/merjane-tech/go-backend/internal/usecase"
)

// ProductInfoConverter преобразует ProductInfo между usecase и Redis-моделью.
type ProductInfoConverter interface {
	ToRedisModel(entity *usecase.ProductInfo) *ProductInfoRedisModel
	ToUseCase(model *ProductInfoRedisModel) *usecase.ProductInfo
	ToArrRedisModel(entities []usecase.ProductInfo) []ProductInfoRedisModel
}

type productInfoConverter struct{}

func NewProductInfoConverter() ProductInfoConverter {
	return productInfoConverter{}
}

func (productInfoConverter) ToRedisModel(entity *usecase.ProductInfo) *ProductInfoRedisModel {
	if entity == nil {
		return nil
	}

	return &ProductInfoRedisModel{
		ID:        entity.ID,
		Name:      entity.Name,
		Available: entity.Available,
		Type:      entity.Type,
	}
}

func (productInfoConverter) ToUseCase(model *ProductInfoRedisModel) *usecase.ProductInfo {
	if model == nil {
		return nil
	}

	return &usecase.ProductInfo{
		ID:        model.ID,
		Name:      model.Name,
		Available: model.Available,
		Type:      model.Type,
	}
}

func (c productInfoConverter) ToArrRedisModel(entities []usecase.ProductInfo) []ProductInfoRedisModel {
	models := make([]ProductInfoRedisModel, 0, len(entities))
	for i := range entities {
		models = append(models, *c.ToRedisModel(&entities[i]))
	}

	return models
}
