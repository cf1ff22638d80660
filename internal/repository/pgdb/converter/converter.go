package converter

import (
	"github.com/merjane-tech/go-backend/internal/domain"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
}

type productConverter struct{}

func NewProductConverter() ProductConverter {
	return productConverter{}
}

func (productConverter) ToModel(entity *domain.Product) *ProductModel {
	if entity == nil {
		return nil
	}

	return &ProductModel{
		ID:              entity.ID,
		Name:            entity.Name,
		Available:       entity.Available,
		LeadTime:        entity.LeadTime,
		Type:            entity.Type,
		ExpiryDate:      entity.ExpiryDate,
		SeasonStartDate: entity.SeasonStartDate,
		SeasonEndDate:   entity.SeasonEndDate,
		CreatedAt:       entity.CreatedAt,
		UpdatedAt:       entity.UpdatedAt,
	}
}

func (productConverter) ToEntity(model *ProductModel) *domain.Product {
	if model == nil {
		return nil
	}

	return &domain.Product{
		ID:              model.ID,
		Name:            model.Name,
		Available:       model.Available,
		LeadTime:        model.LeadTime,
		Type:            model.Type,
		ExpiryDate:      model.ExpiryDate,
		SeasonStartDate: model.SeasonStartDate,
		SeasonEndDate:   model.SeasonEndDate,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}
