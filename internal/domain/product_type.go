package domain

import (
	"fmt"

	"github.com/merjane-tech/go-backend/pkg/e"
)

// ProductType описывает тип продукта.
// Закрытое множество: NORMAL, SEASONAL, EXPIRABLE.
type ProductType string

const (
	TypeNormal    ProductType = "NORMAL"
	TypeSeasonal  ProductType = "SEASONAL"
	TypeExpirable ProductType = "EXPIRABLE"
)

// ParseProductType преобразует строковое значение из БД в тип продукта.
// Неизвестное значение — невосстановимая ошибка данных.
func ParseProductType(raw string) (ProductType, error) {
	switch ProductType(raw) {
	case TypeNormal, TypeSeasonal, TypeExpirable:
		return ProductType(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", e.ErrUnknownProductType, raw)
	}
}
