package domain

import "time"

// Product описывает продукт на складе.
// Опциональные поля хранятся указателями: отсутствие значения
// отличается от нуля.
type Product struct {
	ID   int64
	Name string
	// Available — количество доступных единиц; nil означает неизвестный остаток.
	Available *int32
	// LeadTime — срок пополнения в днях.
	LeadTime *int32
	// Type хранится строкой, типобезопасный доступ — через ProductType().
	Type            string
	ExpiryDate      *time.Time
	SeasonStartDate *time.Time
	SeasonEndDate   *time.Time
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

func NewProduct(name string, productType ProductType) *Product {
	return &Product{
		Name: name,
		Type: string(productType),
	}
}

// ProductType возвращает типобезопасное значение типа продукта.
func (p *Product) ProductType() (ProductType, error) {
	return ParseProductType(p.Type)
}

// HasStock сообщает, есть ли продукт в наличии.
// Неизвестный остаток (nil) трактуется как отсутствие.
func (p *Product) HasStock() bool {
	return p.Available != nil && *p.Available > 0
}

// InSeason сообщает, идёт ли сезон продукта на дату today.
// Границы сезона строгие: в день начала и в день окончания сезон не идёт.
func (p *Product) InSeason(today time.Time) bool {
	return p.SeasonStartDate != nil &&
		p.SeasonEndDate != nil &&
		today.After(*p.SeasonStartDate) &&
		today.Before(*p.SeasonEndDate)
}

// NotExpired сообщает, что срок годности задан и строго позже today.
func (p *Product) NotExpired(today time.Time) bool {
	return p.ExpiryDate != nil && p.ExpiryDate.After(today)
}
