package domain

import "time"

// Order описывает заказ с набором позиций.
// Позиции ссылаются на те же сущности Product, что и хранилище.
type Order struct {
	ID        int64
	Items     []*Product
	CreatedAt time.Time
}

func NewOrder(id int64, items []*Product) *Order {
	return &Order{
		ID:    id,
		Items: items,
	}
}
