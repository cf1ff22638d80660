package usecase

import (
	"context"
	"time"
)

// Notifier отправляет исходящие уведомления о состоянии позиций заказа.
// Доставка fire-and-forget: ядро не читает ничего, кроме ошибки отправки.
type Notifier interface {
	SendDelayNotification(ctx context.Context, leadTime int32, productName string) error
	SendOutOfStockNotification(ctx context.Context, productName string) error
	SendExpirationNotification(ctx context.Context, productName string, expiryDate *time.Time) error
}
