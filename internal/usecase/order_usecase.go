package usecase

import (
	"context"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/merjane-tech/go-backend/pkg/e"
	"github.com/merjane-tech/go-backend/pkg/logger"
)

// OrderUseCase реализует обработку заказа: загрузка, последовательный
// прогон позиций через складские правила, подтверждение.
type OrderUseCase struct {
	orderRepo   OrderRepository
	fulfillment *FulfillmentService
	dbPool      transaction.Transactional
	cacheRepo   CacheRepository
	logger      logger.Logger
	now         func() time.Time
}

func NewOrderUC(
	orderRepo OrderRepository,
	fulfillment *FulfillmentService,
	dbPool transaction.Transactional,
	cacheRepo CacheRepository,
	logger logger.Logger,
	now func() time.Time,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		fulfillment: fulfillment,
		dbPool:      dbPool,
		cacheRepo:   cacheRepo,
		logger:      logger,
		now:         now,
	}
}

// ProcessOrder обрабатывает заказ целиком в одной транзакции.
// Ошибка на любой позиции откатывает весь запрос, частичных успехов нет.
func (u *OrderUseCase) ProcessOrder(ctx context.Context, req *ProcessOrderReq) (*ProcessOrderRes, error) {
	const op = "OrderUseCase.ProcessOrder"

	// Валидация данных
	if req.OrderID <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidOrderID)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, u.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	// Если произошла ошибка, происходит Rollback транзакции
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	order, err := u.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Одна дата обработки на весь заказ
	today := toDate(u.now())
	for _, item := range order.Items {
		if err = u.fulfillment.ProcessProductForOrder(ctx, item, today); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Удаление из кэша старых данных затронутых продуктов
	if len(order.Items) > 0 {
		ids := make([]int64, 0, len(order.Items))
		for _, item := range order.Items {
			ids = append(ids, item.ID)
		}

		if cacheErr := u.cacheRepo.DeleteProducts(ctx, ids); cacheErr != nil {
			u.logger.Warnf("Failed to invalidate product cache: %v", e.Wrap(op, cacheErr))
		}
	}

	return NewProcessOrderRes(order.ID), nil
}
