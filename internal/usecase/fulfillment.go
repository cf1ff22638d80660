package usecase

import (
	"context"
	"time"

	"github.com/merjane-tech/go-backend/internal/domain"
	"github.com/merjane-tech/go-backend/pkg/e"
	"github.com/merjane-tech/go-backend/pkg/logger"
)

// FulfillmentService реализует складские правила обработки позиции заказа.
// В зависимости от типа продукта позиция списывается со склада, помечается
// ожидающей пополнения или становится недоступной; побочный эффект —
// не более одного уведомления на позицию.
type FulfillmentService struct {
	productRepo ProductRepository
	notifier    Notifier
	logger      logger.Logger
}

func NewFulfillmentService(productRepo ProductRepository, notifier Notifier, logger logger.Logger) *FulfillmentService {
	return &FulfillmentService{
		productRepo: productRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// ProcessProductForOrder применяет правила к одной позиции заказа.
// today — дата обработки запроса (полночь UTC), одна на весь заказ.
// Неизвестный тип продукта — невосстановимая ошибка данных.
func (s *FulfillmentService) ProcessProductForOrder(ctx context.Context, p *domain.Product, today time.Time) error {
	const op = "FulfillmentService.ProcessProductForOrder"

	productType, err := p.ProductType()
	if err != nil {
		return e.Wrap(op, err)
	}

	switch productType {
	case domain.TypeNormal:
		return s.processNormal(ctx, p)
	case domain.TypeSeasonal:
		return s.processSeasonal(ctx, p, today)
	case domain.TypeExpirable:
		return s.processExpirable(ctx, p, today)
	}

	return e.Wrap(op, e.ErrUnknownProductType)
}

// processNormal списывает единицу со склада, а при её отсутствии
// уведомляет о задержке, если известен срок пополнения.
func (s *FulfillmentService) processNormal(ctx context.Context, p *domain.Product) error {
	const op = "FulfillmentService.processNormal"

	if p.HasStock() {
		return s.decrementAndSave(ctx, p)
	}

	if p.LeadTime != nil && *p.LeadTime > 0 {
		if err := s.notifyDelay(ctx, *p.LeadTime, p); err != nil {
			return e.Wrap(op, err)
		}
	}

	return nil
}

// processSeasonal продаёт позицию только внутри сезонного окна,
// иначе применяет сезонные правила недоступности.
func (s *FulfillmentService) processSeasonal(ctx context.Context, p *domain.Product, today time.Time) error {
	if p.InSeason(today) && p.HasStock() {
		return s.decrementAndSave(ctx, p)
	}

	return s.handleSeasonalProduct(ctx, p, today)
}

// processExpirable продаёт позицию, пока есть остаток и не истёк срок
// годности, иначе позиция считается недоступной.
func (s *FulfillmentService) processExpirable(ctx context.Context, p *domain.Product, today time.Time) error {
	if p.HasStock() && p.NotExpired(today) {
		return s.decrementAndSave(ctx, p)
	}

	return s.handleExpiredProduct(ctx, p)
}

// handleSeasonalProduct — правила недоступности сезонного продукта:
//   - пополнение придёт позже конца сезона: уведомление out-of-stock,
//     остаток принудительно обнуляется;
//   - сезон ещё не начался: уведомление out-of-stock, остаток не трогаем;
//   - иначе задержка приемлема: уведомление о задержке при ненулевом сроке.
func (s *FulfillmentService) handleSeasonalProduct(ctx context.Context, p *domain.Product, today time.Time) error {
	const op = "FulfillmentService.handleSeasonalProduct"

	// Если даты сезона не заданы, откатываемся к правилу задержки
	if p.SeasonStartDate == nil || p.SeasonEndDate == nil {
		if p.LeadTime != nil && *p.LeadTime > 0 {
			if err := s.notifyDelay(ctx, *p.LeadTime, p); err != nil {
				return e.Wrap(op, err)
			}
		}
		return nil
	}

	var leadTime int32
	if p.LeadTime != nil {
		leadTime = *p.LeadTime
	}

	if today.AddDate(0, 0, int(leadTime)).After(*p.SeasonEndDate) {
		if err := s.notifier.SendOutOfStockNotification(ctx, p.Name); err != nil {
			return e.Wrap(op, err)
		}

		zero := int32(0)
		p.Available = &zero
		if _, err := s.productRepo.Save(ctx, p); err != nil {
			return e.Wrap(op, err)
		}
		return nil
	}

	if p.SeasonStartDate.After(today) {
		if err := s.notifier.SendOutOfStockNotification(ctx, p.Name); err != nil {
			return e.Wrap(op, err)
		}

		if _, err := s.productRepo.Save(ctx, p); err != nil {
			return e.Wrap(op, err)
		}
		return nil
	}

	if leadTime > 0 {
		if err := s.notifyDelay(ctx, leadTime, p); err != nil {
			return e.Wrap(op, err)
		}
	}

	// Исходное поведение: на этом листе запись не сохраняется
	return nil
}

// handleExpiredProduct помечает позицию недоступной: уведомление об
// истечении срока годности и принудительное обнуление остатка.
func (s *FulfillmentService) handleExpiredProduct(ctx context.Context, p *domain.Product) error {
	const op = "FulfillmentService.handleExpiredProduct"

	if err := s.notifier.SendExpirationNotification(ctx, p.Name, p.ExpiryDate); err != nil {
		return e.Wrap(op, err)
	}

	zero := int32(0)
	p.Available = &zero
	if _, err := s.productRepo.Save(ctx, p); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// decrementAndSave списывает одну единицу остатка и сохраняет продукт.
// Вызывается только при положительном остатке, ниже нуля не уходит.
func (s *FulfillmentService) decrementAndSave(ctx context.Context, p *domain.Product) error {
	const op = "FulfillmentService.decrementAndSave"

	next := *p.Available - 1
	p.Available = &next
	if _, err := s.productRepo.Save(ctx, p); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// notifyDelay сохраняет срок пополнения и отправляет уведомление о задержке.
func (s *FulfillmentService) notifyDelay(ctx context.Context, leadTime int32, p *domain.Product) error {
	const op = "FulfillmentService.notifyDelay"

	p.LeadTime = &leadTime
	if _, err := s.productRepo.Save(ctx, p); err != nil {
		return e.Wrap(op, err)
	}

	return s.notifier.SendDelayNotification(ctx, leadTime, p.Name)
}

// toDate усекает момент времени до календарной даты (полночь UTC).
func toDate(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
