package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/merjane-tech/go-backend/internal/domain"
	"github.com/merjane-tech/go-backend/pkg/e"
)

// nopLogger — заглушка логгера для тестов.
type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type fakeProductStore struct {
	saves   []*domain.Product
	saveErr error
	infos   []ProductInfo
	infoErr error
}

func (f *fakeProductStore) Save(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saves = append(f.saves, p)
	return p, nil
}

func (f *fakeProductStore) GetProductsInfo(ctx context.Context, ids []int64) ([]ProductInfo, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return f.infos, nil
}

type delayCall struct {
	leadTime int32
	name     string
}

type expirationCall struct {
	name   string
	expiry *time.Time
}

type fakeNotifier struct {
	delays      []delayCall
	outOfStock  []string
	expirations []expirationCall
	err         error
}

func (f *fakeNotifier) SendDelayNotification(ctx context.Context, leadTime int32, productName string) error {
	if f.err != nil {
		return f.err
	}
	f.delays = append(f.delays, delayCall{leadTime: leadTime, name: productName})
	return nil
}

func (f *fakeNotifier) SendOutOfStockNotification(ctx context.Context, productName string) error {
	if f.err != nil {
		return f.err
	}
	f.outOfStock = append(f.outOfStock, productName)
	return nil
}

func (f *fakeNotifier) SendExpirationNotification(ctx context.Context, productName string, expiryDate *time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.expirations = append(f.expirations, expirationCall{name: productName, expiry: expiryDate})
	return nil
}

func i32(v int32) *int32 { return &v }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

var testToday = date(2026, time.January, 15)

func newTestService() (*FulfillmentService, *fakeProductStore, *fakeNotifier) {
	store := &fakeProductStore{}
	notifier := &fakeNotifier{}
	return NewFulfillmentService(store, notifier, nopLogger{}), store, notifier
}

func assertNoNotifications(t *testing.T, n *fakeNotifier) {
	t.Helper()
	if len(n.delays)+len(n.outOfStock)+len(n.expirations) != 0 {
		t.Fatalf("expected no notifications, got delays=%d outOfStock=%d expirations=%d",
			len(n.delays), len(n.outOfStock), len(n.expirations))
	}
}

func TestProcessNormal(t *testing.T) {
	t.Run("in stock decrements by one", func(t *testing.T) {
		svc, store, notifier := newTestService()
		p := &domain.Product{ID: 1, Name: "USB Cable", Type: string(domain.TypeNormal), Available: i32(10)}

		if err := svc.ProcessProductForOrder(context.Background(), p, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Available == nil || *p.Available != 9 {
			t.Fatalf("expected available 9, got %v", p.Available)
		}
		if len(store.saves) != 1 {
			t.Fatalf("expected 1 save, got %d", len(store.saves))
		}
		assertNoNotifications(t, notifier)
	})

	t.Run("out of stock with lead time sends delay", func(t *testing.T) {
		svc, store, notifier := newTestService()
		p := &domain.Product{ID: 2, Name: "USB Dongle", Type: string(domain.TypeNormal), Available: i32(0), LeadTime: i32(7)}

		if err := svc.ProcessProductForOrder(context.Background(), p, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *p.Available != 0 {
			t.Fatalf("expected available to stay 0, got %d", *p.Available)
		}
		if len(notifier.delays) != 1 || notifier.delays[0].leadTime != 7 || notifier.delays[0].name != "USB Dongle" {
			t.Fatalf("expected one delay(7, USB Dongle), got %+v", notifier.delays)
		}
		if len(store.saves) != 1 {
			t.Fatalf("expected 1 save, got %d", len(store.saves))
		}
	})

	t.Run("unknown stock treated as zero", func(t *testing.T) {
		svc, _, notifier := newTestService()
		p := &domain.Product{ID: 3, Name: "Mystery Box", Type: string(domain.TypeNormal), LeadTime: i32(3)}

		if err := svc.ProcessProductForOrder(context.Background(), p, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notifier.delays) != 1 || notifier.delays[0].leadTime != 3 {
			t.Fatalf("expected one delay(3), got %+v", notifier.delays)
		}
	})

	t.Run("out of stock without lead time does nothing", func(t *testing.T) {
		svc, store, notifier := newTestService()
		p := &domain.Product{ID: 4, Name: "Discontinued", Type: string(domain.TypeNormal), Available: i32(0)}

		if err := svc.ProcessProductForOrder(context.Background(), p, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.saves) != 0 {
			t.Fatalf("expected no saves, got %d", len(store.saves))
		}
		assertNoNotifications(t, notifier)
	})
}

func TestProcessSeasonal(t *testing.T) {
	t.Run("in season with stock decrements", func(t *testing.T) {
		svc, store, notifier := newTestService()
		p := &domain.Product{
			ID: 10, Name: "Watermelon", Type: string(domain.TypeSeasonal),
			Available:       i32(5),
			SeasonStartDate: datePtr(2026, time.January, 1),
			SeasonEndDate:   datePtr(2026, time.March, 1),
		}

		if err := svc.ProcessProductForOrder(context.Background(), p, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *p.Available != 4 {
			t.Fatalf("expected available 4, got %d", *p.Available)
		}
		if len(store.saves) != 1 {
			t.Fatalf("expected 1 save, got %d", len(store.saves))
		}
		assertNoNotifications(t, notifier)
	})

	t.Run("replenishment past season end forces zero stock", func(t *testing.T) {
		svc, store, notifier := newTestService()
		p := &domain.Product{
			ID: 11, Name: "Grapes", Type: string(domain.TypeSeasonal),
			Available:       i32(0),
			LeadTime:        i32(20),
			SeasonStartDate: datePtr(2026, time.January, 14),
			SeasonEndDate:   datePtr(2026, time.January, 20),
		}

		if err := svc.ProcessProductForOrder(context.Background(), p, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notifier.outOfStock) != 1 || notifier.outOfStock[0] != "Grapes" {
			t.Fatalf("expected one out-of-stock(Grapes), got %+v", notifier.outOfStock)
		}
		if len(notifier.delays) != 0 {
			t.Fatalf("expected no delay notifications, got %+v", notifier.delays)
		}
		if p.Available == nil || *p.Available != 0 {
			t.Fatalf("expected available forced to 0, got %v", p.Available)
		}
		if len(store.saves) != 1 {
			t.Fatalf("expected 1 save, got %d", len(store.saves))
		}
	})

	t.Run("infeasible replenishment overrides positive stock", func(t *testing.T) {
		svc, _, notifier := newTestService()
		p := &domain.Product{
			ID: 12, Name: "Cherries", Type: string(domain.TypeSeasonal),
			Available:       i32(3),
			LeadTime:        i32(20),
			SeasonStartDate: datePtr(2026, time.January, 17),
			SeasonEndDate:   datePtr(2026, time.January, 18),
		}

		if err := svc.ProcessProductForOrder(context.Background(), p, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notifier.outOfStock) != 1 {
			t.Fatalf("expected one out-of-stock, got %+v", notifier.outOfStock)
		}
		if *p.Available != 0 {
			t.Fatalf("expected available forced to 0, got %d", *p.Available)
		}
	})

	t.Run("season not started keeps stock untouched", func(t *testing.T) {
		svc, store, notifier := newTestService()
		p := &domain.Product{
			ID: 13, Name: "Pumpkin", Type: string(domain.TypeSeasonal),
			Available:       i32(2),
			SeasonStartDate: datePtr(2026, time.February, 14),
			SeasonEndDate:   datePtr(2026, time.June, 1),
		}

		if err := svc.ProcessProductForOrder(context.Background(), p, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notifier.outOfStock) != 1 || notifier.outOfStock[0] != "Pumpkin" {
			t.Fatalf("expected one out-of-stock(Pumpkin), got %+v", notifier.outOfStock)
		}
		if len(notifier.delays) != 0 {
			t.Fatalf("expected no delay notifications, got %+v", notifier.delays)
		}
		if *p.Available != 2 {
			t.Fatalf("expected available untouched (2), got %d", *p.Available)
		}
		if len(store.saves) != 1 {
			t.Fatalf("expected 1 save, got %d", len(store.saves))
		}
	})

	t.Run("feasible delay inside season window", func(t *testing.T) {
		svc, store, notifier := newTestService()
		p := &domain.Product{
			ID: 14, Name: "Oranges", Type: string(domain.TypeSeasonal),
			Available:       i32(0),
			LeadTime:        i32(5),
			SeasonStartDate: datePtr(2026, time.January, 1),
			SeasonEndDate:   datePtr(2026, time.March, 1),
		}

		if err := svc.ProcessProductForOrder(context.Background(), p, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notifier.delays) != 1 || notifier.delays[0].leadTime != 5 {
			t.Fatalf("expected one delay(5), got %+v", notifier.delays)
		}
		if len(store.saves) != 1 {
			t.Fatalf("expected 1 save, got %d", len(store.saves))
		}
	})

	t.Run("feasible window with zero lead time does not persist", func(t *testing.T) {
		svc, store, notifier := newTestService()
		p := &domain.Product{
			ID: 15, Name: "Lemons", Type: string(domain.TypeSeasonal),
			Available:       i32(0),
			SeasonStartDate: datePtr(2026, time.January, 1),
			SeasonEndDate:   datePtr(2026, time.March, 1),
		}

		if err := svc.ProcessProductForOrder(context.Background(), p, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.saves) != 0 {
			t.Fatalf("expected no saves, got %d", len(store.saves))
		}
		assertNoNotifications(t, notifier)
	})

	t.Run("missing season dates falls back to delay rule", func(t *testing.T) {
		svc, _, notifier := newTestService()
		p := &domain.Product{
			ID: 16, Name: "Figs", Type: string(domain.TypeSeasonal),
			Available: i32(0),
			LeadTime:  i32(4),
		}

		if err := svc.ProcessProductForOrder(context.Background(), p, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notifier.delays) != 1 || notifier.delays[0].leadTime != 4 {
			t.Fatalf("expected one delay(4), got %+v", notifier.delays)
		}
	})

	t.Run("season boundaries are exclusive", func(t *testing.T) {
		// В день начала сезона продукт ещё не в сезоне
		svc, _, notifier := newTestService()
		p := &domain.Product{
			ID: 17, Name: "Melon", Type: string(domain.TypeSeasonal),
			Available:       i32(5),
			SeasonStartDate: datePtr(2026, time.January, 15),
			SeasonEndDate:   datePtr(2026, time.March, 1),
		}

		if err := svc.ProcessProductForOrder(context.Background(), p, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *p.Available != 5 {
			t.Fatalf("expected no decrement on season start day, got %d", *p.Available)
		}
		assertNoNotifications(t, notifier)
	})
}

func TestProcessExpirable(t *testing.T) {
	t.Run("fresh product decrements", func(t *testing.T) {
		svc, _, notifier := newTestService()
		p := &domain.Product{
			ID: 20, Name: "Milk", Type: string(domain.TypeExpirable),
			Available:  i32(3),
			ExpiryDate: datePtr(2026, time.January, 20),
		}

		if err := svc.ProcessProductForOrder(context.Background(), p, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *p.Available != 2 {
			t.Fatalf("expected available 2, got %d", *p.Available)
		}
		assertNoNotifications(t, notifier)
	})

	t.Run("expired product zeroes stock and notifies", func(t *testing.T) {
		svc, store, notifier := newTestService()
		expiry := datePtr(2026, time.January, 14)
		p := &domain.Product{
			ID: 21, Name: "Yogurt", Type: string(domain.TypeExpirable),
			Available:  i32(6),
			ExpiryDate: expiry,
		}

		if err := svc.ProcessProductForOrder(context.Background(), p, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *p.Available != 0 {
			t.Fatalf("expected available forced to 0, got %d", *p.Available)
		}
		if len(notifier.expirations) != 1 {
			t.Fatalf("expected one expiration, got %d", len(notifier.expirations))
		}
		if notifier.expirations[0].name != "Yogurt" || !notifier.expirations[0].expiry.Equal(*expiry) {
			t.Fatalf("expected expiration(Yogurt, %v), got %+v", expiry, notifier.expirations[0])
		}
		if len(store.saves) != 1 {
			t.Fatalf("expected 1 save, got %d", len(store.saves))
		}
	})

	t.Run("expiry on today is treated as expired", func(t *testing.T) {
		svc, _, notifier := newTestService()
		p := &domain.Product{
			ID: 22, Name: "Cream", Type: string(domain.TypeExpirable),
			Available:  i32(2),
			ExpiryDate: datePtr(2026, time.January, 15),
		}

		if err := svc.ProcessProductForOrder(context.Background(), p, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notifier.expirations) != 1 {
			t.Fatalf("expected one expiration, got %d", len(notifier.expirations))
		}
	})

	t.Run("missing expiry date with stock is unavailable", func(t *testing.T) {
		svc, _, notifier := newTestService()
		p := &domain.Product{
			ID: 23, Name: "Cheese", Type: string(domain.TypeExpirable),
			Available: i32(4),
		}

		if err := svc.ProcessProductForOrder(context.Background(), p, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notifier.expirations) != 1 || notifier.expirations[0].expiry != nil {
			t.Fatalf("expected one expiration with nil expiry, got %+v", notifier.expirations)
		}
		if *p.Available != 0 {
			t.Fatalf("expected available forced to 0, got %d", *p.Available)
		}
	})

	t.Run("terminal notification repeats on rerun", func(t *testing.T) {
		svc, _, notifier := newTestService()
		p := &domain.Product{
			ID: 24, Name: "Butter", Type: string(domain.TypeExpirable),
			Available:  i32(0),
			ExpiryDate: datePtr(2026, time.January, 1),
		}

		for i := 0; i < 2; i++ {
			if err := svc.ProcessProductForOrder(context.Background(), p, testToday); err != nil {
				t.Fatalf("unexpected error on run %d: %v", i, err)
			}
		}
		if len(notifier.expirations) != 2 {
			t.Fatalf("expected 2 expirations, got %d", len(notifier.expirations))
		}
	})
}

func TestProcessUnknownType(t *testing.T) {
	svc, store, notifier := newTestService()
	p := &domain.Product{ID: 30, Name: "Weird", Type: "FLASH_SALE", Available: i32(5)}

	err := svc.ProcessProductForOrder(context.Background(), p, testToday)
	if !errors.Is(err, e.ErrUnknownProductType) {
		t.Fatalf("expected ErrUnknownProductType, got %v", err)
	}
	if len(store.saves) != 0 {
		t.Fatalf("expected no saves, got %d", len(store.saves))
	}
	assertNoNotifications(t, notifier)
}

func TestFulfillmentErrorsPropagate(t *testing.T) {
	t.Run("save failure", func(t *testing.T) {
		store := &fakeProductStore{saveErr: errors.New("db down")}
		svc := NewFulfillmentService(store, &fakeNotifier{}, nopLogger{})
		p := &domain.Product{ID: 40, Name: "Cable", Type: string(domain.TypeNormal), Available: i32(1)}

		if err := svc.ProcessProductForOrder(context.Background(), p, testToday); err == nil {
			t.Fatalf("expected save error to propagate")
		}
	})

	t.Run("notifier failure", func(t *testing.T) {
		notifier := &fakeNotifier{err: errors.New("broker down")}
		svc := NewFulfillmentService(&fakeProductStore{}, notifier, nopLogger{})
		p := &domain.Product{ID: 41, Name: "Dongle", Type: string(domain.TypeNormal), Available: i32(0), LeadTime: i32(7)}

		if err := svc.ProcessProductForOrder(context.Background(), p, testToday); err == nil {
			t.Fatalf("expected notifier error to propagate")
		}
	})
}
