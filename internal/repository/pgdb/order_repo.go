package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/merjane-tech/go-backend/internal/domain"
	"github.com/merjane-tech/go-backend/internal/repository/pgdb/converter"
	"github.com/merjane-tech/go-backend/pkg/e"
	"github.com/merjane-tech/go-backend/pkg/tr"
)

// OrderRepo реализует репозиторий заказов поверх PostgreSQL.
type OrderRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *OrderRepo {
	return &OrderRepo{
		pool: pool,
		conv: conv,
	}
}

// FindByID загружает заказ вместе с его позициями в транзакции запроса.
// Отсутствие заказа — e.ErrOrderNotFound.
func (o *OrderRepo) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	order := &domain.Order{}
	query := `SELECT id, created_at FROM orders WHERE id = $1;`
	if err := tx.QueryRow(ctx, query, id).Scan(&order.ID, &order.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	itemsQuery := `
		SELECT
			p.id, p.name, p.available, p.lead_time, p.type,
			p.expiry_date, p.season_start_date, p.season_end_date,
			p.created_at, p.updated_at
		FROM products p
		JOIN order_items oi ON oi.product_id = p.id
		WHERE oi.order_id = $1;
	`

	rows, err := tx.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	items := make([]*domain.Product, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Available, &model.LeadTime, &model.Type,
			&model.ExpiryDate, &model.SeasonStartDate, &model.SeasonEndDate,
			&model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		items = append(items, o.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	order.Items = items
	return order, nil
}
