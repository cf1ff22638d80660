package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/merjane-tech/go-backend/internal/domain"
	"github.com/merjane-tech/go-backend/internal/repository/pgdb/converter"
	"github.com/merjane-tech/go-backend/internal/usecase"
	"github.com/merjane-tech/go-backend/pkg/e"
	"github.com/merjane-tech/go-backend/pkg/tr"
)

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// Save идемпотентно перезаписывает изменяемое состояние продукта по идентификатору.
// Выполняется в транзакции запроса.
func (p *ProductRepo) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET
			available = $2,
			lead_time = $3,
			expiry_date = $4,
			season_start_date = $5,
			season_end_date = $6,
			updated_at = NOW()
		WHERE id = $1
		RETURNING
			id, name, available, lead_time, type,
			expiry_date, season_start_date, season_end_date,
			created_at, updated_at;
	`

	var model converter.ProductModel
	err = tx.QueryRow(ctx, query,
		product.ID,
		product.Available,
		product.LeadTime,
		product.ExpiryDate,
		product.SeasonStartDate,
		product.SeasonEndDate,
	).Scan(
		&model.ID, &model.Name, &model.Available, &model.LeadTime, &model.Type,
		&model.ExpiryDate, &model.SeasonStartDate, &model.SeasonEndDate,
		&model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// GetProductsInfo возвращает информацию о продуктах по их идентификаторам.
func (p *ProductRepo) GetProductsInfo(ctx context.Context, ids []int64) ([]usecase.ProductInfo, error) {
	query := `
		SELECT id, name, available, type
		FROM products
		WHERE id = ANY($1)
	`

	rows, err := p.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.ProductInfo, 0)
	for rows.Next() {
		var product usecase.ProductInfo
		if err := rows.Scan(&product.ID, &product.Name, &product.Available, &product.Type); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, product)
	}

	return result, nil
}
