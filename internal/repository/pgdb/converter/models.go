package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID              int64      `db:"id"`
	Name            string     `db:"name"`
	Available       *int32     `db:"available"`
	LeadTime        *int32     `db:"lead_time"`
	Type            string     `db:"type"`
	ExpiryDate      *time.Time `db:"expiry_date"`
	SeasonStartDate *time.Time `db:"season_start_date"`
	SeasonEndDate   *time.Time `db:"season_end_date"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at"`
}
