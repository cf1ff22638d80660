package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки обработки заказов
	ErrOrderNotFound      = fmt.Errorf("order not found")
	ErrUnknownProductType = fmt.Errorf("unknown product type")
	ErrProductNotFound    = fmt.Errorf("product not found")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrInvalidOrderID   = fmt.Errorf("invalid order id")
	ErrInvalidProductID = fmt.Errorf("invalid product id")
	ErrNoProducts       = fmt.Errorf("no product ids provided")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
