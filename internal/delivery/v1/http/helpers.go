package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/merjane-tech/go-backend/internal/usecase"
	"github.com/merjane-tech/go-backend/pkg/e"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ProcessOrderResponse — подтверждение обработки заказа.
type ProcessOrderResponse struct {
	OrderID int64 `json:"order_id"`
}

// GetProductsResponse — состояние запрошенных продуктов.
type GetProductsResponse struct {
	Products []ProductInfoResponse `json:"products"`
	NotFound []int64               `json:"not_found"`
}

type ProductInfoResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Available *int32 `json:"available"`
	Type      string `json:"type"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func NewProcessOrderResponse(orderID int64) *ProcessOrderResponse {
	return &ProcessOrderResponse{OrderID: orderID}
}

func NewGetProductsResponse(res *usecase.GetProductsRes) *GetProductsResponse {
	products := make([]ProductInfoResponse, 0, len(res.Products))
	for _, pr := range res.Products {
		products = append(products, ProductInfoResponse{
			ID:        pr.ID,
			Name:      pr.Name,
			Available: pr.Available,
			Type:      pr.Type,
		})
	}

	return &GetProductsResponse{
		Products: products,
		NotFound: res.NotFoundProducts,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrOrderNotFound):
		return http.StatusNotFound, e.ErrOrderNotFound.Error()
	case errors.Is(err, e.ErrInvalidOrderID):
		return http.StatusBadRequest, e.ErrInvalidOrderID.Error()
	case errors.Is(err, e.ErrInvalidProductID):
		return http.StatusBadRequest, e.ErrInvalidProductID.Error()
	case errors.Is(err, e.ErrNoProducts):
		return http.StatusBadRequest, e.ErrNoProducts.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parseIDsParam разбирает список идентификаторов из query-параметра вида "1,2,3".
func parseIDsParam(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, e.ErrNoProducts
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			return nil, e.Wrap(part, e.ErrInvalidProductID)
		}

		ids = append(ids, id)
	}

	return ids, nil
}
