package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/merjane-tech/go-backend/internal/usecase"
	"github.com/merjane-tech/go-backend/pkg/e"
	"github.com/merjane-tech/go-backend/pkg/logger"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUC
	logger       logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase, logger: logger}
}

// processOrder
//
//	@Summary		Обработка заказа
//	@Description	Прогоняет позиции заказа через складские правила и возвращает подтверждение
//	@Tags			orders
//	@Produce		json
//	@Param			orderID	path		int						true	"Идентификатор заказа"
//	@Success		200		{object}	ProcessOrderResponse	"Заказ обработан"
//	@Failure		400		{object}	ErrorResponse			"Некорректный идентификатор"
//	@Failure		404		{object}	ErrorResponse			"Заказ не найден"
//	@Router			/orders/{orderID}/process [post]
func (h *OrderHandler) processOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrInvalidOrderID.Error(), chi.URLParam(r, "orderID"))
		WriteError(w, e.ErrInvalidOrderID)
		return
	}

	res, err := h.orderUsecase.ProcessOrder(r.Context(), usecase.NewProcessOrderReq(orderID))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewProcessOrderResponse(res.OrderID))
}
