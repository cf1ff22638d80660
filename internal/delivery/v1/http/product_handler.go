package http

import (
	"net/http"

	"github.com/merjane-tech/go-backend/internal/usecase"
	"github.com/merjane-tech/go-backend/pkg/e"
	"github.com/merjane-tech/go-backend/pkg/logger"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

// getProductsInfo
//
//	@Summary		Информация об остатках продуктов
//	@Description	Возвращает текущее состояние продуктов по списку идентификаторов
//	@Tags			products
//	@Produce		json
//	@Param			ids	query		string				true	"Идентификаторы продуктов через запятую"
//	@Success		200	{object}	GetProductsResponse	"Данные продуктов"
//	@Failure		400	{object}	ErrorResponse		"Некорректные идентификаторы"
//	@Router			/products [get]
func (h *ProductHandler) getProductsInfo(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDsParam(r.URL.Query().Get("ids"))
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	res, err := h.productUsecase.GetProductsInfo(r.Context(), usecase.NewGetProductsReq(ids))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewGetProductsResponse(res))
}
