package usecase

// ORDER USECASE

// ProcessOrderReq — запрос на обработку заказа по идентификатору.
type ProcessOrderReq struct {
	OrderID int64
}

// ProcessOrderRes — подтверждение обработки заказа.
type ProcessOrderRes struct {
	OrderID int64
}

// PRODUCT USECASE

// GetProductsReq — запрос информации о продуктах по их идентификаторам.
type GetProductsReq struct {
	IDs []int64
}

// GetProductsRes — ответ с данными запрошенных продуктов.
type GetProductsRes struct {
	Products         []ProductInfo
	NotFoundProducts []int64
}

// ProductInfo — DTO с информацией о продукте для внешнего использования.
type ProductInfo struct {
	ID        int64
	Name      string
	Available *int32
	Type      string
}

// MAPPERS

func NewProcessOrderReq(orderID int64) *ProcessOrderReq {
	return &ProcessOrderReq{OrderID: orderID}
}

func NewProcessOrderRes(orderID int64) *ProcessOrderRes {
	return &ProcessOrderRes{OrderID: orderID}
}

func NewGetProductsReq(ids []int64) *GetProductsReq {
	return &GetProductsReq{ids}
}

func NewGetProductsRes(products []ProductInfo, notFoundProducts []int64) *GetProductsRes {
	return &GetProductsRes{
		Products:         products,
		NotFoundProducts: notFoundProducts,
	}
}

func NewProductInfo(id int64, name string, available *int32, productType string) ProductInfo {
	return ProductInfo{
		ID:        id,
		Name:      name,
		Available: available,
		Type:      productType,
	}
}
