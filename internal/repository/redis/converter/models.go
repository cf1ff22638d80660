package converter

// ProductInfoRedisModel представляет закэшированную информацию о продукте.
type ProductInfoRedisModel struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Available *int32 `json:"available"`
	Type      string `json:"type"`
}
