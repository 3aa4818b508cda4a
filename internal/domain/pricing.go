package domain

// Порог бесплатной доставки и фиксированная плата ниже порога
const (
	FreeDeliveryOver = 500
	DeliveryFee      = 40
)

// Pricing разбивка стоимости корзины
type Pricing struct {
	Subtotal int64 `json:"subtotal"`
	Delivery int64 `json:"delivery"`
	Total    int64 `json:"total"`
}

// Price единственная точка расчёта стоимости корзины.
// Доставка бесплатна начиная с Subtotal = 500, ниже — фиксированные 40.
func Price(items []CartItem) Pricing {
	var subtotal int64
	for _, it := range items {
		subtotal += it.Price * it.Quantity
	}
	delivery := int64(DeliveryFee)
	if subtotal >= FreeDeliveryOver {
		delivery = 0
	}
	return Pricing{
		Subtotal: subtotal,
		Delivery: delivery,
		Total:    subtotal + delivery,
	}
}
