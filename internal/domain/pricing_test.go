package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func item(id, price, qty int64) CartItem {
	return CartItem{Product: Product{ID: id, Price: price}, Quantity: qty}
}

func TestPrice_FreeDeliveryThreshold(t *testing.T) {
	// ровно на пороге доставка уже бесплатна
	p := Price([]CartItem{item(1, 250, 2)})
	assert.Equal(t, int64(500), p.Subtotal)
	assert.Equal(t, int64(0), p.Delivery)
	assert.Equal(t, int64(500), p.Total)

	// на единицу ниже порога — фиксированная плата
	p = Price([]CartItem{item(1, 499, 1)})
	assert.Equal(t, int64(499), p.Subtotal)
	assert.Equal(t, int64(40), p.Delivery)
	assert.Equal(t, int64(539), p.Total)
}

func TestPrice_EmptyCart(t *testing.T) {
	p := Price(nil)
	assert.Equal(t, int64(0), p.Subtotal)
	assert.Equal(t, int64(40), p.Delivery)
}

func TestPrice_SumsQuantities(t *testing.T) {
	p := Price([]CartItem{item(1, 10, 3), item(2, 25, 2)})
	assert.Equal(t, int64(80), p.Subtotal)
	assert.Equal(t, int64(120), p.Total)
}

func TestNewIDs(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	assert.Equal(t, "ORD-1700000000000", NewOrderID(at))
	assert.Equal(t, "1700000000000", NewAddressID(at))
}

func TestSortProducts(t *testing.T) {
	in := []Product{{ID: 1, Price: 30}, {ID: 2, Price: 10}, {ID: 3, Price: 30}, {ID: 4, Price: 20}}

	asc := SortProducts(in, SortLowHigh)
	assert.Equal(t, []int64{2, 4, 1, 3}, ids(asc), "stable: ties keep API order")

	desc := SortProducts(in, SortHighLow)
	assert.Equal(t, []int64{1, 3, 4, 2}, ids(desc))

	same := SortProducts(in, SortNone)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(same))
	// исходный срез не изменился
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(in))
}

func ids(ps []Product) []int64 {
	out := make([]int64, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}
