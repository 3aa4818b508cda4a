package domain

import (
	"strconv"
	"time"
)

// NewOrderID идентификатор заказа, генерируется на клиенте из времени создания
func NewOrderID(t time.Time) string {
	return "ORD-" + strconv.FormatInt(t.UnixMilli(), 10)
}

// NewAddressID идентификатор адреса, тоже производный от времени создания
func NewAddressID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
