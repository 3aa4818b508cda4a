package domain

import "time"

// Category справочная сущность каталога, только для чтения
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Slug  string `json:"slug,omitempty"`
}

// Product товар каталога; после загрузки из API клиент его не изменяет
type Product struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Price       int64    `json:"price"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Images      []string `json:"images"`
	Slug        string   `json:"slug,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Discount    int64    `json:"discount,omitempty"`
}

// CartItem позиция корзины: товар плюс количество (всегда >= 1)
type CartItem struct {
	Product
	Quantity int64 `json:"quantity"`
}

// User профиль покупателя; заменяется целиком, частичных патчей нет
type User struct {
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

// Address адрес доставки; не более одного адреса с IsDefault=true
type Address struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	IsDefault bool   `json:"isDefault"`
}

// OrderStatus тип статуса заказа
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// Order неизменяемый снимок корзины на момент оформления.
// Статус клиент сам не переводит: при создании всегда Processing.
type Order struct {
	ID        string      `json:"id"`
	Date      time.Time   `json:"date"`
	Items     []CartItem  `json:"items"`
	Total     int64       `json:"total"`
	Status    OrderStatus `json:"status"`
	AddressID string      `json:"addressId"`
}

// Session пара токенов; отсутствие обоих означает «не аутентифицирован»
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
