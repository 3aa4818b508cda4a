package state

import (
	"errors"
	"time"

	"vitrine/internal/domain"
	"vitrine/internal/mirror"
)

// ErrEmptyCart возвращается при попытке собрать заказ из пустой корзины
var ErrEmptyCart = errors.New("empty cart")

// AddToCart добавляет товар: существующая позиция получает +1 к количеству,
// новая дописывается в конец с количеством 1. Порядок позиций сохраняется.
func (s *Store) AddToCart(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.shop.Items {
		if s.shop.Items[i].ID == p.ID {
			s.shop.Items[i].Quantity++
			s.persistCart()
			return
		}
	}
	s.shop.Items = append(s.shop.Items, domain.CartItem{Product: p, Quantity: 1})
	s.persistCart()
}

// RemoveFromCart убирает позицию; отсутствующий id — не ошибка
func (s *Store) RemoveFromCart(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.shop.Items[:0]
	for _, it := range s.shop.Items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	s.shop.Items = out
	s.persistCart()
}

// UpdateQuantity прибавляет delta к количеству, но не даёт опуститься
// ниже 1 — позиция никогда не удаляется автоматически
func (s *Store) UpdateQuantity(id int64, delta int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.shop.Items {
		if s.shop.Items[i].ID == id {
			q := s.shop.Items[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			s.shop.Items[i].Quantity = q
			break
		}
	}
	s.persistCart()
}

// ClearCart опустошает корзину и удаляет её ключ из зеркала
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shop.Items = nil
	s.m.Remove(mirror.KeyCart)
}

// ToggleWishlist переключает товар в избранном; дублей по id не бывает
func (s *Store) ToggleWishlist(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.shop.Wishlist {
		if s.shop.Wishlist[i].ID == p.ID {
			s.shop.Wishlist = append(s.shop.Wishlist[:i], s.shop.Wishlist[i+1:]...)
			s.persistWishlist()
			return
		}
	}
	s.shop.Wishlist = append(s.shop.Wishlist, p)
	s.persistWishlist()
}

// InWishlist проверка по id для отрисовки кнопки избранного
func (s *Store) InWishlist(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.shop.Wishlist {
		if p.ID == id {
			return true
		}
	}
	return false
}

// AddAddress дописывает адрес; если новый помечен основным, флаг снимается
// со всех остальных — основной адрес всегда не более одного
func (s *Store) AddAddress(a domain.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.IsDefault {
		for i := range s.shop.Addresses {
			s.shop.Addresses[i].IsDefault = false
		}
	}
	s.shop.Addresses = append(s.shop.Addresses, a)
	s.persistAddresses()
}

// RemoveAddress удаляет адрес. Если удалён основной, новый основной
// не назначается — коллекция остаётся без основного адреса.
func (s *Store) RemoveAddress(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.shop.Addresses[:0]
	for _, a := range s.shop.Addresses {
		if a.ID != id {
			out = append(out, a)
		}
	}
	s.shop.Addresses = out
	s.persistAddresses()
}

// SetDefaultAddress делает адрес основным, снимая флаг со всех прочих
func (s *Store) SetDefaultAddress(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.shop.Addresses {
		s.shop.Addresses[i].IsDefault = s.shop.Addresses[i].ID == id
	}
	s.persistAddresses()
}

// BuildOrder собирает заказ из текущей корзины: снимок позиций, итог по
// domain.Price, клиентский id и дата. Состояние не меняет.
func (s *Store) BuildOrder(addressID string, now time.Time) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.shop.Items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}
	items := append([]domain.CartItem(nil), s.shop.Items...)
	return domain.Order{
		ID:        domain.NewOrderID(now),
		Date:      now,
		Items:     items,
		Total:     domain.Price(items).Total,
		Status:    domain.OrderStatusProcessing,
		AddressID: addressID,
	}, nil
}

// PlaceOrder атомарно ставит готовый заказ в начало истории и опустошает
// корзину: история переписывается в зеркале, ключ корзины удаляется
func (s *Store) PlaceOrder(o domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shop.Orders = append([]domain.Order{o}, s.shop.Orders...)
	s.shop.Items = nil
	mirror.WriteJSON(s.m, mirror.KeyOrders, s.shop.Orders)
	s.m.Remove(mirror.KeyCart)
}

// persist-хелперы вызываются только под мьютексом

func (s *Store) persistCart() {
	mirror.WriteJSON(s.m, mirror.KeyCart, s.shop.Items)
}

func (s *Store) persistWishlist() {
	mirror.WriteJSON(s.m, mirror.KeyWishlist, s.shop.Wishlist)
}

func (s *Store) persistAddresses() {
	mirror.WriteJSON(s.m, mirror.KeyAddresses, s.shop.Addresses)
}
