// Package state контейнер состояния приложения: три независимых слайса
// (аутентификация, покупки, транзиентный UI) за одним явным объектом.
// Каждая мутация синхронно зеркалируется в персистентное хранилище.
package state

import (
	"sync"
	"time"

	"vitrine/internal/api"
	"vitrine/internal/domain"
	"vitrine/internal/mirror"
	"vitrine/internal/session"
)

// AuthStatus фаза асинхронной загрузки профиля
type AuthStatus string

const (
	StatusIdle    AuthStatus = "idle"
	StatusLoading AuthStatus = "loading"
	StatusFailed  AuthStatus = "failed"
)

// AuthState слайс аутентификации
type AuthState struct {
	User   *domain.User
	Token  string
	Status AuthStatus
}

// ShopState слайс покупок; Orders упорядочены от новых к старым
type ShopState struct {
	Items     []domain.CartItem
	Wishlist  []domain.Product
	Addresses []domain.Address
	Orders    []domain.Order
}

// Store единственный источник истины. Создаётся один раз на старте процесса
// и передаётся по ссылке; скрытых глобалов нет. Мутация и запись в зеркало —
// один шаг под общим мьютексом.
type Store struct {
	mu      sync.Mutex
	m       mirror.Mirror
	session *session.Store
	client  *api.Client

	auth AuthState
	shop ShopState

	toast      Toast
	toastGen   uint64
	toastTimer *time.Timer
}

// New гидрирует слайсы из зеркала. Битые или отсутствующие значения
// дают пустые коллекции, запуск не падает.
func New(m mirror.Mirror, client *api.Client) *Store {
	token, _ := m.Get(mirror.KeyToken)
	return &Store{
		m:       m,
		session: session.NewStore(m),
		client:  client,
		auth: AuthState{
			Token:  token,
			Status: StatusIdle,
		},
		shop: ShopState{
			Items:     mirror.ReadJSON[[]domain.CartItem](m, mirror.KeyCart),
			Wishlist:  mirror.ReadJSON[[]domain.Product](m, mirror.KeyWishlist),
			Addresses: mirror.ReadJSON[[]domain.Address](m, mirror.KeyAddresses),
			Orders:    mirror.ReadJSON[[]domain.Order](m, mirror.KeyOrders),
		},
	}
}

// Auth снимок слайса аутентификации
func (s *Store) Auth() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.auth
	if s.auth.User != nil {
		cp := *s.auth.User
		st.User = &cp
	}
	return st
}

// Shop снимок слайса покупок; срезы копируются, чтобы вызывающий
// не мог мутировать состояние в обход экшенов
func (s *Store) Shop() ShopState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ShopState{
		Items:     append([]domain.CartItem(nil), s.shop.Items...),
		Wishlist:  append([]domain.Product(nil), s.shop.Wishlist...),
		Addresses: append([]domain.Address(nil), s.shop.Addresses...),
		Orders:    append([]domain.Order(nil), s.shop.Orders...),
	}
}
