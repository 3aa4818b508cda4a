package state

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine/internal/api"
	"vitrine/internal/domain"
	"vitrine/internal/mirror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newStore(t *testing.T) (*Store, *mirror.Memory) {
	t.Helper()
	m := mirror.NewMemory()
	return New(m, nil), m
}

func product(id, price int64) domain.Product {
	return domain.Product{ID: id, Title: "P", Price: price}
}

func TestAddToCart_MergesByID(t *testing.T) {
	s, _ := newStore(t)
	s.AddToCart(product(1, 10))
	s.AddToCart(product(2, 20))
	s.AddToCart(product(1, 10))

	items := s.Shop().Items
	require.Len(t, items, 2, "повторное добавление не создаёт вторую позицию")
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.Equal(t, int64(2), items[1].ID, "порядок позиций сохраняется")
	assert.Equal(t, int64(1), items[1].Quantity)
}

func TestRemoveFromCart_AbsentIsNoop(t *testing.T) {
	s, _ := newStore(t)
	s.AddToCart(product(1, 10))
	s.RemoveFromCart(99)
	assert.Len(t, s.Shop().Items, 1)
	s.RemoveFromCart(1)
	assert.Empty(t, s.Shop().Items)
}

func TestUpdateQuantity_ClampsAtOne(t *testing.T) {
	s, _ := newStore(t)
	s.AddToCart(product(1, 10))
	s.UpdateQuantity(1, 5)
	assert.Equal(t, int64(6), s.Shop().Items[0].Quantity)

	s.UpdateQuantity(1, -100)
	assert.Equal(t, int64(1), s.Shop().Items[0].Quantity, "ниже 1 не опускается и позиция не удаляется")

	// отсутствующий id — no-op
	s.UpdateQuantity(42, 3)
	assert.Len(t, s.Shop().Items, 1)
}

func TestToggleWishlist_Idempotent(t *testing.T) {
	s, _ := newStore(t)
	s.ToggleWishlist(product(1, 10))
	assert.True(t, s.InWishlist(1))
	s.ToggleWishlist(product(1, 10))
	assert.False(t, s.InWishlist(1))
	assert.Empty(t, s.Shop().Wishlist)
}

func TestAddAddress_SingleDefault(t *testing.T) {
	s, _ := newStore(t)
	s.AddAddress(domain.Address{ID: "1", Name: "Home", IsDefault: true})
	s.AddAddress(domain.Address{ID: "2", Name: "Office", IsDefault: true})
	s.AddAddress(domain.Address{ID: "3", Name: "Other"})

	defaults := 0
	for _, a := range s.Shop().Addresses {
		if a.IsDefault {
			defaults++
			assert.Equal(t, "2", a.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestSetDefaultAddress(t *testing.T) {
	s, _ := newStore(t)
	s.AddAddress(domain.Address{ID: "1", IsDefault: true})
	s.AddAddress(domain.Address{ID: "2"})
	s.SetDefaultAddress("2")

	addrs := s.Shop().Addresses
	assert.False(t, addrs[0].IsDefault)
	assert.True(t, addrs[1].IsDefault)
}

func TestRemoveAddress_DefaultNotReassigned(t *testing.T) {
	// известная особенность: после удаления основного адреса
	// новый основной не назначается
	s, _ := newStore(t)
	s.AddAddress(domain.Address{ID: "1", IsDefault: true})
	s.AddAddress(domain.Address{ID: "2"})
	s.RemoveAddress("1")

	addrs := s.Shop().Addresses
	require.Len(t, addrs, 1)
	assert.False(t, addrs[0].IsDefault)
}

func TestBuildOrder(t *testing.T) {
	s, _ := newStore(t)
	s.AddToCart(product(1, 300))
	s.AddToCart(product(1, 300))

	now := time.UnixMilli(1700000000000)
	o, err := s.BuildOrder("addr-1", now)
	require.NoError(t, err)
	assert.Equal(t, "ORD-1700000000000", o.ID)
	assert.Equal(t, domain.OrderStatusProcessing, o.Status)
	assert.Equal(t, "addr-1", o.AddressID)
	assert.Equal(t, domain.Price(o.Items).Total, o.Total)
	assert.Equal(t, int64(600), o.Total, "600 выше порога, доставка бесплатна")

	// сборка заказа корзину не трогает
	assert.Len(t, s.Shop().Items, 1)
}

func TestBuildOrder_EmptyCartBlocked(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.BuildOrder("addr-1", time.Now())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrder(t *testing.T) {
	s, m := newStore(t)
	s.AddToCart(product(1, 100))
	s.PlaceOrder(domain.Order{ID: "ORD-old", Status: domain.OrderStatusProcessing})

	s.AddToCart(product(2, 50))
	o, err := s.BuildOrder("addr-1", time.Now())
	require.NoError(t, err)
	s.PlaceOrder(o)

	shop := s.Shop()
	assert.Empty(t, shop.Items, "оформление заказа опустошает корзину")
	require.Len(t, shop.Orders, 2)
	assert.Equal(t, o.ID, shop.Orders[0].ID, "новый заказ становится первым")
	assert.Equal(t, "ORD-old", shop.Orders[1].ID)

	_, ok := m.Get(mirror.KeyCart)
	assert.False(t, ok, "ключ корзины удалён из зеркала")
	_, ok = m.Get(mirror.KeyOrders)
	assert.True(t, ok)
}

func TestHydration(t *testing.T) {
	m := mirror.NewMemory()
	first := New(m, nil)
	first.AddToCart(product(1, 10))
	first.ToggleWishlist(product(2, 20))
	first.AddAddress(domain.Address{ID: "1", IsDefault: true})
	first.PlaceOrder(domain.Order{ID: "ORD-1"})

	// новый процесс поднимает состояние из зеркала
	second := New(m, nil)
	shop := second.Shop()
	assert.Empty(t, shop.Items, "корзина была очищена заказом")
	require.Len(t, shop.Wishlist, 1)
	require.Len(t, shop.Addresses, 1)
	require.Len(t, shop.Orders, 1)
	assert.Equal(t, "ORD-1", shop.Orders[0].ID)
}

func TestHydration_MalformedDegradesToEmpty(t *testing.T) {
	m := mirror.NewMemory()
	m.Set(mirror.KeyCart, "{broken json")
	m.Set(mirror.KeyOrders, "42")

	s := New(m, nil)
	assert.Empty(t, s.Shop().Items)
	assert.Empty(t, s.Shop().Orders)
}

func TestHydration_Token(t *testing.T) {
	m := mirror.NewMemory()
	m.Set(mirror.KeyToken, "persisted")
	s := New(m, nil)
	assert.Equal(t, "persisted", s.Auth().Token)
	assert.Equal(t, StatusIdle, s.Auth().Status)
}

func TestSetAuthenticatedAndLogout(t *testing.T) {
	s, m := newStore(t)
	s.AddToCart(product(1, 10))
	s.SetAuthenticated(domain.User{ID: 1, Name: "Ann"}, "a1", "r1")

	assert.True(t, s.IsAuthenticated())
	access, _ := m.Get(mirror.KeyToken)
	refresh, _ := m.Get(mirror.KeyRefreshToken)
	assert.Equal(t, "a1", access)
	assert.Equal(t, "r1", refresh)

	s.Logout()
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.Auth().User)
	for _, key := range []string{mirror.KeyToken, mirror.KeyRefreshToken, mirror.KeyCart} {
		_, ok := m.Get(key)
		assert.False(t, ok, "logout стирает %s", key)
	}
}

func TestUpdateUser_KeepsToken(t *testing.T) {
	s, _ := newStore(t)
	s.SetAuthenticated(domain.User{ID: 1, Name: "Ann"}, "a1", "r1")
	s.UpdateUser(domain.User{ID: 1, Name: "Ann Lee"})

	auth := s.Auth()
	assert.Equal(t, "Ann Lee", auth.User.Name)
	assert.Equal(t, "a1", auth.Token)
}

func profileBackend(t *testing.T, handler gin.HandlerFunc) *api.Client {
	t.Helper()
	r := gin.New()
	r.GET("/auth/profile", handler)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, 5*time.Second, mirror.NewMemory())
}

func TestFetchProfile_Success(t *testing.T) {
	client := profileBackend(t, func(c *gin.Context) {
		c.JSON(http.StatusOK, domain.User{ID: 5, Name: "Ann"})
	})
	s := New(mirror.NewMemory(), client)
	s.SetAuthenticated(domain.User{ID: 5, Name: "Old"}, "a1", "r1")

	require.NoError(t, s.FetchProfile(context.Background()))
	auth := s.Auth()
	assert.Equal(t, StatusIdle, auth.Status)
	assert.Equal(t, "Ann", auth.User.Name)
	assert.Equal(t, "a1", auth.Token)
}

func TestFetchProfile_FailureForcesLogout(t *testing.T) {
	client := profileBackend(t, func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
	})
	s := New(mirror.NewMemory(), client)
	s.SetAuthenticated(domain.User{ID: 5, Name: "Ann"}, "valid-token", "r1")

	err := s.FetchProfile(context.Background())
	require.Error(t, err)
	auth := s.Auth()
	assert.Equal(t, StatusFailed, auth.Status)
	assert.Nil(t, auth.User, "неудача стирает пользователя")
	assert.Empty(t, auth.Token, "и токен, даже если он был валиден")
}

func TestToast_ReplaceAndHide(t *testing.T) {
	s, _ := newStore(t)
	s.ShowToast("saved", ToastSuccess)
	assert.Equal(t, Toast{Message: "saved", Kind: ToastSuccess}, s.CurrentToast())

	// новое уведомление вытесняет старое вместе с его таймером
	s.ShowToast("failed", ToastError)
	assert.Equal(t, Toast{Message: "failed", Kind: ToastError}, s.CurrentToast())

	s.HideToast()
	assert.Equal(t, Toast{}, s.CurrentToast())
}

func TestToast_StaleTimerCannotHideNewerToast(t *testing.T) {
	s, _ := newStore(t)
	s.ShowToast("first", ToastSuccess)
	firstGen := s.toastGen
	s.ShowToast("second", ToastSuccess)

	// сработавший таймер первого уведомления ничего не скрывает
	s.expireToast(firstGen)
	assert.Equal(t, "second", s.CurrentToast().Message)

	// таймер актуального поколения скрывает
	s.expireToast(s.toastGen)
	assert.Equal(t, Toast{}, s.CurrentToast())
}
