package mirror

import (
	"encoding/json"
	"log"
)

// Ключи, под которыми клиент хранит долговечные данные.
// Каждое значение — JSON-сериализованная коллекция или строка токена.
const (
	KeyToken        = "token"
	KeyRefreshToken = "refreshToken"
	KeyCart         = "cart"
	KeyWishlist     = "wishlist"
	KeyAddresses    = "addresses"
	KeyOrders       = "orders"
)

// Mirror синхронное строковое KV-хранилище, зеркалирующее состояние клиента.
// Запись выполняется до возврата из мутации; операции не возвращают ошибок —
// как и у браузерного localStorage, на который рассчитан контракт.
type Mirror interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
	Clear()
}

// ReadJSON читает и декодирует значение по ключу.
// Отсутствующее или битое значение даёт нулевое значение типа:
// повреждённое зеркало никогда не роняет запуск.
func ReadJSON[T any](m Mirror, key string) T {
	var v T
	raw, ok := m.Get(key)
	if !ok {
		return v
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		log.Printf("mirror: malformed value under %q, using empty: %v", key, err)
		var zero T
		return zero
	}
	return v
}

// WriteJSON сериализует значение и кладёт его под ключ
func WriteJSON(m Mirror, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("mirror: encode %q: %v", key, err)
		return
	}
	m.Set(key, string(data))
}
