// Package session хранит пару токенов в персистентном зеркале,
// отдельно от контейнера состояния приложения.
package session

import "vitrine/internal/mirror"

// Store доступ к access/refresh токенам поверх зеркала
type Store struct {
	m mirror.Mirror
}

func NewStore(m mirror.Mirror) *Store {
	return &Store{m: m}
}

// Tokens текущая пара токенов; пустые строки, если токены не сохранены
func (s *Store) Tokens() (access, refresh string) {
	access, _ = s.m.Get(mirror.KeyToken)
	refresh, _ = s.m.Get(mirror.KeyRefreshToken)
	return access, refresh
}

// SetTokens сохраняет оба токена; формат не проверяется, вызывающему доверяем
func (s *Store) SetTokens(access, refresh string) {
	s.m.Set(mirror.KeyToken, access)
	s.m.Set(mirror.KeyRefreshToken, refresh)
}

// Authenticated true, когда сохранён хотя бы access-токен
func (s *Store) Authenticated() bool {
	access, _ := s.m.Get(mirror.KeyToken)
	return access != ""
}

// Clear удаляет только токены, данные покупок не трогает
func (s *Store) Clear() {
	s.m.Remove(mirror.KeyToken)
	s.m.Remove(mirror.KeyRefreshToken)
}
