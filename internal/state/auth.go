package state

import (
	"context"

	"vitrine/internal/domain"
)

// SetAuthenticated заменяет пользователя и токен и сохраняет оба токена
// в зеркале. Формат токенов не проверяется.
func (s *Store) SetAuthenticated(user domain.User, access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth.User = &user
	s.auth.Token = access
	s.session.SetTokens(access, refresh)
}

// UpdateUser заменяет только запись пользователя, токен не трогает
func (s *Store) UpdateUser(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth.User = &user
}

// Logout сбрасывает пользователя и токен и стирает всё персистентное
// состояние — и сессию, и данные покупок
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth.User = nil
	s.auth.Token = ""
	s.m.Clear()
}

// IsAuthenticated true при наличии и токена, и пользователя
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth.Token != "" && s.auth.User != nil
}

// FetchProfile трёхфазная загрузка профиля: loading, затем idle с новым
// пользователем либо failed. Неудача принудительно разлогинивает —
// сбрасываются и пользователь, и токен, даже если они были валидны.
func (s *Store) FetchProfile(ctx context.Context) error {
	s.mu.Lock()
	s.auth.Status = StatusLoading
	s.mu.Unlock()

	u, err := s.client.Profile(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.auth.Status = StatusFailed
		s.auth.User = nil
		s.auth.Token = ""
		return err
	}
	s.auth.Status = StatusIdle
	s.auth.User = &u
	return nil
}
