package devserver

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"vitrine/internal/domain"
)

var (
	// ErrNotFound сущность не найдена
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken такой email уже зарегистрирован
	ErrEmailTaken = errors.New("email already registered")
	// ErrBadCredentials неверная пара email/пароль
	ErrBadCredentials = errors.New("bad credentials")
	// ErrBadToken неизвестный или отозванный токен
	ErrBadToken = errors.New("bad token")
)

// Store объединённое in-memory хранилище дев-бэкенда: каталог, аккаунты
// и выданные сессии. Каталог засеивается при создании.
type Store struct {
	mu         sync.RWMutex
	nextUserID int64

	usersByID    map[int64]domain.User
	usersByEmail map[string]int64
	passwords    map[int64]string

	// токены одноразовые: refresh ротируется при каждом обновлении
	access  map[string]int64
	refresh map[string]int64

	products   []domain.Product
	categories []domain.Category

	files map[string][]byte
}

func NewStore() *Store {
	s := &Store{
		nextUserID:   1,
		usersByID:    make(map[int64]domain.User),
		usersByEmail: make(map[string]int64),
		passwords:    make(map[int64]string),
		access:       make(map[string]int64),
		refresh:      make(map[string]int64),
		files:        make(map[string][]byte),
	}
	s.seed()
	return s
}

// CreateUser регистрирует аккаунт; email уникален
func (s *Store) CreateUser(name, email, password, avatar string) (domain.User, error) {
	if name == "" || email == "" || password == "" {
		return domain.User{}, ErrBadCredentials
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.usersByEmail[email]; ok {
		return domain.User{}, ErrEmailTaken
	}
	u := domain.User{
		ID:     s.nextUserID,
		Email:  email,
		Name:   name,
		Role:   "customer",
		Avatar: avatar,
	}
	s.nextUserID++
	s.usersByID[u.ID] = u
	s.usersByEmail[email] = u.ID
	s.passwords[u.ID] = password
	return u, nil
}

// Authenticate проверяет пароль и выдаёт новую пару токенов
func (s *Store) Authenticate(email, password string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.usersByEmail[email]
	if !ok || s.passwords[id] != password {
		return domain.Session{}, ErrBadCredentials
	}
	return s.issue(id), nil
}

// Refresh ротирует пару: старый refresh-токен гаснет, выдаётся новая пара
func (s *Store) Refresh(refreshToken string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.refresh[refreshToken]
	if !ok {
		return domain.Session{}, ErrBadToken
	}
	delete(s.refresh, refreshToken)
	return s.issue(id), nil
}

// issue вызывается только под мьютексом
func (s *Store) issue(userID int64) domain.Session {
	sess := domain.Session{
		AccessToken:  uuid.NewString(),
		RefreshToken: uuid.NewString(),
	}
	s.access[sess.AccessToken] = userID
	s.refresh[sess.RefreshToken] = userID
	return sess
}

// UserByAccess владелец access-токена
func (s *Store) UserByAccess(token string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.access[token]
	if !ok {
		return domain.User{}, ErrBadToken
	}
	return s.usersByID[id], nil
}

// RevokeAccess гасит access-токен; refresh остаётся живым.
// Используется тестами и для эмуляции истечения сессии.
func (s *Store) RevokeAccess(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.access, token)
}

// UpdateUser заменяет изменяемые поля и возвращает запись целиком
func (s *Store) UpdateUser(id int64, name, avatar string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.usersByID[id]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	if name != "" {
		u.Name = name
	}
	if avatar != "" {
		u.Avatar = avatar
	}
	s.usersByID[id] = u
	return u, nil
}

// ProductFilter параметры выборки каталога
type ProductFilter struct {
	Title      string
	CategoryID int64
	PriceMin   *int64
	PriceMax   *int64
	Limit      int
	Offset     int
}

// Products страница каталога в порядке добавления товаров
func (s *Store) Products(f ProductFilter) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]domain.Product, 0)
	for _, p := range s.products {
		if !containsIgnoreCase(p.Title, f.Title) {
			continue
		}
		if f.CategoryID > 0 && p.Category.ID != f.CategoryID {
			continue
		}
		if f.PriceMin != nil && p.Price < *f.PriceMin {
			continue
		}
		if f.PriceMax != nil && p.Price > *f.PriceMax {
			continue
		}
		matched = append(matched, p)
	}
	if f.Offset >= len(matched) {
		return []domain.Product{}
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched
}

// Product товар по id
func (s *Store) Product(id int64) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrNotFound
}

// Related товары той же категории, сам товар исключается
func (s *Store) Related(id int64) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var base *domain.Product
	for i := range s.products {
		if s.products[i].ID == id {
			base = &s.products[i]
			break
		}
	}
	if base == nil {
		return nil, ErrNotFound
	}
	out := make([]domain.Product, 0)
	for _, p := range s.products {
		if p.ID != id && p.Category.ID == base.Category.ID {
			out = append(out, p)
		}
	}
	return out, nil
}

// Categories полный список категорий
func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Category(nil), s.categories...)
}

// SaveFile кладёт загруженный файл под сгенерированным именем
func (s *Store) SaveFile(ext string, data []byte) string {
	name := uuid.NewString() + ext
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = data
	return name
}

// File содержимое ранее загруженного файла
func (s *Store) File(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[name]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
