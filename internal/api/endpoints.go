package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"vitrine/internal/domain"
)

// Login обменивает учётные данные на пару токенов; сам токены не сохраняет —
// это делает слайс аутентификации при SetAuthenticated
func (c *Client) Login(ctx context.Context, email, password string) (domain.Session, error) {
	var s domain.Session
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	}, &s)
	return s, err
}

// Profile возвращает профиль владельца текущего токена
func (c *Client) Profile(ctx context.Context) (domain.User, error) {
	var u domain.User
	err := c.doJSON(ctx, http.MethodGet, "/auth/profile", nil, nil, &u)
	return u, err
}

// Register создаёт аккаунт. Пустой avatar заменяется сгенерированным
// по имени, как делает форма регистрации.
func (c *Client) Register(ctx context.Context, name, email, password, avatar string) (domain.User, error) {
	if avatar == "" {
		avatar = "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(name)
	}
	var u domain.User
	err := c.doJSON(ctx, http.MethodPost, "/users", nil, map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"avatar":   avatar,
	}, &u)
	return u, err
}

// UserUpdate поля, которые профиль позволяет менять
type UserUpdate struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// UpdateUser заменяет профиль и возвращает новую запись целиком
func (c *Client) UpdateUser(ctx context.Context, id int64, upd UserUpdate) (domain.User, error) {
	var u domain.User
	err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), nil, upd, &u)
	return u, err
}

// ProductFilter параметры выборки каталога
type ProductFilter struct {
	Title      string
	CategoryID int64
	PriceMin   int64
	PriceMax   int64
	Limit      int
	Offset     int
}

func (f ProductFilter) query() url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(f.Limit))
	q.Set("offset", strconv.Itoa(f.Offset))
	if f.Title != "" {
		q.Set("title", f.Title)
	}
	if f.CategoryID > 0 {
		q.Set("categoryId", strconv.FormatInt(f.CategoryID, 10))
	}
	if f.PriceMin > 0 {
		q.Set("price_min", strconv.FormatInt(f.PriceMin, 10))
	}
	if f.PriceMax > 0 {
		q.Set("price_max", strconv.FormatInt(f.PriceMax, 10))
	}
	return q
}

// Products страница каталога по фильтру
func (c *Client) Products(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	var list []domain.Product
	err := c.doJSON(ctx, http.MethodGet, "/products", f.query(), nil, &list)
	return list, err
}

// Product карточка товара
func (c *Client) Product(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil, &p)
	return p, err
}

// Related похожие товары для карточки
func (c *Client) Related(ctx context.Context, id int64) ([]domain.Product, error) {
	var list []domain.Product
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/products/%d/related", id), nil, nil, &list)
	return list, err
}

// Categories полный список категорий
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var list []domain.Category
	err := c.doJSON(ctx, http.MethodGet, "/categories", nil, nil, &list)
	return list, err
}

// Upload грузит файл multipart-запросом и возвращает публичный URL.
// Тело собирается в память, чтобы повтор после обновления токена был возможен.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	var res struct {
		Location string `json:"location"`
	}
	if err := c.do(ctx, http.MethodPost, "/files/upload", nil, buf.Bytes(), mw.FormDataContentType(), &res); err != nil {
		return "", err
	}
	return res.Location, nil
}
