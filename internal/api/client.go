// Package api клиент удалённого REST API магазина: прозрачно подставляет
// bearer-токен и один раз тихо обновляет сессию при 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"vitrine/internal/domain"
	"vitrine/internal/mirror"
	"vitrine/internal/session"
)

// ErrSessionExpired возвращается после неудачного обновления токена.
// К этому моменту всё локальное состояние уже стёрто; вызывающий обязан
// увести пользователя на экран входа.
var ErrSessionExpired = errors.New("session expired")

// Error ответ API со статусом >= 400
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Body)
}

// Client клиент API. Запросы без сохранённого токена уходят
// неаутентифицированными — клиент никого не блокирует.
type Client struct {
	base    string
	http    *http.Client
	session *session.Store
	store   mirror.Mirror
}

func NewClient(base string, timeout time.Duration, m mirror.Mirror) *Client {
	return &Client{
		base:    base,
		http:    &http.Client{Timeout: timeout},
		session: session.NewStore(m),
		store:   m,
	}
}

// do выполняет запрос и декодирует ответ в out. При 401 и наличии
// refresh-токена запрос повторяется ровно один раз с обновлённым токеном;
// второй 401 уходит вызывающему как есть.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte, contentType string, out any) error {
	u := c.url(path, query)
	access, refresh := c.session.Tokens()

	resp, err := c.send(ctx, method, u, payload, contentType, access)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && refresh != "" {
		resp.Body.Close()
		if err := c.refresh(ctx, refresh); err != nil {
			// сессию восстановить не удалось: полная локальная очистка
			c.store.Clear()
			return ErrSessionExpired
		}
		access, _ = c.session.Tokens()
		resp, err = c.send(ctx, method, u, payload, contentType, access)
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()
	return decode(resp, out)
}

// doJSON сериализует in и выполняет do с application/json
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}
	return c.do(ctx, method, path, query, payload, "application/json", out)
}

// send одиночный HTTP-вызов; тело передаётся срезом, чтобы повтор после
// обновления токена мог отправить его заново
func (c *Client) send(ctx context.Context, method, u string, payload []byte, contentType, token string) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.http.Do(req)
}

// refresh обменивает refresh-токен на новую пару и сохраняет её.
// Вызов идёт без bearer-заголовка, вне общего цикла повторов.
func (c *Client) refresh(ctx context.Context, refreshToken string) error {
	payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return err
	}
	resp, err := c.send(ctx, http.MethodPost, c.url("/auth/refresh-token", nil), payload, "application/json", "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	var s domain.Session
	if err := decode(resp, &s); err != nil {
		return err
	}
	c.session.SetTokens(s.AccessToken, s.RefreshToken)
	return nil
}

func (c *Client) url(path string, query url.Values) string {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func decode(resp *http.Response, out any) error {
	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &Error{Status: resp.StatusCode, Body: string(bytes.TrimSpace(raw))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
