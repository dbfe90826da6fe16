package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/repository"
	"beautyadmin/pkg/metrics"
)

const (
	serviceName = "admin-service"
	backendName = "http"
)

// Client - клиент реального REST API админки.
// Реализует те же репозитории, что и хранилище в памяти, поэтому сервисы не знают, с чем работают
type Client struct {
	baseURL    string
	httpClient *http.Client
	authToken  string // токен пробрасывается в заголовке Authorization как есть
}

// NewClient создает клиент; timeout ограничивает каждый запрос целиком
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetAuthToken устанавливает bearer-токен для всех последующих запросов
func (c *Client) SetAuthToken(token string) {
	c.authToken = token
}

// do выполняет запрос и декодирует ответ в out (если out != nil).
// kind нужен, чтобы 404 превратился в правильную sentinel-ошибку
func (c *Client) do(ctx context.Context, kind entity.Kind, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp, kind)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError восстанавливает доменную ошибку по коду из тела ответа
func decodeError(resp *http.Response, kind entity.Kind) error {
	var body entity.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch body.Error {
	case entity.ErrCodeNotFound:
		return repository.NotFound(kind)
	case entity.ErrCodeAlreadyExists:
		return fmt.Errorf("%s: %w", body.Message, repository.ErrDuplicateKey)
	case entity.ErrCodePaymentMethodActive:
		return repository.ErrPaymentMethodActive
	case entity.ErrCodeVariantExists:
		return repository.ErrVariantExists
	case entity.ErrCodeInvalidValidity:
		return repository.ErrInvalidValidity
	}

	if resp.StatusCode == http.StatusNotFound {
		return repository.NotFound(kind)
	}
	if body.Message != "" {
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, body.Message)
	}
	return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}

type deleteResponse struct {
	Message string       `json:"message"`
	Data    []entity.Ref `json:"data"`
}

func track(op metrics.StoreOperation, kind entity.Kind) func(*error) {
	timer := metrics.NewStoreTimer(serviceName, backendName, op, string(kind))
	return func(err *error) {
		timer.Done(*err)
	}
}

func fetch[T any](ctx context.Context, c *Client, kind entity.Kind, path string) (*T, error) {
	var out T
	if err := c.do(ctx, kind, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func fetchList[T any](ctx context.Context, c *Client, kind entity.Kind, path string) ([]T, error) {
	var out entity.ListResponse[T]
	if err := c.do(ctx, kind, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Items == nil {
		return []T{}, nil
	}
	return out.Items, nil
}

func send[T any](ctx context.Context, c *Client, kind entity.Kind, method, path string, body interface{}) (*T, error) {
	var out T
	if err := c.do(ctx, kind, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func remove(ctx context.Context, c *Client, kind entity.Kind, path string) ([]entity.Ref, error) {
	var out deleteResponse
	if err := c.do(ctx, kind, http.MethodDelete, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}

func keyPath(format, key string) string {
	return fmt.Sprintf(format, url.PathEscape(key))
}
