// Package storefront — клиент витрины: HTTP-клиент API и интерактивная оболочка поверх корзины.
package storefront

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

	"github.com/hashicorp/go-retryablehttp"
	"github.com/jimlawless/whereami"
	"github.com/pinkcart/go-backend/internal/checkout"
	"github.com/pinkcart/go-backend/internal/delivery/v1/http/dto"
	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/pinkcart/go-backend/pkg/logger"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultRetryMax = 3
)

// ProductQuery — параметры выборки каталога. Пустые поля не передаются.
type ProductQuery struct {
	CategoryID string
	Search     string
	Featured   *bool
}

type ClientOption func(*Client)

func WithRetryMax(n int) ClientOption {
	return func(c *Client) {
		c.http.RetryMax = n
	}
}

func WithRetryWait(minWait, maxWait time.Duration) ClientOption {
	return func(c *Client) {
		c.http.RetryWaitMin = minWait
		c.http.RetryWaitMax = maxWait
	}
}

// Client обращается к HTTP API витрины. Чтения повторяются при сетевых ошибках и 5xx,
// создание заказа выполняется ровно один раз.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
	logger  logger.Logger
}

func NewClient(baseURL string, log logger.Logger, opts ...ClientOption) *Client {
	rc := retryablehttp.NewClient()
	rc.HTTPClient.Timeout = defaultTimeout
	rc.RetryMax = defaultRetryMax
	rc.Logger = leveledLogger{log: log}
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    rc,
		logger:  log,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) ([]domain.Product, error) {
	params := url.Values{}
	if q.CategoryID != "" {
		params.Set("categoryId", q.CategoryID)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Featured != nil {
		params.Set("featured", fmt.Sprint(*q.Featured))
	}

	path := "/api/products"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var items []dto.Product
	if err := c.get(ctx, path, &items); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	res := make([]domain.Product, 0, len(items))
	for _, it := range items {
		res = append(res, *it.ToProduct())
	}
	return res, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var item dto.Product
	if err := c.get(ctx, "/api/products/"+url.PathEscape(id), &item); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return item.ToProduct(), nil
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var items []dto.Category
	if err := c.get(ctx, "/api/categories", &items); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	res := make([]domain.Category, 0, len(items))
	for _, it := range items {
		res = append(res, it.ToCategory())
	}
	return res, nil
}

// CreateOrder реализует checkout.Submitter. Запрос не повторяется:
// повтор после потерянного ответа создал бы второй заказ.
func (c *Client) CreateOrder(ctx context.Context, draft *checkout.OrderDraft) (*domain.Order, error) {
	items := dto.FromLineItems(draft.Items)
	body, err := json.Marshal(dto.CreateOrderRequest{
		CustomerName:  draft.CustomerName,
		CustomerPhone: draft.CustomerPhone,
		Items:         &items,
		TotalPrice:    draft.TotalPrice,
		TotalItems:    draft.TotalItems,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.HTTPClient.Do(req)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer resp.Body.Close()

	var order dto.Order
	if err := decodeData(resp, &order); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return order.ToOrder(), nil
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var items []dto.Order
	if err := c.get(ctx, "/api/orders", &items); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	res := make([]domain.Order, 0, len(items))
	for _, it := range items {
		res = append(res, *it.ToOrder())
	}
	return res, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeData(resp, out)
}

// envelope — общая часть успешного и ошибочного ответа API.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func decodeData(resp *http.Response, out any) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("status %d: %w", resp.StatusCode, e.ErrInvalidJSON)
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		return apiError(resp.StatusCode, env)
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return e.Wrap("decode data", e.ErrInvalidJSON)
	}
	return nil
}

func apiError(status int, env envelope) error {
	msg := env.Error
	if env.Message != "" {
		msg += ": " + env.Message
	}

	switch {
	case status == http.StatusNotFound:
		return e.Wrap(msg, e.ErrProductNotFound)
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		return e.Wrap(msg, e.ErrStatusBadRequest)
	default:
		return e.Wrap(msg, e.ErrInternalServerError)
	}
}

// leveledLogger передаёт журнал retryablehttp в logger.Logger.
type leveledLogger struct {
	log logger.Logger
}

func (l leveledLogger) Error(msg string, kv ...any) {
	l.log.Warnf("%s %v", msg, kv)
}

func (l leveledLogger) Info(msg string, kv ...any) {
	l.log.Debugf("%s %v", msg, kv)
}

func (l leveledLogger) Debug(msg string, kv ...any) {
	l.log.Debugf("%s %v", msg, kv)
}

func (l leveledLogger) Warn(msg string, kv ...any) {
	l.log.Warnf("%s %v", msg, kv)
}
