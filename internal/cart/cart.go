// Package cart хранит корзину покупателя: позиции со снимком товара и количеством.
// Каждая мутация целиком перезаписывает корзину в локальное хранилище.
package cart

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/jimlawless/whereami"
	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/pinkcart/go-backend/pkg/logger"
)

// StorageKey — ключ корзины в локальном хранилище.
const StorageKey = "pinkcart_cart"

type Storage interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

type Option func(*Cart)

func WithLogger(l logger.Logger) Option {
	return func(c *Cart) {
		c.logger = l
	}
}

// Cart — корзина. Позиции хранятся в порядке добавления.
type Cart struct {
	mu      sync.Mutex
	storage Storage
	logger  logger.Logger
	items   []domain.LineItem
	index   map[string]int
}

// New восстанавливает корзину из storage. Повреждённые или устаревшие данные
// не приводят к ошибке: корзина начинается пустой, а ключ удаляется.
func New(storage Storage, opts ...Option) *Cart {
	c := &Cart{
		storage: storage,
		logger:  logger.NewNop(),
		index:   map[string]int{},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.load()
	return c
}

// Add увеличивает количество на 1 или добавляет снимок товара с количеством 1.
func (c *Cart) Add(p *domain.Product) error {
	if p == nil || strings.TrimSpace(p.ID) == "" {
		return e.ErrProductIDRequired
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i, ok := c.index[p.ID]; ok {
		c.items[i].Quantity++
	} else {
		c.index[p.ID] = len(c.items)
		c.items = append(c.items, domain.NewLineItem(p))
	}

	return c.persist()
}

// Remove удаляет позицию целиком. Отсутствующий id не ошибка.
func (c *Cart) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.remove(id) {
		return nil
	}

	return c.persist()
}

// UpdateQuantity выставляет количество. quantity <= 0 равносильно Remove.
func (c *Cart) UpdateQuantity(id string, quantity int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		if !c.remove(id) {
			return nil
		}
		return c.persist()
	}

	i, ok := c.index[id]
	if !ok {
		return nil
	}
	c.items[i].Quantity = quantity

	return c.persist()
}

func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.index = map[string]int{}

	return c.persist()
}

func (c *Cart) TotalItems() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, count := domain.Totals(c.items)
	return count
}

// TotalPrice — сумма price×quantity в целых единицах валюты, без налогов и доставки.
func (c *Cart) TotalPrice() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	price, _ := domain.Totals(c.items)
	return price
}

func (c *Cart) Contains(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.index[id]
	return ok
}

// Items возвращает копию позиций в порядке добавления.
func (c *Cart) Items() []domain.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := make([]domain.LineItem, len(c.items))
	copy(res, c.items)
	return res
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}

func (c *Cart) remove(id string) bool {
	i, ok := c.index[id]
	if !ok {
		return false
	}

	c.items = append(c.items[:i], c.items[i+1:]...)
	c.reindex()
	return true
}

func (c *Cart) reindex() {
	c.index = make(map[string]int, len(c.items))
	for i, it := range c.items {
		c.index[it.ProductID] = i
	}
}

// persist вызывается под c.mu. Ошибка записи возвращается вызывающему,
// но состояние в памяти уже изменено.
func (c *Cart) persist() error {
	data, err := json.Marshal(toStored(c.items))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.storage.Set(StorageKey, data); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *Cart) load() {
	data, ok, err := c.storage.Get(StorageKey)
	if err != nil {
		c.logger.Warnf("cart storage read failed, starting empty: %v", err)
		return
	}
	if !ok || len(data) == 0 {
		return
	}

	models, err := decodeStored(data)
	if err != nil {
		c.logger.Warnf("stored cart is malformed, resetting: %v", err)
		if err := c.storage.Delete(StorageKey); err != nil {
			c.logger.Warnf("failed to drop malformed cart: %v", err)
		}
		return
	}

	for _, m := range models {
		item := m.toEntity()
		if err := item.Validate(); err != nil {
			c.logger.Debugf("dropping stored cart line %q: %v", m.ID, err)
			continue
		}

		if i, dup := c.index[item.ProductID]; dup {
			c.items[i].Quantity += item.Quantity
			continue
		}
		c.index[item.ProductID] = len(c.items)
		c.items = append(c.items, item)
	}
}
