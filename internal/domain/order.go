package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/pinkcart/go-backend/pkg/e"
)

const (
	OrderStatusPending = "pending"

	orderIDPrefix   = "ORD"
	orderIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	orderIDSuffix   = 9
)

// LineItem — позиция корзины или заказа: снимок товара на момент добавления и количество.
type LineItem struct {
	ProductID     string
	Name          string
	Price         int64
	OriginalPrice *int64
	Image         string
	Category      string
	Quantity      int64
}

// NewLineItem снимает копию полей товара с количеством 1.
func NewLineItem(p *Product) LineItem {
	var original *int64
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		original = &v
	}

	return LineItem{
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: original,
		Image:         p.PrimaryImage(),
		Category:      p.Category,
		Quantity:      1,
	}
}

func (l LineItem) Subtotal() int64 {
	return l.Price * l.Quantity
}

func (l LineItem) Validate() error {
	if strings.TrimSpace(l.ProductID) == "" || l.Quantity < 1 || l.Price < 0 {
		return e.ErrInvalidLineItem
	}

	return nil
}

// Order — заказ, переданный оператору. Статус не меняется после создания.
type Order struct {
	ID            string // _id
	OrderID       string // ORD-<unix ms>-<suffix>
	CustomerName  string
	CustomerPhone string
	Items         []LineItem
	TotalPrice    int64
	TotalItems    int64
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidateOrderInput проверяет обязательные поля заказа: имя, телефон и хотя бы одну позицию.
func ValidateOrderInput(name, phone string, items []LineItem) error {
	if strings.TrimSpace(name) == "" {
		return e.ErrCustomerNameRequired
	}

	if strings.TrimSpace(phone) == "" {
		return e.ErrCustomerPhoneRequired
	}

	if len(items) == 0 {
		return e.ErrEmptyOrder
	}

	for _, it := range items {
		if err := it.Validate(); err != nil {
			return e.Wrap(fmt.Sprintf("item %q", it.ProductID), err)
		}
	}

	return nil
}

// Totals считает сумму и количество по позициям.
func Totals(items []LineItem) (price int64, count int64) {
	for _, it := range items {
		price += it.Subtotal()
		count += it.Quantity
	}

	return price, count
}

// NewOrderID формирует идентификатор вида ORD-<unix ms>-<9 символов [0-9a-z]>.
// Уникальность не гарантируется криптографически.
func NewOrderID(now time.Time, intn func(n int) int) string {
	suffix := make([]byte, orderIDSuffix)
	for i := range suffix {
		suffix[i] = orderIDAlphabet[intn(len(orderIDAlphabet))]
	}

	return fmt.Sprintf("%s-%d-%s", orderIDPrefix, now.UnixMilli(), suffix)
}
