// Package handoff готовит текст заказа для оператора и ссылку wa.me с этим текстом.
package handoff

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pinkcart/go-backend/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	baseURL         = "https://wa.me/"
	timeLayout      = "02 Jan 2006, 15:04"
	defaultCurrency = "KSh"
)

type Formatter struct {
	operatorPhone string
	currency      string
	location      *time.Location
	printer       *message.Printer
}

type Option func(*Formatter)

// WithLocation задаёт часовой пояс времени заказа в сводке.
func WithLocation(loc *time.Location) Option {
	return func(f *Formatter) {
		if loc != nil {
			f.location = loc
		}
	}
}

func NewFormatter(operatorPhone, currency string, opts ...Option) *Formatter {
	if currency == "" {
		currency = defaultCurrency
	}

	f := &Formatter{
		operatorPhone: digitsOnly(operatorPhone),
		currency:      currency,
		location:      time.UTC,
		printer:       message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Amount печатает сумму с разделителями тысяч: "KSh 1,200".
func (f *Formatter) Amount(v int64) string {
	return f.printer.Sprintf("%s %d", f.currency, v)
}

// Summary собирает текст заказа: покупатель, итоги, позиции, номер и время.
func (f *Formatter) Summary(o *domain.Order) string {
	var b strings.Builder

	b.WriteString("🛍️ *New Order from Pinkcart*\n\n")
	fmt.Fprintf(&b, "👤 *Customer:* %s\n", o.CustomerName)
	fmt.Fprintf(&b, "📱 *Phone:* %s\n", o.CustomerPhone)
	fmt.Fprintf(&b, "📦 *Items:* %d\n", o.TotalItems)
	fmt.Fprintf(&b, "💰 *Total:* %s\n\n", f.Amount(o.TotalPrice))
	b.WriteString("*Order Details:*\n")

	for i, it := range o.Items {
		fmt.Fprintf(&b, "%d. %s x%d - %s\n", i+1, it.Name, it.Quantity, f.Amount(it.Subtotal()))
	}

	fmt.Fprintf(&b, "\n📋 *Order ID:* %s\n", o.OrderID)
	fmt.Fprintf(&b, "⏰ *Order Time:* %s\n\n", o.CreatedAt.In(f.location).Format(timeLayout))
	b.WriteString("Please confirm this order and provide shipping details. Thank you! 💖")

	return b.String()
}

// Link возвращает https://wa.me/<оператор>?text=<текст>.
// Пробелы кодируются как %20, как это делает encodeURIComponent.
func (f *Formatter) Link(text string) string {
	return baseURL + f.operatorPhone + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

func (f *Formatter) OperatorPhone() string {
	return f.operatorPhone
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}
